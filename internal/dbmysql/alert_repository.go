package dbmysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"streamalerts/internal/common"
)

// ErrAlertNotFound means no alert matched the given id and recipient.
var ErrAlertNotFound = errors.New("alert not found")

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *Alert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return &common.StorageError{Op: "create alert", Err: err}
	}
	return nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *Alert) error {
	result := r.db.WithContext(ctx).
		Model(&Alert{}).
		Where("id = ?", alert.ID).
		Updates(map[string]interface{}{
			"occurrence_count": alert.OccurrenceCount,
			"message":          alert.Message,
			"actor_name":       alert.ActorName,
			"actor_unique_id":  alert.ActorUniqueID,
			"notified_at":      alert.NotifiedAt,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return &common.StorageError{Op: "update alert", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &common.StorageError{Op: "update alert", Err: fmt.Errorf("%w: %s", ErrAlertNotFound, alert.ID)}
	}
	return nil
}

// FindOpenForAggregation looks up the unread alert a repeat event should be
// merged into: same recipient, type, and subject, last touched within the
// aggregation window. Returns nil when there is none.
func (r *AlertRepository) FindOpenForAggregation(
	ctx context.Context,
	recipientID int64,
	alertType string,
	subjectID int64,
	since time.Time,
) (*Alert, error) {
	var alert Alert

	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND type = ? AND subject_id = ? AND is_read = ? AND notified_at >= ?",
			recipientID, alertType, subjectID, false, since).
		Order("notified_at DESC").
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &common.StorageError{Op: "find open alert", Err: err}
	}

	return &alert, nil
}

// MarkRead flips one alert to read. Idempotent: marking an already-read alert
// reports changed=false and is not an error. The returned alert carries the
// priority the counter delta needs.
func (r *AlertRepository) MarkRead(ctx context.Context, alertID string, recipientID int64) (*Alert, bool, error) {
	var alert Alert
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND recipient_id = ?", alertID, recipientID).First(&alert).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
		}
		if err != nil {
			return err
		}
		if alert.IsRead {
			return nil
		}

		result := tx.Model(&Alert{}).
			Where("id = ? AND is_read = ?", alertID, false).
			Update("is_read", true)
		if result.Error != nil {
			return result.Error
		}
		changed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlertNotFound) {
			return nil, false, err
		}
		return nil, false, &common.StorageError{Op: "mark alert read", Err: err}
	}

	alert.IsRead = true
	return &alert, changed, nil
}

// MarkAllRead transitions every unread alert of a recipient in one statement
// per priority and reports how many rows each flipped. The row counts are the
// exact consolidated counter delta: alerts created after the statements ran
// keep their own unread increment.
func (r *AlertRepository) MarkAllRead(ctx context.Context, recipientID int64) (high int64, normal int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Alert{}).
			Where("recipient_id = ? AND is_read = ? AND high_priority = ?", recipientID, false, true).
			Update("is_read", true)
		if result.Error != nil {
			return result.Error
		}
		high = result.RowsAffected

		result = tx.Model(&Alert{}).
			Where("recipient_id = ? AND is_read = ? AND high_priority = ?", recipientID, false, false).
			Update("is_read", true)
		if result.Error != nil {
			return result.Error
		}
		normal = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, &common.StorageError{Op: "mark all read", Err: err}
	}
	return high, normal, nil
}

// ListByRecipient returns a recipient's alerts, most recent first.
func (r *AlertRepository) ListByRecipient(
	ctx context.Context,
	recipientID int64,
	limit, offset int,
	unreadOnly bool,
) ([]*Alert, error) {
	var alerts []*Alert

	query := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("notified_at DESC")

	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&alerts).Error; err != nil {
		return nil, &common.StorageError{Op: "list alerts", Err: err}
	}
	return alerts, nil
}

// UnreadCounts scans the table for the true unread tallies by priority. This
// is the counter rebuild path only; the polling endpoint reads the cached
// counter instead.
func (r *AlertRepository) UnreadCounts(ctx context.Context, recipientID int64) (high int64, normal int64, err error) {
	err = r.db.WithContext(ctx).
		Model(&Alert{}).
		Where("recipient_id = ? AND is_read = ? AND high_priority = ?", recipientID, false, true).
		Count(&high).Error
	if err != nil {
		return 0, 0, &common.StorageError{Op: "count unread", Err: err}
	}

	err = r.db.WithContext(ctx).
		Model(&Alert{}).
		Where("recipient_id = ? AND is_read = ? AND high_priority = ?", recipientID, false, false).
		Count(&normal).Error
	if err != nil {
		return 0, 0, &common.StorageError{Op: "count unread", Err: err}
	}

	return high, normal, nil
}

// FindReadOlderThan returns read alerts last touched before the cutoff, for
// the retention sweeper to archive.
func (r *AlertRepository) FindReadOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*Alert, error) {
	var alerts []*Alert

	err := r.db.WithContext(ctx).
		Where("is_read = ? AND notified_at < ?", true, cutoff).
		Order("notified_at ASC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, &common.StorageError{Op: "find expired alerts", Err: err}
	}
	return alerts, nil
}

// DeleteByIDs removes swept alerts after they were archived.
func (r *AlertRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&Alert{}, "id IN ?", ids).Error; err != nil {
		return &common.StorageError{Op: "delete alerts", Err: err}
	}
	return nil
}
