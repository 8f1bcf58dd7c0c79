package dbmysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"streamalerts/internal/common"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Exists reports whether a suppression row is present for the triple. No row
// means deliver; the filter never treats a lookup miss as an error.
func (r *PreferenceRepository) Exists(ctx context.Context, personID int64, channel, category string) (bool, error) {
	var pref FilterPreference

	err := r.db.WithContext(ctx).
		Where("person_id = ? AND channel = ? AND category = ?", personID, channel, category).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, &common.StorageError{Op: "lookup preference", Err: err}
	}

	return true, nil
}

// ListByPerson returns all suppression rows for one person.
func (r *PreferenceRepository) ListByPerson(ctx context.Context, personID int64) ([]*FilterPreference, error) {
	var prefs []*FilterPreference

	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("channel, category").
		Find(&prefs).Error
	if err != nil {
		return nil, &common.StorageError{Op: "list preferences", Err: err}
	}
	return prefs, nil
}

// Set inserts a suppression row; setting one that already exists is a no-op.
func (r *PreferenceRepository) Set(ctx context.Context, pref *FilterPreference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pref).Error
	if err != nil {
		return &common.StorageError{Op: "set preference", Err: err}
	}
	return nil
}

// Delete removes a suppression row, restoring default-allow delivery.
func (r *PreferenceRepository) Delete(ctx context.Context, personID int64, channel, category string) error {
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND channel = ? AND category = ?", personID, channel, category).
		Delete(&FilterPreference{}).Error
	if err != nil {
		return &common.StorageError{Op: "delete preference", Err: err}
	}
	return nil
}
