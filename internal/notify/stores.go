package notify

import (
	"context"
	"time"

	"streamalerts/internal/dbmongo"
	"streamalerts/internal/dbmysql"
)

// AlertStore is the persistence collaborator for recipient-facing alerts.
// Implemented by dbmysql.AlertRepository.
type AlertStore interface {
	Create(ctx context.Context, alert *dbmysql.Alert) error
	Update(ctx context.Context, alert *dbmysql.Alert) error
	FindOpenForAggregation(ctx context.Context, recipientID int64, alertType string, subjectID int64, since time.Time) (*dbmysql.Alert, error)
	MarkRead(ctx context.Context, alertID string, recipientID int64) (*dbmysql.Alert, bool, error)
	MarkAllRead(ctx context.Context, recipientID int64) (high int64, normal int64, err error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int, unreadOnly bool) ([]*dbmysql.Alert, error)
	UnreadCounts(ctx context.Context, recipientID int64) (high int64, normal int64, err error)
	FindReadOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*dbmysql.Alert, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}

// PreferenceStore looks up suppression rows. Implemented by
// dbmysql.PreferenceRepository.
type PreferenceStore interface {
	Exists(ctx context.Context, personID int64, channel, category string) (bool, error)
}

// AlertListener observes confirmed alert mutations. The pipeline invokes
// listeners only after the store accepted the change, so a listener never
// sees a delta for a failed write.
type AlertListener interface {
	OnAlertCreated(alert *dbmysql.Alert)
	OnAlertUpdated(recipientID int64, oldHighPriority, newHighPriority bool)
	OnAlertRead(alert *dbmysql.Alert)
	OnAllRead(recipientID int64, highMarked, normalMarked int64)
}

// Archiver receives alerts the retention sweeper expires out of the primary
// store. Implemented by dbmongo.AlertArchive.
type Archiver interface {
	ArchiveAlerts(ctx context.Context, alerts []*dbmysql.Alert) error
}

// ArchiveReader serves the archived-alert listing endpoint. Also implemented
// by dbmongo.AlertArchive.
type ArchiveReader interface {
	ListByRecipient(ctx context.Context, recipientID int64, limit int64) ([]dbmongo.ArchivedAlert, error)
}
