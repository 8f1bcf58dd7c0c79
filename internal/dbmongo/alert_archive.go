package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"streamalerts/internal/dbmysql"
)

type AlertArchive struct {
	collection *mongo.Collection
}

func NewAlertArchive(mongoClient *MongoClient, collectionName string) *AlertArchive {
	return &AlertArchive{
		collection: mongoClient.Database.Collection(collectionName),
	}
}

// ArchivedAlert is the archive document. It keeps the denormalized display
// fields so archived alerts stay renderable even after the source entities
// are gone.
type ArchivedAlert struct {
	AlertID         string    `bson:"alert_id"`
	RecipientID     int64     `bson:"recipient_id"`
	Type            string    `bson:"type"`
	HighPriority    bool      `bson:"high_priority"`
	OccurrenceCount int       `bson:"occurrence_count"`
	Message         string    `bson:"message"`
	URL             string    `bson:"url,omitempty"`
	ActorName       string    `bson:"actor_name,omitempty"`
	ActorUniqueID   string    `bson:"actor_unique_id,omitempty"`
	NotifiedAt      time.Time `bson:"notified_at"`
	ArchivedAt      time.Time `bson:"archived_at"`
}

// ArchiveAlerts inserts the swept alerts. The sweeper deletes the MySQL rows
// only after this returns, so a failure here leaves the alerts in place for
// the next sweep.
func (a *AlertArchive) ArchiveAlerts(ctx context.Context, alerts []*dbmysql.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(alerts))
	for i, alert := range alerts {
		docs[i] = ArchivedAlert{
			AlertID:         alert.ID,
			RecipientID:     alert.RecipientID,
			Type:            alert.Type,
			HighPriority:    alert.HighPriority,
			OccurrenceCount: alert.OccurrenceCount,
			Message:         alert.Message,
			URL:             alert.URL,
			ActorName:       alert.ActorName,
			ActorUniqueID:   alert.ActorUniqueID,
			NotifiedAt:      alert.NotifiedAt,
			ArchivedAt:      now,
		}
	}

	if _, err := a.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("archive insert failed: %w", err)
	}
	return nil
}

// ListByRecipient returns archived alerts for a recipient, newest first.
func (a *AlertArchive) ListByRecipient(ctx context.Context, recipientID int64, limit int64) ([]ArchivedAlert, error) {
	opts := optionsFindNewestFirst(limit)
	cursor, err := a.collection.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("archive query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []ArchivedAlert
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("archive decode failed: %w", err)
	}
	return results, nil
}
