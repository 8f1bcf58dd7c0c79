package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"streamalerts/internal/dbmysql"
)

// Aggregator merges repeated eligible events into a single visible alert.
// Deliveries for the same (recipient, type, subject) key serialize through a
// striped mutex so find-or-create plus the counter delta behaves as one
// read-modify-write; different keys proceed fully in parallel.
//
// Window policy: an alert stays open for merging until it is read or until
// the aggregation window has passed since its last update, whichever comes
// first. A read alert never reopens -- the next event starts a fresh unread
// alert.
type Aggregator struct {
	taxonomy *Taxonomy
	store    AlertStore
	window   time.Duration
	locks    []sync.Mutex
}

func NewAggregator(taxonomy *Taxonomy, store AlertStore, window time.Duration, lockShards int) *Aggregator {
	if lockShards <= 0 {
		lockShards = 64
	}
	return &Aggregator{
		taxonomy: taxonomy,
		store:    store,
		window:   window,
		locks:    make([]sync.Mutex, lockShards),
	}
}

// Apply persists the envelope for one recipient, merging into an open alert
// when the type allows it. Reports whether a new alert row was created; when
// it was not, the existing alert was updated in place.
func (a *Aggregator) Apply(ctx context.Context, recipientID int64, env *Envelope) (*dbmysql.Alert, bool, error) {
	if !a.taxonomy.Aggregatable[env.Type] {
		alert := a.newAlert(recipientID, env)
		if err := a.store.Create(ctx, alert); err != nil {
			return nil, false, err
		}
		return alert, true, nil
	}

	lock := &a.locks[a.shardFor(recipientID, env)]
	lock.Lock()
	defer lock.Unlock()

	since := env.OccurredAt.Add(-a.window)
	existing, err := a.store.FindOpenForAggregation(ctx, recipientID, string(env.Type), env.Subject.ID, since)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		alert := a.newAlert(recipientID, env)
		if err := a.store.Create(ctx, alert); err != nil {
			return nil, false, err
		}
		return alert, true, nil
	}

	existing.OccurrenceCount++
	existing.Message = a.taxonomy.RenderMessage(env, existing.OccurrenceCount)
	if env.Actor != nil {
		// Show the most recent actor on the collapsed alert.
		existing.ActorName = env.Actor.DisplayName
		existing.ActorUniqueID = env.Actor.UniqueID
	}
	if env.OccurredAt.After(existing.NotifiedAt) {
		existing.NotifiedAt = env.OccurredAt
	}

	if err := a.store.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (a *Aggregator) newAlert(recipientID int64, env *Envelope) *dbmysql.Alert {
	alert := &dbmysql.Alert{
		ID:              uuid.NewString(),
		RecipientID:     recipientID,
		Type:            string(env.Type),
		HighPriority:    a.taxonomy.HighPriority[env.Type],
		OccurrenceCount: 1,
		Message:         a.taxonomy.RenderMessage(env, 1),
		URL:             a.taxonomy.BuildURL(env),
		NotifiedAt:      env.OccurredAt,
	}

	if env.Actor != nil {
		alert.ActorName = env.Actor.DisplayName
		alert.ActorUniqueID = env.Actor.UniqueID
	}
	if env.Subject != nil {
		subjectID := env.Subject.ID
		alert.SubjectID = &subjectID
		alert.SubjectType = string(env.Subject.Type)
	}
	if env.Destination != nil {
		alert.DestinationName = env.Destination.DisplayName
		alert.DestinationUniqueID = env.Destination.UniqueID
		alert.DestinationType = string(env.Destination.Type)
	}
	if env.Auxiliary != nil {
		alert.AuxiliaryName = env.Auxiliary.DisplayName
		alert.AuxiliaryUniqueID = env.Auxiliary.UniqueID
		alert.AuxiliaryType = string(env.Auxiliary.Type)
	}
	return alert
}

func (a *Aggregator) shardFor(recipientID int64, env *Envelope) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d|%s|%d", recipientID, env.Type, env.Subject.ID)
	return int(h.Sum32() % uint32(len(a.locks)))
}
