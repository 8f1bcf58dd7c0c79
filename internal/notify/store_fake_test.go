package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"streamalerts/internal/common"
	"streamalerts/internal/dbmysql"
)

// fakeAlertStore is an in-memory AlertStore used across the pipeline tests.
// failFor makes every mutation for one recipient fail, for isolation tests.
type fakeAlertStore struct {
	mu      sync.Mutex
	alerts  map[string]*dbmysql.Alert
	failFor map[int64]bool
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{
		alerts:  make(map[string]*dbmysql.Alert),
		failFor: make(map[int64]bool),
	}
}

func (s *fakeAlertStore) failRecipient(recipientID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFor[recipientID] = true
}

func (s *fakeAlertStore) Create(ctx context.Context, alert *dbmysql.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[alert.RecipientID] {
		return &common.StorageError{Op: "create alert", Err: errors.New("induced failure")}
	}
	copied := *alert
	s.alerts[alert.ID] = &copied
	return nil
}

func (s *fakeAlertStore) Update(ctx context.Context, alert *dbmysql.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[alert.RecipientID] {
		return &common.StorageError{Op: "update alert", Err: errors.New("induced failure")}
	}
	existing, ok := s.alerts[alert.ID]
	if !ok {
		return &common.StorageError{Op: "update alert", Err: fmt.Errorf("missing alert %s", alert.ID)}
	}
	existing.OccurrenceCount = alert.OccurrenceCount
	existing.Message = alert.Message
	existing.ActorName = alert.ActorName
	existing.ActorUniqueID = alert.ActorUniqueID
	existing.NotifiedAt = alert.NotifiedAt
	return nil
}

func (s *fakeAlertStore) FindOpenForAggregation(
	ctx context.Context,
	recipientID int64,
	alertType string,
	subjectID int64,
	since time.Time,
) (*dbmysql.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *dbmysql.Alert
	for _, alert := range s.alerts {
		if alert.RecipientID != recipientID || alert.Type != alertType || alert.IsRead {
			continue
		}
		if alert.SubjectID == nil || *alert.SubjectID != subjectID {
			continue
		}
		if alert.NotifiedAt.Before(since) {
			continue
		}
		if best == nil || alert.NotifiedAt.After(best.NotifiedAt) {
			best = alert
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (s *fakeAlertStore) MarkRead(ctx context.Context, alertID string, recipientID int64) (*dbmysql.Alert, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[alertID]
	if !ok || alert.RecipientID != recipientID {
		return nil, false, fmt.Errorf("%w: %s", dbmysql.ErrAlertNotFound, alertID)
	}
	if alert.IsRead {
		copied := *alert
		return &copied, false, nil
	}
	alert.IsRead = true
	copied := *alert
	return &copied, true, nil
}

func (s *fakeAlertStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var high, normal int64
	for _, alert := range s.alerts {
		if alert.RecipientID != recipientID || alert.IsRead {
			continue
		}
		alert.IsRead = true
		if alert.HighPriority {
			high++
		} else {
			normal++
		}
	}
	return high, normal, nil
}

func (s *fakeAlertStore) ListByRecipient(
	ctx context.Context,
	recipientID int64,
	limit, offset int,
	unreadOnly bool,
) ([]*dbmysql.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*dbmysql.Alert
	for _, alert := range s.alerts {
		if alert.RecipientID != recipientID {
			continue
		}
		if unreadOnly && alert.IsRead {
			continue
		}
		copied := *alert
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].NotifiedAt.After(result[j].NotifiedAt)
	})

	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *fakeAlertStore) UnreadCounts(ctx context.Context, recipientID int64) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var high, normal int64
	for _, alert := range s.alerts {
		if alert.RecipientID != recipientID || alert.IsRead {
			continue
		}
		if alert.HighPriority {
			high++
		} else {
			normal++
		}
	}
	return high, normal, nil
}

func (s *fakeAlertStore) FindReadOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*dbmysql.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*dbmysql.Alert
	for _, alert := range s.alerts {
		if !alert.IsRead || !alert.NotifiedAt.Before(cutoff) {
			continue
		}
		copied := *alert
		result = append(result, &copied)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *fakeAlertStore) DeleteByIDs(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.alerts, id)
	}
	return nil
}

func (s *fakeAlertStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

// fakePreferenceStore is an in-memory PreferenceStore.
type fakePreferenceStore struct {
	mu   sync.Mutex
	rows map[string]bool
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{rows: make(map[string]bool)}
}

func (s *fakePreferenceStore) suppress(personID int64, channel, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[prefKey(personID, channel, category)] = true
}

func (s *fakePreferenceStore) Exists(ctx context.Context, personID int64, channel, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[prefKey(personID, channel, category)], nil
}

func prefKey(personID int64, channel, category string) string {
	return fmt.Sprintf("%d|%s|%s", personID, channel, category)
}
