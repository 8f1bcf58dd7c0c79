package notify

import (
	"context"
	"log"
	"time"
)

// RetentionSweeper moves read alerts past the retention age out of the
// primary store into the archive. The pipeline itself never deletes alerts;
// this is the only expiration path.
type RetentionSweeper struct {
	store    AlertStore
	archive  Archiver
	maxAge   time.Duration
	interval time.Duration
	batch    int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRetentionSweeper(store AlertStore, archive Archiver, maxAge, interval time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		store:    store,
		archive:  archive,
		maxAge:   maxAge,
		interval: interval,
		batch:    500,
	}
}

// Start runs the sweep loop until Stop is called.
func (s *RetentionSweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.SweepOnce(ctx); err != nil {
					log.Printf("Retention sweep failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// SweepOnce archives then deletes one batch of expired alerts. Archive first:
// a failed archive leaves the rows in MySQL for the next sweep.
func (s *RetentionSweeper) SweepOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.maxAge)

	alerts, err := s.store.FindReadOlderThan(ctx, cutoff, s.batch)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	if s.archive != nil {
		if err := s.archive.ArchiveAlerts(ctx, alerts); err != nil {
			return err
		}
	}

	ids := make([]string, len(alerts))
	for i, alert := range alerts {
		ids[i] = alert.ID
	}
	if err := s.store.DeleteByIDs(ctx, ids); err != nil {
		return err
	}

	log.Printf("Retention sweep archived %d alerts", len(alerts))
	return nil
}

func (s *RetentionSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}
