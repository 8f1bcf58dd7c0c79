package notify

import (
	"context"
	"sync"

	"streamalerts/internal/dbmysql"
)

// UnreadCount is the per-recipient unread tally by priority, served O(1) to
// the polling endpoint.
type UnreadCount struct {
	HighPriority   int64 `json:"high_priority"`
	NormalPriority int64 `json:"normal_priority"`
}

// UnreadCounter keeps the live unread tallies in memory, adjusted by the
// exact delta of each confirmed alert mutation. It never rescans on the hot
// path: Rebuild is the explicit repair path, invoked lazily on a cache miss
// or by an operator.
type UnreadCounter struct {
	store AlertStore

	mu     sync.RWMutex
	counts map[int64]*UnreadCount
}

func NewUnreadCounter(store AlertStore) *UnreadCounter {
	return &UnreadCounter{
		store:  store,
		counts: make(map[int64]*UnreadCount),
	}
}

// Get returns the cached tally, rebuilding from the store on first access.
func (c *UnreadCounter) Get(ctx context.Context, recipientID int64) (UnreadCount, error) {
	c.mu.RLock()
	count, ok := c.counts[recipientID]
	if ok {
		result := *count
		c.mu.RUnlock()
		return result, nil
	}
	c.mu.RUnlock()

	return c.Rebuild(ctx, recipientID)
}

// Rebuild repairs the cached tally from a full store scan.
func (c *UnreadCounter) Rebuild(ctx context.Context, recipientID int64) (UnreadCount, error) {
	high, normal, err := c.store.UnreadCounts(ctx, recipientID)
	if err != nil {
		return UnreadCount{}, err
	}

	c.mu.Lock()
	c.counts[recipientID] = &UnreadCount{HighPriority: high, NormalPriority: normal}
	c.mu.Unlock()

	return UnreadCount{HighPriority: high, NormalPriority: normal}, nil
}

// OnAlertCreated bumps the tally for a newly persisted unread alert.
func (c *UnreadCounter) OnAlertCreated(alert *dbmysql.Alert) {
	c.adjust(alert.RecipientID, func(count *UnreadCount) {
		if alert.HighPriority {
			count.HighPriority++
		} else {
			count.NormalPriority++
		}
	})
}

// OnAlertUpdated handles an aggregation update. The alert stays unread, so
// the tally only moves if the update changed its priority.
func (c *UnreadCounter) OnAlertUpdated(recipientID int64, oldHighPriority, newHighPriority bool) {
	if oldHighPriority == newHighPriority {
		return
	}
	c.adjust(recipientID, func(count *UnreadCount) {
		if newHighPriority {
			count.NormalPriority--
			count.HighPriority++
		} else {
			count.HighPriority--
			count.NormalPriority++
		}
	})
}

// OnAlertRead decrements the slot matching the alert's priority. The
// occurrence count is irrelevant: an aggregated alert is one unread item.
func (c *UnreadCounter) OnAlertRead(alert *dbmysql.Alert) {
	c.adjust(alert.RecipientID, func(count *UnreadCount) {
		if alert.HighPriority {
			count.HighPriority--
		} else {
			count.NormalPriority--
		}
	})
}

// OnAllRead applies the consolidated mark-all-read delta reported by the
// store. Alerts created concurrently after the store statement keep their
// own increments, so the tally stays exact.
func (c *UnreadCounter) OnAllRead(recipientID int64, highMarked, normalMarked int64) {
	c.adjust(recipientID, func(count *UnreadCount) {
		count.HighPriority -= highMarked
		count.NormalPriority -= normalMarked
	})
}

func (c *UnreadCounter) adjust(recipientID int64, fn func(*UnreadCount)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, ok := c.counts[recipientID]
	if !ok {
		// No cached tally yet; the next Get rebuilds from the store, which
		// already reflects this mutation.
		return
	}

	fn(count)
	if count.HighPriority < 0 {
		count.HighPriority = 0
	}
	if count.NormalPriority < 0 {
		count.NormalPriority = 0
	}
}
