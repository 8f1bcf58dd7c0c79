package notify

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamalerts/internal/dbmysql"
)

func seedAlert(t *testing.T, store *fakeAlertStore, recipientID int64, highPriority bool) *dbmysql.Alert {
	t.Helper()
	alert := &dbmysql.Alert{
		ID:              uuid.NewString(),
		RecipientID:     recipientID,
		Type:            "FOLLOW_PERSON",
		HighPriority:    highPriority,
		OccurrenceCount: 1,
		NotifiedAt:      time.Now(),
	}
	require.NoError(t, store.Create(context.Background(), alert))
	return alert
}

func TestGetRebuildsOnFirstAccess(t *testing.T) {
	store := newFakeAlertStore()
	seedAlert(t, store, 1, false)
	seedAlert(t, store, 1, false)
	seedAlert(t, store, 1, true)

	counter := NewUnreadCounter(store)

	count, err := counter.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: 1, NormalPriority: 2}, count)
}

func TestListenerDeltasTrackMutations(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)
	ctx := context.Background()

	// Prime the cache so deltas apply in memory.
	_, err := counter.Get(ctx, 1)
	require.NoError(t, err)

	normal := seedAlert(t, store, 1, false)
	counter.OnAlertCreated(normal)
	high := seedAlert(t, store, 1, true)
	counter.OnAlertCreated(high)

	count, err := counter.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: 1, NormalPriority: 1}, count)

	_, changed, err := store.MarkRead(ctx, normal.ID, 1)
	require.NoError(t, err)
	require.True(t, changed)
	counter.OnAlertRead(normal)

	count, err = counter.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: 1, NormalPriority: 0}, count)
}

func TestAggregationUpdateMovesNothing(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)
	ctx := context.Background()

	_, err := counter.Get(ctx, 1)
	require.NoError(t, err)

	alert := seedAlert(t, store, 1, false)
	counter.OnAlertCreated(alert)

	// An aggregation update keeps the alert unread at the same priority, so
	// the tally must not move no matter how many events merged in.
	for i := 0; i < 5; i++ {
		counter.OnAlertUpdated(1, false, false)
	}

	count, err := counter.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: 0, NormalPriority: 1}, count)
}

func TestOnAllReadAppliesConsolidatedDelta(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)
	ctx := context.Background()

	_, err := counter.Get(ctx, 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		counter.OnAlertCreated(seedAlert(t, store, 1, false))
	}
	counter.OnAlertCreated(seedAlert(t, store, 1, true))

	high, normal, err := store.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	counter.OnAllRead(1, high, normal)

	count, err := counter.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{}, count)

	// Second pass marks nothing and produces a zero delta.
	high, normal, err = store.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, high)
	assert.Zero(t, normal)
}

func TestAdjustWithoutCacheDefersToRebuild(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)

	alert := seedAlert(t, store, 1, false)
	// Delta for an uncached recipient is dropped; the store already holds
	// the truth and the next Get scans it.
	counter.OnAlertCreated(alert)

	count, err := counter.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{NormalPriority: 1}, count)
}

func TestRebuildRepairsDrift(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)
	ctx := context.Background()

	_, err := counter.Get(ctx, 1)
	require.NoError(t, err)

	seedAlert(t, store, 1, true) // store mutation with no listener call

	count, err := counter.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{}, count, "cached tally drifted as arranged")

	count, err = counter.Rebuild(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: 1}, count)
}

func TestDeltasMatchScanUnderRandomOperations(t *testing.T) {
	store := newFakeAlertStore()
	counter := NewUnreadCounter(store)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	_, err := counter.Get(ctx, 1)
	require.NoError(t, err)

	var unread []*dbmysql.Alert
	for i := 0; i < 200; i++ {
		switch {
		case len(unread) == 0 || rng.Intn(3) > 0:
			alert := seedAlert(t, store, 1, rng.Intn(4) == 0)
			counter.OnAlertCreated(alert)
			unread = append(unread, alert)
		default:
			idx := rng.Intn(len(unread))
			alert := unread[idx]
			updated, changed, err := store.MarkRead(ctx, alert.ID, 1)
			require.NoError(t, err)
			require.True(t, changed)
			counter.OnAlertRead(updated)
			unread = append(unread[:idx], unread[idx+1:]...)
		}
	}

	cached, err := counter.Get(ctx, 1)
	require.NoError(t, err)
	high, normal, err := store.UnreadCounts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, UnreadCount{HighPriority: high, NormalPriority: normal}, cached)
}
