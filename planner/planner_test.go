package planner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

func newTestPlanner(t *testing.T) (*Planner, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(store, log)
	p.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return p, store
}

// ============================================================================
// Add / Remove / Clear Tests
// ============================================================================

func TestAdd_SingleItem(t *testing.T) {
	p, _ := newTestPlanner(t)

	err := p.Add(context.Background(), BucketAccommodations, Item{ID: "h1", Name: "Hotel A", Price: 100.0})
	require.NoError(t, err)

	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, 100.0, p.TotalAmount())

	items := p.Items(BucketAccommodations)
	require.Len(t, items, 1)
	assert.Equal(t, "h1", items[0].ID)
	assert.False(t, items[0].AddedAt.IsZero())
}

func TestAdd_UnknownBucket(t *testing.T) {
	p, _ := newTestPlanner(t)

	err := p.Add(context.Background(), Bucket("flights"), Item{ID: "f1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 0, p.ItemCount())
}

func TestAdd_MissingID(t *testing.T) {
	p, _ := newTestPlanner(t)

	err := p.Add(context.Background(), BucketGuides, Item{Name: "no id"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAdd_DuplicatesKeepBothEntries(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	item := Item{ID: "h1", Name: "Hotel A", Price: 100.0}
	require.NoError(t, p.Add(ctx, BucketAccommodations, item))
	require.NoError(t, p.Add(ctx, BucketAccommodations, item))

	assert.Equal(t, 2, p.ItemCount())
	assert.Equal(t, 200.0, p.TotalAmount())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d1", Name: "Sigiriya"}))
	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d2", Name: "Ella"}))
	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d3", Name: "Galle"}))

	items := p.Items(BucketDestinations)
	require.Len(t, items, 3)
	assert.Equal(t, "d1", items[0].ID)
	assert.Equal(t, "d2", items[1].ID)
	assert.Equal(t, "d3", items[2].ID)
}

func TestRemove_DeletesAllMatchingEntries(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Price: 40.0}))
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Price: 40.0}))
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g2", Price: 60.0}))

	removed, err := p.Remove(ctx, BucketGuides, "g1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, 60.0, p.TotalAmount())
}

func TestRemove_AbsentIDIsNotAnError(t *testing.T) {
	p, _ := newTestPlanner(t)

	removed, err := p.Remove(context.Background(), BucketTransportation, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRemove_UnknownBucket(t *testing.T) {
	p, _ := newTestPlanner(t)

	_, err := p.Remove(context.Background(), Bucket("flights"), "f1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRemove_OnlyTouchesNamedBucket(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "x1", Price: 100.0}))
	require.NoError(t, p.Add(ctx, BucketTransportation, Item{ID: "x1", Price: 50.0}))

	removed, err := p.Remove(ctx, BucketAccommodations, "x1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, p.Items(BucketTransportation), 1)
}

func TestClear_ResetsAllBucketsAndErasesEntry(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h1", Price: 100.0}))
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Price: 40.0}))

	require.NoError(t, p.Clear(ctx))

	assert.Equal(t, 0, p.ItemCount())
	assert.Equal(t, 0.0, p.TotalAmount())

	_, err := store.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemove_ToEmptyKeepsPersistedEntry(t *testing.T) {
	p, store := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1"}))
	_, err := p.Remove(ctx, BucketGuides, "g1")
	require.NoError(t, err)

	// Emptying item by item leaves an empty entry; only Clear erases it.
	data, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)

	var plan Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, 0, plan.ItemCount())
}

// ============================================================================
// Persistence / Hydration Tests
// ============================================================================

func TestHydrate_MissingEntryStartsEmpty(t *testing.T) {
	p, _ := newTestPlanner(t)

	require.NoError(t, p.Hydrate(context.Background()))
	assert.Equal(t, 0, p.ItemCount())
}

func TestHydrate_RestoresPersistedPlan(t *testing.T) {
	ctx := context.Background()
	p, store := newTestPlanner(t)

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h1", Name: "Hotel A", Price: 100.0}))
	require.NoError(t, p.Add(ctx, BucketTransportation, Item{ID: "v1", Price: "50"}))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	restored := New(store, log)
	require.NoError(t, restored.Hydrate(ctx))

	assert.Equal(t, 2, restored.ItemCount())
	assert.Equal(t, 150.0, restored.TotalAmount())
}

func TestHydrate_RawPayloadWithStringPrice(t *testing.T) {
	ctx := context.Background()
	p, store := newTestPlanner(t)

	raw := []byte(`{"accommodations":[{"id":"h1","name":"Hotel A","price":100}],"transportation":[],"guides":[],"destinations":[]}`)
	require.NoError(t, store.Set(ctx, StorageKey, raw))

	require.NoError(t, p.Hydrate(ctx))
	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, 100.0, p.TotalAmount())

	require.NoError(t, p.Add(ctx, BucketTransportation, Item{ID: "v1", Price: "50"}))
	assert.Equal(t, 150.0, p.TotalAmount())

	removed, err := p.Remove(ctx, BucketAccommodations, "h1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, 50.0, p.TotalAmount())
}

func TestHydrate_CorruptEntryResetsAndReports(t *testing.T) {
	ctx := context.Background()
	p, store := newTestPlanner(t)

	require.NoError(t, store.Set(ctx, StorageKey, []byte(`{"accommodations": not-json`)))

	err := p.Hydrate(ctx)
	assert.ErrorIs(t, err, apperrors.ErrCorruptState)
	assert.Equal(t, 0, p.ItemCount())

	// The planner stays usable after the reset.
	require.NoError(t, p.Add(ctx, BucketGuides, Item{ID: "g1", Price: 40.0}))
	assert.Equal(t, 40.0, p.TotalAmount())
}

func TestHydrate_NilBucketsBecomeEmptySequences(t *testing.T) {
	ctx := context.Background()
	p, store := newTestPlanner(t)

	require.NoError(t, store.Set(ctx, StorageKey, []byte(`{"accommodations":[{"id":"h1"}]}`)))
	require.NoError(t, p.Hydrate(ctx))

	assert.NotNil(t, p.Items(BucketGuides))
	assert.Empty(t, p.Items(BucketGuides))
}

func TestPersistedShape_AlwaysCarriesAllFourBuckets(t *testing.T) {
	ctx := context.Background()
	p, store := newTestPlanner(t)

	require.NoError(t, p.Add(ctx, BucketDestinations, Item{ID: "d1"}))

	data, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, b := range Buckets() {
		assert.Contains(t, decoded, string(b))
	}
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshot_IsDetachedFromLiveState(t *testing.T) {
	p, _ := newTestPlanner(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h1"}))
	snap := p.Snapshot()

	require.NoError(t, p.Add(ctx, BucketAccommodations, Item{ID: "h2"}))

	assert.Equal(t, 1, snap.ItemCount())
	assert.Equal(t, 2, p.ItemCount())
}
