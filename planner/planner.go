// Package planner holds a traveler's in-progress, not-yet-paid itinerary:
// four typed buckets of saved accommodations, transportation, guides, and
// destinations, persisted to the client's key-value store after every
// mutation.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

// StorageKey is the persisted entry holding the serialized four-bucket plan.
const StorageKey = "tripPlanningBookings"

// Planner owns the in-memory plan and keeps the persisted entry in sync.
// All mutations are serialized under one lock, so overlapping calls cannot
// interleave partial writes against a stale snapshot.
type Planner struct {
	mu     sync.Mutex
	store  storage.Store
	logger *slog.Logger
	plan   Plan

	now func() time.Time
}

// New creates a planner over the given store, starting from the empty plan.
// Call Hydrate to load previously persisted state.
func New(store storage.Store, logger *slog.Logger) *Planner {
	return &Planner{
		store:  store,
		logger: logger,
		plan:   emptyPlan(),
		now:    time.Now,
	}
}

// Hydrate loads the persisted plan. A missing entry means a fresh start.
// An unreadable entry resets the in-memory plan to empty AND returns an
// ErrCorruptState error: the caller decides whether to discard-and-reset
// quietly or surface a warning, instead of the loss being swallowed.
func (p *Planner) Hydrate(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := p.store.Get(ctx, StorageKey)
	if err != nil {
		if err == storage.ErrNotFound {
			p.plan = emptyPlan()
			return nil
		}
		return fmt.Errorf("read persisted plan: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		p.plan = emptyPlan()
		return apperrors.CorruptState(StorageKey, err)
	}

	// Nil buckets from hand-edited or older payloads become empty sequences.
	for _, b := range Buckets() {
		if *plan.bucket(b) == nil {
			*plan.bucket(b) = []Item{}
		}
	}

	p.plan = plan
	return nil
}

// Add appends the item to the named bucket, stamping addedAt. The plan is a
// multiset: adding the same item twice yields two entries (two nights at the
// same hotel saved separately are both kept).
func (p *Planner) Add(ctx context.Context, bucket Bucket, item Item) error {
	if !bucket.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("unknown planning bucket %q", bucket))
	}
	if item.ID == "" {
		return apperrors.InvalidInput("planning item id is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	item.AddedAt = p.now().UTC()
	seq := p.plan.bucket(bucket)
	*seq = append(*seq, item)

	if err := p.persistLocked(ctx); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "item added to trip plan",
		slog.String("bucket", string(bucket)),
		slog.String("item_id", item.ID),
	)
	return nil
}

// Remove deletes every entry in the named bucket whose id matches. It
// returns how many entries were removed; removing an absent id is not an
// error. Entries sharing an id are all removed together because the list
// page exposes one remove control per id.
func (p *Planner) Remove(ctx context.Context, bucket Bucket, itemID string) (int, error) {
	if !bucket.Valid() {
		return 0, apperrors.InvalidInput(fmt.Sprintf("unknown planning bucket %q", bucket))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seq := p.plan.bucket(bucket)
	kept := (*seq)[:0:0]
	removed := 0
	for _, item := range *seq {
		if item.ID == itemID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if kept == nil {
		kept = []Item{}
	}
	*seq = kept

	if err := p.persistLocked(ctx); err != nil {
		return removed, err
	}

	if removed > 0 {
		p.logger.InfoContext(ctx, "items removed from trip plan",
			slog.String("bucket", string(bucket)),
			slog.String("item_id", itemID),
			slog.Int("removed", removed),
		)
	}
	return removed, nil
}

// Clear resets all four buckets to empty and erases the persisted entry
// entirely. Emptying the plan item by item leaves an empty entry persisted;
// only Clear physically removes it.
func (p *Planner) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.plan = emptyPlan()
	if err := p.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("erase persisted plan: %w", err)
	}

	p.logger.InfoContext(ctx, "trip plan cleared")
	return nil
}

// ItemCount is the sum of bucket lengths.
func (p *Planner) ItemCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.ItemCount()
}

// TotalAmount sums every item's resolved amount across all buckets.
func (p *Planner) TotalAmount() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.TotalAmount()
}

// Items returns a copy of the named bucket's sequence in insertion order.
func (p *Planner) Items(bucket Bucket) []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	seq := p.plan.bucket(bucket)
	if seq == nil {
		return nil
	}
	out := make([]Item, len(*seq))
	copy(out, *seq)
	return out
}

// Snapshot returns a deep copy of the whole plan.
func (p *Planner) Snapshot() Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.clone()
}

// persistLocked serializes the whole plan back to the store. Callers hold
// the lock, so writes cannot interleave.
func (p *Planner) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(p.plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := p.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist plan: %w", err)
	}
	return nil
}
