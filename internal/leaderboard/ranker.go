package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emilia-tb/sg60-game/internal/game"
)

// Ranker maintains the ranked collection behind a Store. Insert is the only
// mutation path and is serialized internally, so the read-merge-write cycle
// behaves as a single logical transaction even over stores with no locking
// of their own.
type Ranker struct {
	mu       sync.Mutex
	store    Store
	capacity int
	now      func() time.Time
	logger   zerolog.Logger
}

// NewRanker builds a ranker with the given storage cap (K).
func NewRanker(store Store, capacity int, logger zerolog.Logger) *Ranker {
	if capacity <= 0 {
		capacity = 50
	}
	return &Ranker{
		store:    store,
		capacity: capacity,
		now:      time.Now,
		logger:   logger.With().Str("component", "leaderboard_ranker").Logger(),
	}
}

// Insert merges the entry into the stored list, re-sorts, truncates to
// capacity and writes the list back. Returns the resulting ranked list.
func (r *Ranker) Insert(ctx context.Context, e Entry) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ranked list: %w", err)
	}

	entries = append(entries, e)
	SortEntries(entries)
	if len(entries) > r.capacity {
		entries = entries[:r.capacity]
	}

	if err := r.store.Save(ctx, entries); err != nil {
		return nil, fmt.Errorf("save ranked list: %w", err)
	}
	return entries, nil
}

// Top returns the first m entries of the stored list.
func (r *Ranker) Top(ctx context.Context, m int) ([]Entry, error) {
	entries, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ranked list: %w", err)
	}
	SortEntries(entries)
	return TopM(entries, m), nil
}

// Submit inserts a finished session, satisfying the session controller's
// leaderboard port in local-only mode.
func (r *Ranker) Submit(ctx context.Context, res game.Result) error {
	_, err := r.Insert(ctx, Entry{
		Name:      res.Name,
		Score:     res.Score,
		TotalTime: res.TotalSeconds,
		Timestamp: r.now().UnixMilli(),
	})
	return err
}
