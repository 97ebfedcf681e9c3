package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/pkg/metrics"
)

// MemoryBoard is a BoardStore backed by a slice kept in score order.
//
// Ordering: score DESC; entries with equal scores keep their relative
// insertion order, so at the capacity boundary the newest tied entry is
// the one dropped.
type MemoryBoard struct {
	mu       sync.RWMutex
	entries  []model.Entry
	capacity int
}

var _ BoardStore = (*MemoryBoard)(nil)

// NewMemoryBoard creates an empty leaderboard.
func NewMemoryBoard(opts ...BoardOption) *MemoryBoard {
	b := &MemoryBoard{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit applies e under the best-score-per-username rule.
func (b *MemoryBoard) Submit(_ context.Context, e model.Entry) (Outcome, error) {
	if strings.TrimSpace(e.Username) == "" {
		return Discarded, ErrEmptyUser
	}
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(metrics.Since(start)) }()

	b.mu.Lock()
	defer b.mu.Unlock()

	outcome := Inserted
	idx := b.indexOf(e.Username)
	switch {
	case idx < 0:
		b.entries = append(b.entries, e)
	case e.Score > b.entries[idx].Score:
		b.entries[idx] = e
		outcome = Replaced
	default:
		return Discarded, nil
	}

	sortByScore(b.entries)
	if len(b.entries) > b.capacity {
		// Drop the tail so the backing array does not pin discarded entries.
		b.entries = append([]model.Entry(nil), b.entries[:b.capacity]...)
	}
	metrics.UpdateLeaderboardSize(len(b.entries))
	return outcome, nil
}

// Top returns up to n entries by score descending.
func (b *MemoryBoard) Top(_ context.Context, n int) ([]model.Entry, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(metrics.Since(start)) }()

	b.mu.RLock()
	out := make([]model.Entry, len(b.entries))
	copy(out, b.entries)
	b.mu.RUnlock()

	sortByScore(out)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Clear removes every entry.
func (b *MemoryBoard) Clear(_ context.Context) {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()

	metrics.UpdateLeaderboardSize(0)
}

// Count returns the number of stored entries.
func (b *MemoryBoard) Count(_ context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Capacity returns the maximum number of retained entries.
func (b *MemoryBoard) Capacity() int {
	return b.capacity
}

// indexOf must be called with b.mu held.
func (b *MemoryBoard) indexOf(username string) int {
	for i := range b.entries {
		if b.entries[i].Username == username {
			return i
		}
	}
	return -1
}

func sortByScore(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
