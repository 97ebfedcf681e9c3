// Package repository holds the in-memory scouting record and leaderboard stores.
package repository

import (
	"context"

	"github.com/okian/scoutboard/internal/domain/model"
)

// RecordStore keeps submitted scouting records in insertion order.
type RecordStore interface {
	// Append stores rec at the end of the collection.
	Append(ctx context.Context, rec model.Record) error
	// All returns a snapshot copy of every record in insertion order.
	All(ctx context.Context) []model.Record
	// DeleteWhere removes every record whose key equals value and returns
	// how many were removed.
	DeleteWhere(ctx context.Context, key string, value any) int
	// Clear removes every record.
	Clear(ctx context.Context)
	// Count returns the number of stored records.
	Count(ctx context.Context) int
}

// Outcome describes what a leaderboard submission did to the stored state.
type Outcome int

// Submission outcomes.
const (
	Inserted Outcome = iota
	Replaced
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	default:
		return "discarded"
	}
}

// BoardStore keeps the best score per username, bounded by a capacity.
type BoardStore interface {
	// Submit inserts e, or replaces the stored entry for e.Username when
	// e.Score is strictly greater. The board is then re-sorted by score
	// descending and truncated to capacity.
	Submit(ctx context.Context, e model.Entry) (Outcome, error)
	// Top returns up to n entries ordered by score descending.
	Top(ctx context.Context, n int) ([]model.Entry, error)
	// Clear removes every entry.
	Clear(ctx context.Context)
	// Count returns the number of stored entries.
	Count(ctx context.Context) int
	// Capacity returns the maximum number of retained entries.
	Capacity() int
}
