package repository

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/pkg/metrics"
)

// MemoryRecords is a RecordStore backed by a slice. Mutations replace the
// slice header under the write lock, so readers never see a partial update.
type MemoryRecords struct {
	mu      sync.RWMutex
	records []model.Record
}

var _ RecordStore = (*MemoryRecords)(nil)

// NewMemoryRecords creates an empty record store.
func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{}
}

// Append stores rec at the end of the collection.
func (s *MemoryRecords) Append(_ context.Context, rec model.Record) error {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(metrics.Since(start)) }()

	s.mu.Lock()
	s.records = append(s.records, rec)
	n := len(s.records)
	s.mu.Unlock()

	metrics.UpdateRecordsTotal(n)
	return nil
}

// All returns a copy of the stored records in insertion order.
func (s *MemoryRecords) All(_ context.Context) []model.Record {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(metrics.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// DeleteWhere removes every record whose key equals value.
func (s *MemoryRecords) DeleteWhere(_ context.Context, key string, value any) int {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(metrics.Since(start)) }()

	s.mu.Lock()
	kept := make([]model.Record, 0, len(s.records))
	for _, rec := range s.records {
		v, ok := rec.Lookup(key)
		if ok && sameValue(v, value) {
			continue
		}
		kept = append(kept, rec)
	}
	removed := len(s.records) - len(kept)
	s.records = kept
	s.mu.Unlock()

	metrics.UpdateRecordsTotal(len(kept))
	return removed
}

// Clear removes every record.
func (s *MemoryRecords) Clear(_ context.Context) {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()

	metrics.UpdateRecordsTotal(0)
}

// Count returns the number of stored records.
func (s *MemoryRecords) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// sameValue compares decoded JSON values. Numbers compare by numeric value
// so 1 and 1.0 match.
func sameValue(a, b any) bool {
	an, aok := a.(json.Number)
	bn, bok := b.(json.Number)
	if aok && bok {
		if an == bn {
			return true
		}
		af, errA := an.Float64()
		bf, errB := bn.Float64()
		return errA == nil && errB == nil && af == bf
	}
	return reflect.DeepEqual(a, b)
}
