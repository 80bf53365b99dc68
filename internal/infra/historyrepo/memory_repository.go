package historyrepo

import (
	"context"
	"sync"

	"github.com/yanqian/shelter-console/internal/domain/submission"
)

// DefaultMemoryCapacity bounds how many records the in-memory history keeps.
const DefaultMemoryCapacity = 500

// MemoryRepository provides an in-memory submission history for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	records  []submission.Record
	capacity int
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// Save appends the record, evicting the oldest once full.
func (r *MemoryRepository) Save(_ context.Context, record submission.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, cloneRecord(record))
	if overflow := len(r.records) - r.capacity; overflow > 0 {
		r.records = append([]submission.Record(nil), r.records[overflow:]...)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]submission.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]submission.Record, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneRecord(r.records[i]))
	}
	return out, nil
}

func cloneRecord(record submission.Record) submission.Record {
	if record.Demand != nil {
		demand := *record.Demand
		record.Demand = &demand
	}
	return record
}

var _ submission.HistoryRepository = (*MemoryRepository)(nil)
