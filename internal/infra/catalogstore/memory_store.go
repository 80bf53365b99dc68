package catalogstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

// MemoryStore keeps the catalog in process memory for tests/dev.
type MemoryStore struct {
	mu        sync.RWMutex
	catalog   forecast.Catalog
	present   bool
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Get implements catalog.Store.
func (s *MemoryStore) Get(_ context.Context) (forecast.Catalog, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return forecast.Catalog{}, false, nil
	}
	if !s.expiresAt.IsZero() && !s.expiresAt.After(s.now()) {
		return forecast.Catalog{}, false, nil
	}
	return clone(s.catalog), true, nil
}

// Save implements catalog.Store. A non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, c forecast.Catalog, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = clone(c)
	s.present = true
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func clone(c forecast.Catalog) forecast.Catalog {
	c.Sectors = append([]string(nil), c.Sectors...)
	c.SampleDates = append([]string(nil), c.SampleDates...)
	return c
}

var _ catalog.Store = (*MemoryStore)(nil)
