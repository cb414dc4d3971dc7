package cache

import (
	"context"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

// MemoryResults keeps finished recommendation lists in the Results bucket
// of a TTLCache. Used when no Redis instance is configured, and by tests.
type MemoryResults struct {
	cache *TTLCache
}

func NewMemoryResults(cache *TTLCache) *MemoryResults {
	return &MemoryResults{cache: cache}
}

func (m *MemoryResults) Get(_ context.Context, key string) ([]domain.Book, bool, error) {
	v, ok := m.cache.Get(Results, key)
	if !ok {
		return nil, false, nil
	}
	books, ok := v.([]domain.Book)
	if !ok {
		return nil, false, nil
	}
	return books, true, nil
}

func (m *MemoryResults) Set(_ context.Context, key string, books []domain.Book) error {
	m.cache.Set(Results, key, books)
	return nil
}
