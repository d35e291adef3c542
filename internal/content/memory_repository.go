package content

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string][]Page
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string][]Page)}
}

func (r *memoryRepository) GetPages(_ context.Context, category string) ([]Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pages, ok := r.store[category]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]Page(nil), pages...), nil
}

func (r *memoryRepository) ListCategories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]string, 0, len(r.store))
	for category := range r.store {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *memoryRepository) SaveCategory(_ context.Context, category string, pages []Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[category] = append([]Page(nil), pages...)
	return nil
}
