package memory

import (
	"context"
	"sync"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

// ItemStore is the in-process cache store used with STORE_DRIVER=memory.
type ItemStore struct {
	mu   sync.RWMutex
	byID map[string]domain.Item
}

func NewItemStore() *ItemStore {
	return &ItemStore{byID: make(map[string]domain.Item)}
}

func clone(it domain.Item) *domain.Item {
	it.Categories = domain.NewCategories(it.Categories.Sorted()...)
	return &it
}

func (s *ItemStore) Put(ctx context.Context, it *domain.Item) error {
	if err := domain.ValidateItem(it); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[it.ID]; exists {
		return nil
	}
	s.byID[it.ID] = *clone(*it)
	return nil
}

func (s *ItemStore) Get(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("item not found")
	}
	return clone(it), nil
}

func (s *ItemStore) GetMany(ctx context.Context, ids []string) (map[string]*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.Item, len(ids))
	for _, id := range ids {
		if it, ok := s.byID[id]; ok {
			out[id] = clone(it)
		}
	}
	return out, nil
}

func (s *ItemStore) GetCategories(ctx context.Context, id string) (domain.Categories, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("item not found")
	}
	return domain.NewCategories(it.Categories.Sorted()...), nil
}

func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
