package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

type HistoryStore struct {
	mu    sync.RWMutex
	favs  map[string]map[string]time.Time // user -> item -> marked at
	users *UserRepo
	items item.ItemStore
	clock item.Clock
}

func NewHistoryStore(users *UserRepo, items item.ItemStore, clock item.Clock) *HistoryStore {
	return &HistoryStore{
		favs:  make(map[string]map[string]time.Time),
		users: users,
		items: items,
		clock: clock,
	}
}

func (s *HistoryStore) Add(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	applied := make([]string, 0, len(itemIDs))
	if !s.users.exists(userID) {
		return applied, domain.ErrNotFound("user not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.favs[userID]
	if !ok {
		set = make(map[string]time.Time)
		s.favs[userID] = set
	}
	for _, id := range itemIDs {
		if err := ctx.Err(); err != nil {
			return applied, domain.ErrStoreUnavailable(err)
		}
		if _, exists := set[id]; exists {
			continue
		}
		set[id] = s.clock.Now().UTC()
		applied = append(applied, id)
	}
	return applied, nil
}

func (s *HistoryStore) Remove(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	applied := make([]string, 0, len(itemIDs))

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.favs[userID]
	for _, id := range itemIDs {
		if err := ctx.Err(); err != nil {
			return applied, domain.ErrStoreUnavailable(err)
		}
		if _, exists := set[id]; !exists {
			continue
		}
		delete(set, id)
		applied = append(applied, id)
	}
	return applied, nil
}

// ListItemIDs orders by most recently marked, like the postgres store.
func (s *HistoryStore) ListItemIDs(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.favs[userID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := set[out[i]], set[out[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i] < out[j]
	})
	return out, nil
}

func (s *HistoryStore) ListItems(ctx context.Context, userID string) ([]*domain.Item, error) {
	ids, err := s.ListItemIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	found, err := s.items.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Item, 0, len(found))
	for _, id := range ids {
		if it, ok := found[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}
