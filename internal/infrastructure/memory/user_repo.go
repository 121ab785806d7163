package memory

import (
	"context"
	"sync"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]domain.User)}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound("user not found")
	}
	return u, nil
}

func (r *UserRepo) Upsert(ctx context.Context, u domain.User) error {
	if u.ID == "" {
		return domain.ErrValidationMeta("invalid user", map[string]string{"user_id": "required"})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}

func (r *UserRepo) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}
