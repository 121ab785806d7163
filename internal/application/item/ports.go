package item

import (
	"context"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// ItemStore is the durable, deduplicating item cache.
// Put is insert-or-no-op: an existing id is left untouched and reported as success.
type ItemStore interface {
	Put(ctx context.Context, it *domain.Item) error
	Get(ctx context.Context, id string) (*domain.Item, error)
	GetMany(ctx context.Context, ids []string) (map[string]*domain.Item, error)
	GetCategories(ctx context.Context, id string) (domain.Categories, error)
}

// HistoryStore keeps the user <-> item favorites relation.
// Add and Remove apply each id independently and return the ids that changed state.
type HistoryStore interface {
	Add(ctx context.Context, userID string, itemIDs []string) ([]string, error)
	Remove(ctx context.Context, userID string, itemIDs []string) ([]string, error)
	ListItemIDs(ctx context.Context, userID string) ([]string, error)
	ListItems(ctx context.Context, userID string) ([]*domain.Item, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type PasswordChecker interface {
	Compare(hash, password string) error
}

// Provider is the external events search.
type Provider interface {
	Search(ctx context.Context, geoKey, keyword string, radiusKm int) ([]domain.RawItem, error)
}

// Cache is the item detail cache. Items are immutable, so entries only expire.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}
