package item

import "time"

const (
	RKFavoriteAdded   = "favorite.added"
	RKFavoriteRemoved = "favorite.removed"
)

type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

type FavoritesChangedPayload struct {
	UserID     string    `json:"user_id"`
	ItemIDs    []string  `json:"item_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}
