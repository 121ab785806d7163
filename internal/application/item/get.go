package item

import (
	"context"
	"strings"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// GetItem reads a cached item. Items never change once stored, so the detail
// cache needs no invalidation.
func (s *Service) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrValidationMeta("invalid item id", map[string]string{"item_id": "required"})
	}

	key := cacheKeyItem(id)
	if s.cache != nil {
		var cached domain.Item
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			zlog.Debug().Str("key", key).Msg("cache hit")
			if cached.Categories == nil {
				cached.Categories = domain.Categories{}
			}
			return &cached, nil
		}
	}

	it, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, it, s.ttlItem); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return it, nil
}
