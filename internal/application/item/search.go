package item

import (
	"context"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/geo"
	"github.com/baechuer/cityevents/services/nearby-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

// SearchResult is a search seen by a specific user.
type SearchResult struct {
	Items     []*domain.Item
	Favorites map[string]struct{}
}

func (r SearchResult) IsFavorite(id string) bool {
	_, ok := r.Favorites[id]
	return ok
}

// Search queries the provider around (lat, lon), caches every mapped item and
// returns them in provider order. Provider failures degrade to an empty list.
func (s *Service) Search(ctx context.Context, lat, lon float64, keyword string) ([]*domain.Item, error) {
	key, err := geo.Encode(lat, lon, geo.SearchPrecision)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raws, err := s.provider.Search(ctx, key, keyword, s.radiusKm)
	if err != nil {
		metrics.ObserveProviderRequest(metrics.OutcomeError, time.Since(start))
		zlog.Warn().
			Err(err).
			Str("geo_key", key).
			Str("keyword", keyword).
			Msg("provider search failed, returning empty result")
		return []*domain.Item{}, nil
	}
	metrics.ObserveProviderRequest(metrics.OutcomeOK, time.Since(start))

	items := make([]*domain.Item, 0, len(raws))
	for i := range raws {
		it, err := domain.ItemFromRaw(raws[i])
		if err != nil {
			metrics.RecordDroppedRecord()
			zlog.Debug().Err(err).Int("index", i).Msg("provider record dropped")
			continue
		}
		items = append(items, it)
	}

	// best effort: the result is returned even if nothing could be cached
	for _, it := range items {
		if err := s.items.Put(ctx, it); err != nil {
			metrics.RecordItemCacheWrite(metrics.OutcomeError)
			zlog.Warn().Err(err).Str("item_id", it.ID).Msg("item cache write failed")
			continue
		}
		metrics.RecordItemCacheWrite(metrics.OutcomeOK)
	}

	return items, nil
}

// SearchForUser runs Search and marks the results the user has favorited.
func (s *Service) SearchForUser(ctx context.Context, userID string, lat, lon float64, keyword string) (SearchResult, error) {
	items, err := s.Search(ctx, lat, lon, keyword)
	if err != nil {
		return SearchResult{}, err
	}

	res := SearchResult{Items: items, Favorites: map[string]struct{}{}}
	if userID == "" || len(items) == 0 {
		return res, nil
	}

	ids, err := s.history.ListItemIDs(ctx, userID)
	if err != nil {
		zlog.Warn().Err(err).Str("user_id", userID).Msg("favorite lookup failed")
		return res, nil
	}
	for _, id := range ids {
		res.Favorites[id] = struct{}{}
	}
	return res, nil
}
