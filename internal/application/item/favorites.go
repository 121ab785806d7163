package item

import (
	"context"
	"strings"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.ErrValidationMeta("invalid user", map[string]string{"user_id": "required"})
	}
	return userID, nil
}

// SetFavorites marks itemIDs for the user. Already-marked ids are skipped and
// the ids that were newly marked are returned, also when err is non-nil.
func (s *Service) SetFavorites(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	ids := domain.NormalizeIDs(itemIDs)
	if len(ids) == 0 {
		return []string{}, nil
	}

	applied, err := s.history.Add(ctx, userID, ids)
	metrics.RecordFavoriteChanges("add", len(applied))
	s.publishFavorites(ctx, RKFavoriteAdded, userID, applied)
	return applied, err
}

// UnsetFavorites removes itemIDs from the user's favorites; absent pairs are no-ops.
func (s *Service) UnsetFavorites(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	ids := domain.NormalizeIDs(itemIDs)
	if len(ids) == 0 {
		return []string{}, nil
	}

	applied, err := s.history.Remove(ctx, userID, ids)
	metrics.RecordFavoriteChanges("remove", len(applied))
	s.publishFavorites(ctx, RKFavoriteRemoved, userID, applied)
	return applied, err
}

// ListFavorites returns the user's favorites that still resolve to a cached item.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]*domain.Item, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	return s.history.ListItems(ctx, userID)
}

func (s *Service) publishFavorites(ctx context.Context, rk, userID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	now := s.clock.Now().UTC()
	env := DomainEventEnvelope[FavoritesChangedPayload]{
		Version:    1,
		Producer:   "nearby-service",
		OccurredAt: now,
		Payload: FavoritesChangedPayload{
			UserID:     userID,
			ItemIDs:    ids,
			OccurredAt: now,
		},
	}
	if err := s.pub.PublishEvent(ctx, rk, env); err != nil {
		zlog.Error().
			Err(err).
			Str("rk", rk).
			Str("user_id", userID).
			Msg("publish domain event failed")
	}
}
