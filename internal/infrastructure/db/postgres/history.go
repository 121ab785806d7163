package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

// HistoryRepo stores favorites. Item ids are not checked against the items
// table; ListItems resolves them through items and drops what is missing.
type HistoryRepo struct {
	db    *sql.DB
	items item.ItemStore
	clock item.Clock
}

func NewHistoryRepo(db *sql.DB, items item.ItemStore, clock item.Clock) *HistoryRepo {
	return &HistoryRepo{db: db, items: items, clock: clock}
}

func (r *HistoryRepo) ensureUser(ctx context.Context, userID string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, userExistsSQL, userID).Scan(&exists); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	if !exists {
		return domain.ErrNotFound("user not found")
	}
	return nil
}

// Add inserts each pair on its own. Pairs that already exist are skipped and
// not reported. On failure the ids applied so far are returned with the error.
func (r *HistoryRepo) Add(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	applied := make([]string, 0, len(itemIDs))
	if err := r.ensureUser(ctx, userID); err != nil {
		return applied, err
	}

	for _, id := range itemIDs {
		if err := ctx.Err(); err != nil {
			return applied, domain.ErrStoreUnavailable(err)
		}
		_, err := r.db.ExecContext(ctx, insertFavoriteSQL, userID, id, r.clock.Now().UTC())
		if err != nil {
			switch {
			case isUniqueViolation(err):
				continue
			case isForeignKeyViolation(err):
				return applied, domain.ErrNotFound("user not found")
			default:
				return applied, domain.ErrStoreUnavailable(err)
			}
		}
		applied = append(applied, id)
	}
	return applied, nil
}

func (r *HistoryRepo) Remove(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	applied := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := ctx.Err(); err != nil {
			return applied, domain.ErrStoreUnavailable(err)
		}
		res, err := r.db.ExecContext(ctx, deleteFavoriteSQL, userID, id)
		if err != nil {
			return applied, domain.ErrStoreUnavailable(err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			applied = append(applied, id)
		}
	}
	return applied, nil
}

func (r *HistoryRepo) ListItemIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listFavoriteIDsSQL, userID)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.ErrStoreUnavailable(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return out, nil
}

// ListItems keeps the most recently favorited first.
func (r *HistoryRepo) ListItems(ctx context.Context, userID string) ([]*domain.Item, error) {
	ids, err := r.ListItemIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	found, err := r.items.GetMany(ctx, ids)
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
