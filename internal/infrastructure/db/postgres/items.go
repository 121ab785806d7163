package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/lib/pq"
)

// errItemExists aborts the insert tx when another writer stored the id first.
var errItemExists = errors.New("item already stored")

type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// Put stores it unless an item with the same id exists, in which case it is a
// successful no-op. The item row and its categories commit together.
func (r *ItemRepo) Put(ctx context.Context, it *domain.Item) error {
	if err := domain.ValidateItem(it); err != nil {
		return err
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertItemSQL,
			it.ID, it.Name, it.Rating, it.Address, it.ImageURL, it.URL, it.Distance,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return errItemExists
			}
			return err
		}

		for _, c := range it.Categories.Sorted() {
			if _, err := execSavepoint(ctx, tx, "category_insert", insertCategorySQL, it.ID, c); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errItemExists) {
		return nil
	}
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

func (r *ItemRepo) Get(ctx context.Context, id string) (*domain.Item, error) {
	var it domain.Item
	err := r.db.QueryRowContext(ctx, getItemSQL, id).Scan(
		&it.ID, &it.Name, &it.Rating, &it.Address, &it.ImageURL, &it.URL, &it.Distance,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("item not found")
	}
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}

	cats, err := r.categories(ctx, id)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	it.Categories = cats
	return &it, nil
}

// GetMany returns the stored items among ids. Misses are omitted.
func (r *ItemRepo) GetMany(ctx context.Context, ids []string) (map[string]*domain.Item, error) {
	out := make(map[string]*domain.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, getItemsSQL, pq.Array(ids))
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer rows.Close()

	for rows.Next() {
		it := &domain.Item{Categories: domain.Categories{}}
		if err := rows.Scan(&it.ID, &it.Name, &it.Rating, &it.Address, &it.ImageURL, &it.URL, &it.Distance); err != nil {
			return nil, domain.ErrStoreUnavailable(err)
		}
		out[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	if len(out) == 0 {
		return out, nil
	}

	crows, err := r.db.QueryContext(ctx, getCategoriesManySQL, pq.Array(ids))
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer crows.Close()

	for crows.Next() {
		var id, c string
		if err := crows.Scan(&id, &c); err != nil {
			return nil, domain.ErrStoreUnavailable(err)
		}
		if it, ok := out[id]; ok {
			it.Categories.Add(c)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return out, nil
}

// GetCategories returns an empty set for an item without categories and
// not_found for an unknown item.
func (r *ItemRepo) GetCategories(ctx context.Context, id string) (domain.Categories, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, itemExistsSQL, id).Scan(&exists); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	if !exists {
		return nil, domain.ErrNotFound("item not found")
	}

	cats, err := r.categories(ctx, id)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return cats, nil
}

func (r *ItemRepo) categories(ctx context.Context, id string) (domain.Categories, error) {
	rows, err := r.db.QueryContext(ctx, getCategoriesSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := domain.Categories{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats.Add(c)
	}
	return cats, rows.Err()
}
