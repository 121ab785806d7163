package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, getUserSQL, id).Scan(&u.ID, &u.PasswordHash, &u.FirstName, &u.LastName)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return domain.User{}, domain.ErrStoreUnavailable(err)
	}
	return u, nil
}

// Upsert is used by the seed tool; the service never writes users.
func (r *UserRepo) Upsert(ctx context.Context, u domain.User) error {
	if _, err := r.db.ExecContext(ctx, upsertUserSQL, u.ID, u.PasswordHash, u.FirstName, u.LastName); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}
