package item

import (
	"context"
	"strings"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
)

type UserWriter interface {
	Upsert(ctx context.Context, u domain.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// SeedUser creates or replaces u with password stored through h.
func SeedUser(ctx context.Context, users UserWriter, h PasswordHasher, u domain.User, password string) error {
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" || password == "" {
		return domain.ErrValidationMeta("invalid user", map[string]string{
			"user_id":  "required",
			"password": "required",
		})
	}
	hash, err := h.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return users.Upsert(ctx, u)
}

// DemoUser is the account the seed tool writes by default.
func DemoUser() domain.User {
	return domain.User{
		ID:        domain.DemoUserID,
		FirstName: domain.DemoUserFirstName,
		LastName:  domain.DemoUserLastName,
	}
}
