package item

import (
	"context"
	"strings"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type LoginResult struct {
	UserID string
	Name   string
}

// Login is a single credential check. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, userID, password string) (LoginResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || password == "" {
		return LoginResult{}, domain.ErrValidationMeta("invalid credentials", map[string]string{
			"user_id":  "required",
			"password": "required",
		})
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.HasCode(err, domain.CodeNotFound) {
			return LoginResult{}, domain.ErrUnauthorized("invalid credentials")
		}
		return LoginResult{}, err
	}

	if err := s.passwords.Compare(u.PasswordHash, password); err != nil {
		zlog.Debug().Str("user_id", userID).Msg("password mismatch")
		return LoginResult{}, domain.ErrUnauthorized("invalid credentials")
	}

	return LoginResult{UserID: u.ID, Name: u.FullName()}, nil
}
