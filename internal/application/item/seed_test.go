package item

import (
	"context"
	"errors"
	"testing"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedUsers struct{ got []domain.User }

func (c *capturedUsers) Upsert(ctx context.Context, u domain.User) error {
	c.got = append(c.got, u)
	return nil
}

type prefixHasher struct{ err error }

func (h prefixHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func TestSeedUser(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_hashed_demo_user", func(t *testing.T) {
		users := &capturedUsers{}
		require.NoError(t, SeedUser(ctx, users, prefixHasher{}, DemoUser(), domain.DemoUserPassword))

		require.Len(t, users.got, 1)
		u := users.got[0]
		assert.Equal(t, "1111", u.ID)
		assert.Equal(t, "John Smith", u.FullName())
		assert.Equal(t, "hashed:"+domain.DemoUserPassword, u.PasswordHash)
	})

	t.Run("requires_id_and_password", func(t *testing.T) {
		users := &capturedUsers{}
		err := SeedUser(ctx, users, prefixHasher{}, domain.User{ID: " "}, "pw")
		assert.True(t, domain.HasCode(err, domain.CodeValidation))

		err = SeedUser(ctx, users, prefixHasher{}, DemoUser(), "")
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
		assert.Empty(t, users.got)
	})

	t.Run("hash_failure_stores_nothing", func(t *testing.T) {
		users := &capturedUsers{}
		err := SeedUser(ctx, users, prefixHasher{err: errors.New("boom")}, DemoUser(), "pw")
		assert.EqualError(t, err, "boom")
		assert.Empty(t, users.got)
	})
}
