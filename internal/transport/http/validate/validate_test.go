package validate

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoriteReq struct {
	UserID   string   `json:"user_id" validate:"required"`
	Favorite []string `json:"favorite" validate:"required,max=3"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid_json_decoding", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"user_id":"1111","favorite":["A"]}`))
		var dst favoriteReq
		require.NoError(t, DecodeJSON(req, &dst))
		assert.Equal(t, "1111", dst.UserID)
		assert.Equal(t, []string{"A"}, dst.Favorite)
	})

	t.Run("unknown_field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"user_id":"1111","extra":1}`))
		var dst favoriteReq
		err := DecodeJSON(req, &dst)
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
		var dst favoriteReq
		assert.Error(t, DecodeJSON(req, &dst))
	})
}

func TestStruct(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, Struct(favoriteReq{UserID: "1111", Favorite: []string{}}))
	})

	t.Run("reports_json_names", func(t *testing.T) {
		err := Struct(favoriteReq{Favorite: []string{"a", "b", "c", "d"}})
		require.Error(t, err)
		ae := err.(*domain.AppError)
		assert.Equal(t, "required", ae.Meta["user_id"])
		assert.Equal(t, "max=3", ae.Meta["favorite"])
	})

	t.Run("missing_list", func(t *testing.T) {
		err := Struct(favoriteReq{UserID: "1111"})
		require.Error(t, err)
		assert.Equal(t, "required", err.(*domain.AppError).Meta["favorite"])
	})
}

func TestFloat(t *testing.T) {
	q := url.Values{"lat": {"29.682684"}, "lon": {"abc"}, "term": {""}}

	f, err := Float(q, "lat")
	require.NoError(t, err)
	assert.Equal(t, 29.682684, f)

	_, err = Float(q, "lon")
	assert.Equal(t, "must be a number", err.(*domain.AppError).Meta["lon"])

	_, err = Float(q, "missing")
	assert.Equal(t, "required", err.(*domain.AppError).Meta["missing"])
}
