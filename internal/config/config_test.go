package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "HTTP_ADDR", "STORE_DRIVER", "DATABASE_URL", "TM_API_KEY", "TM_RADIUS_KM",
	"RABBIT_URL", "REDIS_URL", "CORS_ALLOWED_ORIGINS", "RL_ENABLED", "HTTP_READ_TIMEOUT",
	"CACHE_TTL_ITEM", "DB_MAX_OPEN_CONNS",
}

// clearEnv blanks every key Load reads in these tests; getEnv treats blank as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("should_return_error_if_database_url_is_missing", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.EqualError(t, err, "missing DATABASE_URL")
	})

	t.Run("should_return_error_if_api_key_is_missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/db")
		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.EqualError(t, err, "missing TM_API_KEY")
	})

	t.Run("should_load_successfully_with_valid_env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/db")
		t.Setenv("TM_API_KEY", "k3y")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.AppEnv)
		assert.Equal(t, ":8086", cfg.HTTPAddr)
		assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
		assert.Equal(t, "city.events", cfg.RabbitExchange)
		assert.Equal(t, 50, cfg.TMRadiusKm)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.True(t, cfg.RLEnabled)
		assert.Equal(t, 10*time.Minute, cfg.CacheTTLItem)
		assert.Empty(t, cfg.RedisURL)
	})

	t.Run("should_fail_in_prod_if_rabbit_url_is_missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "prod")
		t.Setenv("DATABASE_URL", "postgres://localhost")
		t.Setenv("TM_API_KEY", "k3y")

		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "RABBIT_URL")
	})

	t.Run("memory_driver_only_in_dev", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("TM_API_KEY", "k3y")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)

		t.Setenv("APP_ENV", "prod")
		t.Setenv("RABBIT_URL", "amqp://localhost")
		_, err = Load()
		assert.Error(t, err)
	})

	t.Run("unknown_driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "mysql")
		t.Setenv("TM_API_KEY", "k3y")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid STORE_DRIVER")
	})

	t.Run("parses_overrides_and_ignores_garbage", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost")
		t.Setenv("TM_API_KEY", "k3y")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
		t.Setenv("RL_ENABLED", "false")
		t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
		t.Setenv("DB_MAX_OPEN_CONNS", "x")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
		assert.False(t, cfg.RLEnabled)
		assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
		assert.Equal(t, 25, cfg.DBMaxOpenConns)
	})
}
