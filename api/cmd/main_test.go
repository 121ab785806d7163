package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/cityevents/services/nearby-service/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		AppEnv:         "dev",
		HTTPAddr:       ":8086",
		StoreDriver:    config.StoreDriverPostgres,
		TMAPIKey:       "test-key",
		TMRadiusKm:     50,
		CBMaxFailures:  5,
		CBResetTimeout: 30 * time.Second,
		StoreTimeout:   time.Second,
	}
}

func TestNewApp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	t.Run("should_correctly_wire_dependencies", func(t *testing.T) {
		app, err := NewApp(baseConfig(), db)
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, ":8086", app.Server.Addr)
		assert.NotNil(t, app.Server.Handler, "HTTP Handler should be initialized")
		assert.Nil(t, app.Publisher)
		assert.Nil(t, app.Redis)
	})

	t.Run("readyz_pings_postgres", func(t *testing.T) {
		app, err := NewApp(baseConfig(), db)
		require.NoError(t, err)

		mock.ExpectPing()
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fail_without_api_key", func(t *testing.T) {
		cfg := baseConfig()
		cfg.TMAPIKey = ""
		_, err := NewApp(cfg, db)
		assert.Error(t, err)
	})
}

func TestNewApp_MemoryStoreWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := baseConfig()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.RedisURL = "redis://" + mr.Addr()

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()
	require.NotNil(t, app.Redis)

	rr := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"redis":"up"}}`, rr.Body.String())
}

func TestNewApp_MemoryStoreHasDemoUser(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreDriver = config.StoreDriverMemory

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rr
	}

	t.Run("favorites_accepted", func(t *testing.T) {
		rr := serve(http.MethodPost, "/nearby/v1/history", `{"user_id":"1111","favorite":["A"]}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.JSONEq(t, `{"data":{"result":"SUCCESS","applied":["A"]}}`, rr.Body.String())
	})

	t.Run("login_with_default_password", func(t *testing.T) {
		rr := serve(http.MethodPost, "/nearby/v1/login", `{"user_id":"1111","password":"3229c1097c00d497a0fd282d586be050"}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.JSONEq(t, `{"data":{"result":"SUCCESS","user_id":"1111","name":"John Smith"}}`, rr.Body.String())
	})

	t.Run("other_users_still_unknown", func(t *testing.T) {
		rr := serve(http.MethodPost, "/nearby/v1/history", `{"user_id":"2222","favorite":["A"]}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSysClock_Now(t *testing.T) {
	assert.Equal(t, "UTC", sysClock{}.Now().Location().String())
}
