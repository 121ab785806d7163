package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/config"
	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/caching/local"
	rediscache "github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/caching/redis"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/memory"
	rabbitpub "github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/security"
	"github.com/baechuer/cityevents/services/nearby-service/internal/infrastructure/ticketmaster"
	"github.com/baechuer/cityevents/services/nearby-service/internal/logger"
	"github.com/baechuer/cityevents/services/nearby-service/internal/metrics"
	"github.com/baechuer/cityevents/services/nearby-service/internal/pkg/circuitbreaker"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/handlers"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock implements item.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Publisher *rabbitpub.Publisher
	Redis     *rediscache.Client
}

func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogLevel != "" {
		_ = os.Setenv("LOG_LEVEL", cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		_ = os.Setenv("LOG_FORMAT", cfg.LogFormat)
	}
	logger.Init()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.StoreDriver == config.StoreDriverPostgres {
		db = openDB(rootCtx, cfg)
		defer db.Close()
	}

	app, err := NewApp(cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app init failed")
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		zlog.Info().Msg("shutdown signal received")
	case err := <-errCh:
		zlog.Error().Err(err).Msg("server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
	zlog.Info().Msg("shutdown complete")
}

func openDB(ctx context.Context, cfg *config.Config) *sql.DB {
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		zlog.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.MigrateOnStart {
		migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := postgres.Migrate(migCtx, db); err != nil {
			zlog.Fatal().Err(err).Msg("db migrate failed")
		}
	}
	return db
}

// NewApp wires the service. db is only used with the postgres store driver.
func NewApp(cfg *config.Config, db *sql.DB) (*App, error) {
	clock := sysClock{}
	hasher := security.NewBcryptHasher(0)
	app := &App{Config: cfg, DB: db}
	var checks []handlers.Check

	// 1) Stores
	var (
		items   item.ItemStore
		history item.HistoryStore
		users   item.UserStore
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		zlog.Warn().Msg("STORE_DRIVER=memory: items and favorites are lost on restart")
		mItems := memory.NewItemStore()
		mUsers := memory.NewUserRepo()
		if err := item.SeedUser(context.Background(), mUsers, hasher, item.DemoUser(), domain.DemoUserPassword); err != nil {
			return nil, fmt.Errorf("seed demo user: %w", err)
		}
		zlog.Info().Str("user_id", domain.DemoUserID).Msg("memory store seeded with demo user")
		items, users = mItems, mUsers
		history = memory.NewHistoryStore(mUsers, mItems, clock)
	default:
		pItems := postgres.NewItemRepo(db)
		items = pItems
		users = postgres.NewUserRepo(db)
		history = postgres.NewHistoryRepo(db, pItems, clock)
		checks = append(checks, handlers.Check{Name: "postgres", Fn: db.PingContext})
	}

	// 2) Item detail cache
	var cache item.Cache
	if cfg.RedisURL != "" {
		rc, err := rediscache.New(cfg.RedisURL, cfg.CacheTTLItem)
		if err != nil {
			return nil, err
		}
		app.Redis = rc
		cache = rc
		checks = append(checks, handlers.Check{Name: "redis", Fn: rc.Ping})
		zlog.Info().Msg("redis cache ready")
	} else {
		cache = local.New(cfg.CacheTTLItem)
		zlog.Info().Msg("REDIS_URL empty: using in-process item cache")
	}

	// 3) Publisher
	var pub item.EventPublisher = item.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Publisher = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	// 4) Provider
	breaker := circuitbreaker.New("ticketmaster", cfg.CBMaxFailures, cfg.CBResetTimeout, 1,
		circuitbreaker.WithStateChange(func(name string, to circuitbreaker.State) {
			metrics.RecordCircuitStateChange(name, to.String())
		}),
	)
	provider, err := ticketmaster.New(ticketmaster.Config{
		BaseURL: cfg.TMBaseURL,
		APIKey:  cfg.TMAPIKey,
		Timeout: cfg.ProviderTimeout,
	}, breaker)
	if err != nil {
		app.Close()
		return nil, err
	}

	// 5) Application
	svc := item.New(item.Deps{
		Items:     items,
		History:   history,
		Users:     users,
		Passwords: hasher,
		Provider:  provider,
		Clock:     clock,
		Cache:     cache,
		Publisher: pub,
	}, cfg.TMRadiusKm, cfg.CacheTTLItem)

	// 6) Transport
	h := handlers.NewNearbyHandler(svc, handlers.Timeouts{
		Search: cfg.ProviderTimeout + cfg.StoreTimeout,
		Store:  cfg.StoreTimeout,
	})
	z := handlers.NewHealthHandler(checks...)

	app.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(h, z, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return app, nil
}
