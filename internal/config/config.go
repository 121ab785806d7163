package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	AppEnv string

	HTTPAddr string

	// Storage
	StoreDriver       string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration
	StoreTimeout      time.Duration
	MigrateOnStart    bool

	// Redis & Caching (empty REDIS_URL = in-process cache)
	RedisURL     string
	CacheTTLItem time.Duration

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string

	// Ticketmaster
	TMBaseURL       string
	TMAPIKey        string
	TMRadiusKm      int
	ProviderTimeout time.Duration
	CBMaxFailures   int
	CBResetTimeout  time.Duration

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8086")

	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres))
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.DBMaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", 25)
	cfg.DBMaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", 25)
	cfg.DBConnMaxIdleTime = getDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute)
	cfg.StoreTimeout = getDuration("STORE_TIMEOUT", 3*time.Second)
	cfg.MigrateOnStart = getBool("DB_MIGRATE_ON_START", true)

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTLItem = getDuration("CACHE_TTL_ITEM", 10*time.Minute)

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "city.events")

	cfg.TMBaseURL = getEnv("TM_BASE_URL", "https://app.ticketmaster.com")
	cfg.TMAPIKey = getEnv("TM_API_KEY", "")
	cfg.TMRadiusKm = getIntEnv("TM_RADIUS_KM", 50)
	cfg.ProviderTimeout = getDuration("PROVIDER_TIMEOUT", 5*time.Second)
	cfg.CBMaxFailures = getIntEnv("CB_MAX_FAILURES", 5)
	cfg.CBResetTimeout = getDuration("CB_RESET_TIMEOUT", 30*time.Second)

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getBool("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing DATABASE_URL")
		}
	case StoreDriverMemory:
		if c.AppEnv != "dev" {
			return fmt.Errorf("STORE_DRIVER=memory is only allowed when APP_ENV=dev")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q (postgres|memory)", c.StoreDriver)
	}
	if c.TMAPIKey == "" {
		return fmt.Errorf("missing TM_API_KEY")
	}
	if c.TMRadiusKm <= 0 {
		return fmt.Errorf("TM_RADIUS_KM must be positive")
	}
	// dev may run without a broker
	if c.AppEnv != "dev" && c.RabbitURL == "" {
		return fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}
	return nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
