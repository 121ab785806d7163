// Package local is the in-process detail cache used when no Redis URL is
// configured. Values are stored JSON-encoded so callers observe the same
// copy semantics as with Redis.
package local

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

type Cache struct {
	c *gocache.Cache
}

func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (l *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	v, ok := l.c.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set with ttl 0 uses the cache's default TTL.
func (l *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	l.c.Set(key, b, ttl)
	return nil
}

func (l *Cache) Len() int { return l.c.ItemCount() }
