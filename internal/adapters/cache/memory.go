package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements Cache in process. Used when Redis is not configured
// and in tests.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates new in-memory cache
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get fetches key from the in-process cache
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		if bytes, ok := val.([]byte); ok {
			return bytes, true
		}
	}
	return nil, false
}

// Set stores key in the in-process cache
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Ping always succeeds for the in-process cache
func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}
