package cache

import (
	"context"
	"time"

	"github.com/cafeassist/backend/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is a thread-safe in-memory cache with TTL support
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache. Expired entries are purged
// every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	value, found := c.cache.Get(key)
	if !found {
		return nil, domain.ErrCacheMiss
	}
	return value, nil
}

// Set stores a value in the cache with TTL. A zero ttl uses the default.
// Values are stored as-is; callers must not mutate them afterwards.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, found := c.cache.Get(key)
	return found, nil
}

// Size returns the current number of items in the cache, including expired
// items not yet purged
func (c *MemoryCache) Size() int {
	return c.cache.ItemCount()
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
