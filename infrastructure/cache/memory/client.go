// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Holds fetched feed bodies for the lifetime of a run with TTL expiry

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a cache whose entries never expire unless Set is given a TTL
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(time.Minute)
}

// NewMemoryCacheWithCleanup creates a cache that purges expired entries every cleanupInterval
func NewMemoryCacheWithCleanup(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	// Callers may mutate what they get back
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a value in the cache with the given TTL; a zero TTL never expires
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, expiration)

	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Count returns the number of entries, including expired ones not yet purged
func (c *MemoryCache) Count() int {
	return c.items.ItemCount()
}
