package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/coocood/freecache"

	"github.com/bananaflix/backend/internal/domain/providers"
)

const defaultMemoryCacheSize = 16 * 1024 * 1024

// MemoryAdapter implements CacheProvider with an in-process freecache store.
// It is the fallback when Redis is unavailable so trending and discover
// caching keep working on a single node.
type MemoryAdapter struct {
	cache *freecache.Cache
}

// NewMemoryAdapter creates a new in-process cache adapter. sizeBytes <= 0
// selects a 16MB default.
func NewMemoryAdapter(sizeBytes int) providers.CacheProvider {
	if sizeBytes <= 0 {
		sizeBytes = defaultMemoryCacheSize
	}
	return &MemoryAdapter{cache: freecache.NewCache(sizeBytes)}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	value, err := a.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return value, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	if err := a.cache.Set([]byte(key), value, expirationSeconds); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.cache.Del([]byte(key))
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	_, err := a.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence in cache: %w", err)
	}
	return true, nil
}
