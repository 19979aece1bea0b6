// Package cache stores derived results (streaks, calendars, folder trees) as
// JSON with a time to live, either in Redis or in process memory.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache is a JSON value cache. Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is the in-process fallback used when no Redis URL is configured.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(item.data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value. A ttl of zero keeps it until deleted.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Close() error { return nil }
