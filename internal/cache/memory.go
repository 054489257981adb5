package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local TTL cache.
type MemoryCache struct {
	mu         sync.RWMutex
	defaultTTL time.Duration
	m          map[string]entry
	now        func() time.Time
}

type entry struct {
	val string
	exp time.Time
}

// NewMemoryCache builds a cache whose entries expire after defaultTTL unless
// Set is given an explicit expiration.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Second
	}
	return &MemoryCache{
		defaultTTL: defaultTTL,
		m:          make(map[string]entry),
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	now := c.now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return "", ErrMiss
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return "", ErrMiss
	}
	return e.val, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = c.defaultTTL
	}
	c.mu.Lock()
	c.m[key] = entry{val: value, exp: c.now().Add(expiration)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	return nil
}
