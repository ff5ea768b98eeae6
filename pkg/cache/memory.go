package cache

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"
)

var (
	// ErrCacheMiss is returned when a key is not present.
	ErrCacheMiss = errors.New("cache miss")
	// ErrExpired is returned when a key is present but past its TTL.
	ErrExpired = errors.New("cache entry expired")
)

type entry struct {
	value      interface{}
	expiration time.Time
}

// Memory is an in-memory cache. It backs tests and cache-less deployments.
type Memory struct {
	entries map[string]*entry
	mu      sync.RWMutex
	done    chan struct{}
}

// NewMemory creates a new in-memory cache and starts its cleanup loop.
func NewMemory() *Memory {
	c := &Memory{
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value from the cache.
func (c *Memory) Get(ctx context.Context, key string) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(e.expiration) {
		return nil, ErrExpired
	}
	return e.value, nil
}

// Set stores a value in the cache with a TTL.
func (c *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from the cache.
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// DeletePattern removes every key matching a glob pattern.
func (c *Memory) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if ok, err := path.Match(pattern, key); err != nil {
			return err
		} else if ok {
			delete(c.entries, key)
		}
	}
	return nil
}

// Exists checks if an unexpired key exists in the cache.
func (c *Memory) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return time.Now().Before(e.expiration), nil
}

// Clear removes all values from the cache.
func (c *Memory) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	return nil
}

// Close stops the cleanup loop.
func (c *Memory) Close() {
	close(c.done)
}

// cleanup periodically removes expired entries.
func (c *Memory) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, e := range c.entries {
				if now.After(e.expiration) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
