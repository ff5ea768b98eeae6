package interfaces

import (
	"context"
	"time"
)

// Cache defines the key/value cache gateway consumed by the services.
//
// The cache is advisory: it shadows the store, it is never part of the
// consistency boundary. Callers treat every error from it as ignorable.
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) (interface{}, error)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in the cache
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes all values from the cache
	Clear(ctx context.Context) error
}
