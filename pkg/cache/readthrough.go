package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/reelstack/reelstack/pkg/interfaces"
)

// GetOrFetch returns the cached value under key when present and unexpired;
// otherwise it computes the value via fetch, stores it with the given TTL,
// and returns it. Cache failures on either side degrade to a plain fetch —
// the cache is advisory and must never fail a read.
//
// The in-memory backend hands back the stored value as-is; the Redis
// backend round-trips values through JSON and returns generic documents.
// Both shapes are recovered into T, so a warm key is a hit on every
// backend.
func GetOrFetch[T any](
	ctx context.Context,
	c interfaces.Cache,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	if cached, err := c.Get(ctx, key); err == nil {
		if value, ok := cached.(T); ok {
			return value, nil
		}
		if value, ok := decode[T](cached); ok {
			return value, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	// Best effort; a full or unreachable cache does not fail the read.
	_ = c.Set(ctx, key, value, ttl)

	return value, nil
}

// decode recovers a typed value from a backend that stored it as generic
// JSON. An entry that does not re-marshal into T is treated as a miss.
func decode[T any](cached interface{}) (T, bool) {
	var value T
	raw, err := json.Marshal(cached)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false
	}
	return value, true
}
