package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonRoundTripCache stores values the way the Redis backend does: marshaled
// to JSON on Set, unmarshaled into a generic document on Get.
type jsonRoundTripCache struct {
	entries map[string][]byte
}

func newJSONRoundTripCache() *jsonRoundTripCache {
	return &jsonRoundTripCache{entries: make(map[string][]byte)}
}

func (c *jsonRoundTripCache) Get(ctx context.Context, key string) (interface{}, error) {
	data, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (c *jsonRoundTripCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *jsonRoundTripCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *jsonRoundTripCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (c *jsonRoundTripCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func (c *jsonRoundTripCache) Clear(ctx context.Context) error {
	c.entries = make(map[string][]byte)
	return nil
}

func TestGetOrFetchPopulatesOnMiss(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()
	fetches := 0

	fetch := func(ctx context.Context) (string, error) {
		fetches++
		return "solaris", nil
	}

	value, err := GetOrFetch(ctx, c, "movie:1", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "solaris", value)

	value, err = GetOrFetch(ctx, c, "movie:1", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "solaris", value)
	assert.Equal(t, 1, fetches)
}

func TestGetOrFetchPropagatesFetchError(t *testing.T) {
	c := newTestMemory(t)
	boom := errors.New("storage down")

	_, err := GetOrFetch(context.Background(), c, "movie:1", time.Minute,
		func(ctx context.Context) (string, error) {
			return "", boom
		})

	assert.ErrorIs(t, err, boom)
}

func TestGetOrFetchHitsAcrossJSONRoundTrip(t *testing.T) {
	type movieDoc struct {
		ID     string  `json:"id"`
		Title  string  `json:"title"`
		Rating float64 `json:"rating"`
	}

	c := newJSONRoundTripCache()
	ctx := context.Background()
	fetches := 0

	fetch := func(ctx context.Context) (*movieDoc, error) {
		fetches++
		return &movieDoc{ID: "m1", Title: "Solaris", Rating: 4.5}, nil
	}

	for i := 0; i < 3; i++ {
		value, err := GetOrFetch(ctx, c, "movie:m1", time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, "Solaris", value.Title)
		assert.InDelta(t, 4.5, value.Rating, 0.0001)
	}

	assert.Equal(t, 1, fetches)
}

func TestGetOrFetchIgnoresMistypedEntry(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", 12345, time.Minute))

	value, err := GetOrFetch(ctx, c, "movie:1", time.Minute,
		func(ctx context.Context) (string, error) {
			return "solaris", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "solaris", value)
}
