package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	c := NewMemory()
	t.Cleanup(c.Close)
	return c
}

func TestMemorySetGet(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", "solaris", time.Minute))

	value, err := c.Get(ctx, "movie:1")
	require.NoError(t, err)
	assert.Equal(t, "solaris", value)
}

func TestMemoryMiss(t *testing.T) {
	c := newTestMemory(t)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryExpiry(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", "solaris", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "movie:1")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryDelete(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", "solaris", time.Minute))
	require.NoError(t, c.Delete(ctx, "movie:1"))

	_, err := c.Get(ctx, "movie:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryDeletePattern(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "users:all:page1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "users:all:page2", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "user:abc", 3, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "users:*"))

	_, err := c.Get(ctx, "users:all:page1")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "users:all:page2")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value, err := c.Get(ctx, "user:abc")
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}

func TestMemoryExists(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", "solaris", time.Minute))

	ok, err := c.Exists(ctx, "movie:1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, "movie:2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryClear(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:1", "solaris", time.Minute))
	require.NoError(t, c.Clear(ctx))

	_, err := c.Get(ctx, "movie:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
