package rates

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "USDJPY")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "USDJPY", 151.2, time.Minute))

	v, ok, err := c.Get(ctx, "USDJPY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 151.2, v)

	now = now.Add(59 * time.Second)
	_, ok, _ = c.Get(ctx, "USDJPY")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "USDJPY")
	assert.False(t, ok, "expired entries are never served")

	c.mu.RLock()
	assert.Empty(t, c.entries)
	c.mu.RUnlock()
}

func TestMemoryCacheClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "BTCUSD", 1, time.Hour))
	c.Clear()

	_, ok, err := c.Get(ctx, "BTCUSD")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestRedisCache needs a reachable server, e.g.
// TRADELOG_REDIS_ADDR=localhost:6379 go test ./rates
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TRADELOG_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRADELOG_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(addr, "", 0, "tradelog:test:")
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Set(ctx, "USDJPY", 149.87, 2*time.Second))
	v, ok, err := c.Get(ctx, "USDJPY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 149.87, v)

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "USDJPY")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
