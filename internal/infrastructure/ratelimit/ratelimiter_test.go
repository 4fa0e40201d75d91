package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, PerMinute(5))
	fixed := time.Date(2025, 1, 1, 10, 0, 5, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "session-a")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "session-a")
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "session-b")
	require.NoError(t, err)
	assert.True(t, allowed, "other sessions have their own budget")
}

func TestRedisRateLimiter_NewWindowResets(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, PerMinute(1))
	now := time.Date(2025, 1, 1, 10, 0, 5, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "s")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "s")
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, err = limiter.Allow(ctx, "s")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_SetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, PerMinute(3))
	fixed := time.Unix(120, 0)
	limiter.now = func() time.Time { return fixed }

	_, err := limiter.Allow(context.Background(), "s")
	require.NoError(t, err)

	assert.Equal(t, time.Minute+time.Second, mr.TTL("ratelimit:s:2"))
}

func TestRedisRateLimiter_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	_, err := NewRedisRateLimiter(client, PerMinute(3)).Allow(context.Background(), "s")
	assert.Error(t, err)
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	limiter := NewLocalRateLimiter(PerMinute(3))
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "s")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "s")
	assert.False(t, allowed, "bucket is empty")

	now = now.Add(30 * time.Second)
	allowed, _ = limiter.Allow(ctx, "s")
	assert.True(t, allowed, "a token refills within half the window")
}

func TestLocalRateLimiter_Unlimited(t *testing.T) {
	limiter := NewLocalRateLimiter(Config{})
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "s")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLocalRateLimiter_Sweep(t *testing.T) {
	limiter := NewLocalRateLimiter(PerMinute(3))
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "old")
	now = now.Add(5 * time.Minute)
	_, _ = limiter.Allow(ctx, "fresh")

	assert.Equal(t, 1, limiter.Sweep(ctx, 3*time.Minute))
	assert.Len(t, limiter.visitors, 1)
}
