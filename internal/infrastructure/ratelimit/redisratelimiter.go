package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter shared by every console
// instance: one INCR per event on a key that expires with its window.
type RedisRateLimiter struct {
	client *redis.Client
	config Config
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, config Config) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Unlimited() {
		return true, nil
	}

	windowBucket := l.now().Unix() / int64(l.config.Window.Seconds())
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowBucket)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// First event of the window owns the TTL.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.config.Window+time.Second).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter ttl: %w", err)
		}
	}

	return count <= int64(l.config.Limit), nil
}
