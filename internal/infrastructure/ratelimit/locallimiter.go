package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter is an in-process token bucket per key, used when Redis is
// disabled. The bucket refills Limit tokens per Window and holds at most Limit.
type LocalRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	disabled bool
	now      func() time.Time
}

func NewLocalRateLimiter(config Config) *LocalRateLimiter {
	l := &LocalRateLimiter{
		visitors: make(map[string]*visitor),
		disabled: config.Unlimited(),
		now:      time.Now,
	}
	if !l.disabled {
		l.rate = rate.Limit(float64(config.Limit) / config.Window.Seconds())
		l.burst = config.Limit
	}
	return l
}

func (l *LocalRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.disabled {
		return true, nil
	}

	now := l.now()

	l.mu.Lock()
	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1), nil
}

// Sweep forgets keys idle for longer than idle and returns how many were dropped.
func (l *LocalRateLimiter) Sweep(_ context.Context, idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}
