// Package ratelimit caps how many mutations one console session may issue.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more event for key fits in the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config is a budget of Limit events per Window.
type Config struct {
	Limit  int
	Window time.Duration
}

// PerMinute builds a Config of n events per minute.
func PerMinute(n int) Config {
	return Config{Limit: n, Window: time.Minute}
}

// Unlimited reports whether the config disables limiting.
func (c Config) Unlimited() bool {
	return c.Limit <= 0 || c.Window <= 0
}
