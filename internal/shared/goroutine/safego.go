// Package goroutine launches background work that must not take the server down.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/clinicplace/console/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs a panic with its stack instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverAndLog(log, name)
		fn()
	}()
}

// Every runs fn on each tick of interval until ctx is done. A panic in one
// run is logged and the loop keeps going.
func Every(ctx context.Context, log logger.Interface, name string, interval time.Duration, fn func(context.Context)) {
	SafeGo(log, name, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(ctx, log, name, fn)
			}
		}
	})
}

func runOnce(ctx context.Context, log logger.Interface, name string, fn func(context.Context)) {
	defer recoverAndLog(log, name)
	fn(ctx)
}

func recoverAndLog(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
