package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/infrastructure/ratelimit"
	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/utils"
)

// RateLimit caps mutating requests per console session. Requests without a
// session fall back to the client IP.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		key := SessionID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// If the store is unavailable, allow the request to avoid blocking all traffic
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.AbortWithError(c, apperrors.NewRateLimitedError("Too many changes in a short time, please try again later"))
			return
		}

		c.Next()
	}
}
