package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/shared/authorization"
	"github.com/clinicplace/console/internal/shared/constants"
	"github.com/clinicplace/console/internal/shared/logger"
)

// Logger logs every request once it completes, at a level chosen by the
// status class.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if id := SessionID(c); id != "" {
			args = append(args, "session_id", id)
		}

		if requestID := c.GetHeader(constants.HeaderXRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}

		if viewer, ok := authorization.ViewerFrom(c); ok {
			args = append(args, "viewer_id", viewer.ID, "user_type", viewer.UserType)
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		case c.Request.Method != "GET" && c.Request.Method != "HEAD":
			// Writes are rare and worth keeping at info.
			log.Infow("request handled", args...)
		default:
			log.Debugw("request handled", args...)
		}
	}
}
