package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/infrastructure/metrics"
)

// Metrics records request counts and latencies labelled by route pattern.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.RequestStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = metrics.CanonicalPath(c.Request.URL.Path)
		}
		done(c.Request.Method, path, c.Writer.Status())
	}
}
