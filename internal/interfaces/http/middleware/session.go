package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicplace/console/internal/shared/config"
	"github.com/clinicplace/console/internal/shared/constants"
	"github.com/clinicplace/console/internal/shared/utils"
)

// Session assigns every browser a console session id kept in a cookie.
// Ids that are not UUIDs are replaced.
func Session(cookie config.CookieConfig, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		id := utils.GetTokenFromCookie(c, cookie.Session)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		// Refreshed on every request so an active session never expires.
		utils.SetSessionCookie(c, cookie, id, maxAge)
		c.Set(constants.ContextKeySessionID, id)
		c.Next()
	}
}

// SessionID returns the id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}
