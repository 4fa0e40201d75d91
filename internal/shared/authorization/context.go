package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/shared/constants"
)

// SetViewer records the authenticated viewer and the token they presented.
func SetViewer(c *gin.Context, viewer marketplace.Viewer, token string) {
	c.Set(constants.ContextKeyViewer, viewer)
	c.Set(constants.ContextKeyToken, token)
}

// ViewerFrom returns the viewer set by the auth middleware.
func ViewerFrom(c *gin.Context) (marketplace.Viewer, bool) {
	v, exists := c.Get(constants.ContextKeyViewer)
	if !exists {
		return marketplace.Viewer{}, false
	}
	viewer, ok := v.(marketplace.Viewer)
	return viewer, ok
}

// TokenFrom returns the bearer token forwarded to the marketplace API.
func TokenFrom(c *gin.Context) string {
	return c.GetString(constants.ContextKeyToken)
}
