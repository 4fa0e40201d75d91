package authorization

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/utils"
)

var (
	errSignIn    = apperrors.NewUnauthorizedError("Sign in to continue")
	errAdminOnly = apperrors.NewForbiddenError("admin access required")
)

// RequireAdmin lets only admin viewers through. It must run after the auth
// middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := ViewerFrom(c)
		if !ok {
			utils.AbortWithError(c, errSignIn)
			return
		}
		if !viewer.IsAdmin() {
			utils.AbortWithError(c, errAdminOnly)
			return
		}
		c.Next()
	}
}
