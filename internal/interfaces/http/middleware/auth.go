package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/infrastructure/auth"
	"github.com/clinicplace/console/internal/shared/authorization"
	"github.com/clinicplace/console/internal/shared/constants"
	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/logger"
	"github.com/clinicplace/console/internal/shared/utils"
)

// AuthMiddleware identifies the viewer from the marketplace access token.
// The token is kept so API calls can be made on the viewer's behalf.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	cookieName string
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, cookieName string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try to get token from cookie first
		token := utils.GetTokenFromCookie(c, m.cookieName)

		// Fallback to Authorization header for scripted access
		if token == "" {
			authHeader := c.GetHeader(constants.HeaderAuthorization)
			if authHeader == "" {
				utils.AbortWithError(c, apperrors.NewUnauthorizedError("Sign in to continue"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.AbortWithError(c, apperrors.NewUnauthorizedError("invalid authorization header format"))
				return
			}

			token = parts[1]
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.AbortWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			return
		}

		authorization.SetViewer(c, claims.Viewer(), token)

		c.Next()
	}
}
