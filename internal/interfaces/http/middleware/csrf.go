package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicplace/console/internal/shared/config"
	apperrors "github.com/clinicplace/console/internal/shared/errors"
	"github.com/clinicplace/console/internal/shared/utils"
)

const contextKeyCSRF = "csrf_token"

var (
	errCSRFMissing = apperrors.NewForbiddenError("missing CSRF token")
	errCSRFInvalid = apperrors.NewForbiddenError("invalid CSRF token")
)

// CSRF validates form posts with the Double Submit Cookie pattern. Safe
// requests get a token cookie issued when missing; mutating requests must
// echo the cookie value in the csrf_token form field or the X-CSRF-Token
// header.
func CSRF(cookie config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken := utils.GetTokenFromCookie(c, utils.CSRFTokenCookie)

		if isSafeMethod(c.Request.Method) {
			if cookieToken == "" {
				cookieToken = uuid.NewString()
				utils.SetCSRFCookie(c, cookie, cookieToken, 0)
			}
			c.Set(contextKeyCSRF, cookieToken)
			c.Next()
			return
		}

		if cookieToken == "" {
			utils.AbortWithError(c, errCSRFMissing)
			return
		}

		submitted := c.GetHeader(utils.CSRFTokenHeader)
		if submitted == "" {
			submitted = c.PostForm(utils.CSRFTokenField)
		}
		if submitted == "" {
			utils.AbortWithError(c, errCSRFMissing)
			return
		}

		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			utils.AbortWithError(c, errCSRFInvalid)
			return
		}

		c.Set(contextKeyCSRF, cookieToken)
		c.Next()
	}
}

// CSRFToken returns the token pages embed in their forms.
func CSRFToken(c *gin.Context) string {
	return c.GetString(contextKeyCSRF)
}

// isSafeMethod returns true for HTTP methods that do not mutate state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
