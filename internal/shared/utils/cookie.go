package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicplace/console/internal/shared/config"
)

const (
	// CSRFTokenCookie holds the double-submit token; forms echo it back in
	// CSRFTokenField and scripts in the CSRFTokenHeader.
	CSRFTokenCookie = "csrf_token"
	CSRFTokenField  = "csrf_token"
	CSRFTokenHeader = "X-CSRF-Token"
)

// SetSessionCookie stores the console session id as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cookieConfig config.CookieConfig, sessionID string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		cookieConfig.Session,
		sessionID,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// SetCSRFCookie stores the CSRF token. Unlike the session cookie it is not
// HttpOnly so pages may read it.
func SetCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(CSRFTokenCookie, token, maxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, false)
}

// GetTokenFromCookie retrieves a non-empty cookie value, or "" when absent.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err == nil && token != "" {
		return token
	}
	return ""
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
