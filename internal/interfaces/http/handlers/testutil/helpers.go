package testutil

import (
	"encoding/json"
	htmltemplate "html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/clinicplace/console/internal/domain/marketplace"
	viewtemplate "github.com/clinicplace/console/internal/infrastructure/template"
	"github.com/clinicplace/console/internal/shared/authorization"
	"github.com/clinicplace/console/internal/shared/logger"
)

// TestToken is the bearer token SetViewer attaches to the context.
const TestToken = "test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

// NewRequest builds a request; a non-nil form is sent url-encoded.
func NewRequest(method, target string, form url.Values) *http.Request {
	if form == nil {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// NewTestContext creates a test gin.Context with the given method, path, and optional form.
func NewTestContext(method, path string, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = NewRequest(method, path, form)
	return c, w
}

// SetViewer signs the viewer in on the context (simulating auth middleware).
func SetViewer(c *gin.Context, viewer marketplace.Viewer) {
	authorization.SetViewer(c, viewer, TestToken)
}

// SignIn returns middleware that signs every request in as viewer. A nil
// viewer leaves requests anonymous.
func SignIn(viewer *marketplace.Viewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if viewer != nil {
			SetViewer(c, *viewer)
		}
		c.Next()
	}
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// Views loads the built-in views.
func Views(t *testing.T) *htmltemplate.Template {
	t.Helper()
	views, err := viewtemplate.NewViewLoader("", logger.NewNop()).Load()
	require.NoError(t, err)
	return views
}

// Cookie returns the value of the named cookie set by the response.
func Cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse mirrors utils.APIResponse for test assertions.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorInfo mirrors utils.ErrorInfo for test assertions.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
