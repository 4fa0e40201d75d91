package utils

import (
	"encoding/json"
	"errors"
	htmltemplate "html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinicplace/console/internal/shared/errors"
)

func newErrorContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	engine.SetHTMLTemplate(htmltemplate.Must(htmltemplate.New("error.tmpl").Parse(`<h1>{{.Status}} {{.Title}}</h1><p>{{.Message}}</p>`)))
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, w
}

func TestErrorPage_HTML(t *testing.T) {
	c, w := newErrorContext("text/html,application/xhtml+xml")

	ErrorPage(c, http.StatusNotFound, "Not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "<h1>404 Not Found</h1><p>Not found</p>", w.Body.String())
}

func TestErrorPage_JSON(t *testing.T) {
	c, w := newErrorContext("application/json")

	ErrorPage(c, http.StatusForbidden, "admin access required")

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "admin access required", resp.Error.Message)
}

func TestErrorPageWithError(t *testing.T) {
	c, w := newErrorContext("application/json")
	ErrorPageWithError(c, apperrors.NewValidationError("invalid user ID"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid user ID")

	c, w = newErrorContext("application/json")
	ErrorPageWithError(c, errors.New("dial tcp: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
	assert.NotContains(t, w.Body.String(), "dial tcp")
}
