package template

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicplace/console/internal/shared/logger"
)

func TestLoad_EmbeddedViews(t *testing.T) {
	views, err := NewViewLoader("", logger.NewNop()).Load()
	require.NoError(t, err)

	for _, name := range []string{
		"admin.tmpl", "dialog.tmpl", "dashboard.tmpl", "mysubscriptions.tmpl",
		"upgrade.tmpl", "error.tmpl", "header", "footer", "table", "subscriptions",
	} {
		assert.NotNil(t, views.Lookup(name), name)
	}
}

func TestLoad_ErrorPage(t *testing.T) {
	views, err := NewViewLoader("", logger.NewNop()).Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = views.ExecuteTemplate(&buf, "error.tmpl", map[string]any{
		"Status":  404,
		"Title":   "Not Found",
		"Message": "<missing>",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>Not Found · ClinicPlace</title>")
	assert.Contains(t, buf.String(), "&lt;missing&gt;")
}

func TestLoad_CustomViewOverrides(t *testing.T) {
	dir := t.TempDir()
	custom := `<p>custom {{.Message}}</p>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error.tmpl"), []byte(custom), 0o644))

	views, err := NewViewLoader(dir, logger.NewNop()).Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, views.ExecuteTemplate(&buf, "error.tmpl", map[string]any{"Message": "oops"}))
	assert.Equal(t, "<p>custom oops</p>", buf.String())

	assert.NotNil(t, views.Lookup("dashboard.tmpl"), "views without an override stay embedded")
}

func TestLoad_BrokenOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upgrade.tmpl"), []byte(`{{if}}`), 0o644))

	_, err := NewViewLoader(dir, logger.NewNop()).Load()
	assert.ErrorContains(t, err, "upgrade.tmpl")
}

func TestWithQuery(t *testing.T) {
	tests := []struct {
		base string
		kv   []any
		want string
	}{
		{"/admin?tab=users", []any{"page", 2}, "/admin?page=2&tab=users"},
		{"/admin?tab=users&menu=3", []any{"menu", ""}, "/admin?menu=&tab=users"},
		{"/admin", []any{"q", "a b"}, "/admin?q=a+b"},
		{"/admin?tab=users", []any{"dangling"}, "/admin?tab=users"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, WithQuery(tt.base, tt.kv...))
		})
	}
}

func TestDict(t *testing.T) {
	m, err := dict("View", 1, "URL", "/admin")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"View": 1, "URL": "/admin"}, m)

	_, err = dict("odd")
	assert.Error(t, err)

	_, err = dict(1, 2)
	assert.Error(t, err)
}
