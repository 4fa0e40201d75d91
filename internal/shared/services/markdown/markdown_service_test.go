package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("**Night shift** rotation")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>Night shift</strong>")
}

func TestRender_StripsScripts(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "hello")
}

func TestRender_Empty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExcerpt(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "short", r.Excerpt("short", 10))
	assert.Equal(t, "abcde…", r.Excerpt("abcdefghij", 5))
	assert.Equal(t, "bold", r.Excerpt("<b>bold</b>", 0))
}
