// Package template loads the console's HTML views. Every view ships
// embedded in the binary; a file of the same name in the configured
// directory replaces it.
package template

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/clinicplace/console/internal/shared/logger"
)

//go:embed views/*.tmpl
var embedded embed.FS

// ViewLoader builds the template set the HTTP layer renders pages with.
type ViewLoader struct {
	path   string
	logger logger.Interface
}

// NewViewLoader creates a loader. An empty path uses only the embedded views.
func NewViewLoader(path string, logger logger.Interface) *ViewLoader {
	return &ViewLoader{
		path:   path,
		logger: logger,
	}
}

// Load parses every view, preferring overrides found under the loader's path.
func (l *ViewLoader) Load() (*htmltemplate.Template, error) {
	names, err := fs.Glob(embedded, "views/*.tmpl")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	root := htmltemplate.New("views").Funcs(Funcs())
	for _, name := range names {
		base := filepath.Base(name)
		content, err := l.read(base, name)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(base).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", base, err)
		}
	}
	return root, nil
}

func (l *ViewLoader) read(base, embeddedName string) ([]byte, error) {
	if l.path != "" {
		custom := filepath.Join(l.path, base)
		content, err := os.ReadFile(custom)
		switch {
		case err == nil:
			l.logger.Infow("loaded custom view", "file", custom, "size", len(content))
			return content, nil
		case !os.IsNotExist(err):
			l.logger.Warnw("failed to read custom view, using default", "file", custom, "error", err)
		}
	}
	return embedded.ReadFile(embeddedName)
}

// Funcs are the helpers available to every view.
func Funcs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"withQuery": WithQuery,
		"dict":      dict,
	}
}

// dict builds a map from alternating keys and values so a view can pass
// several values to a partial.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

// WithQuery returns base with the given key/value pairs set in its query.
// Values are formatted with fmt's %v.
func WithQuery(base string, kv ...any) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(fmt.Sprint(kv[i]), fmt.Sprint(kv[i+1]))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
