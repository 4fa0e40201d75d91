package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *slog.Logger)
		levels     []slog.Level
		wantSource bool
	}{
		{
			name:       "info is plain by default",
			log:        func(l *slog.Logger) { l.Info("fetched users") },
			levels:     []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource: false,
		},
		{
			name:       "warn carries source",
			log:        func(l *slog.Logger) { l.Warn("stats unavailable") },
			levels:     []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource: true,
		},
		{
			name:       "error carries source",
			log:        func(l *slog.Logger) { l.Error("delete failed") },
			levels:     []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource: true,
		},
		{
			name:       "debug mode shows source for info",
			log:        func(l *slog.Logger) { l.Info("tab loaded") },
			levels:     []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError},
			wantSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{})
			tt.log(slog.New(NewLevelSourceHandler(base, tt.levels...)))

			assert.Equal(t, tt.wantSource, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestLevelSourceHandler_PointsAtCaller(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{})
	log := slog.New(NewLevelSourceHandler(base, slog.LevelError))

	log.Error("boom")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	source, ok := record[slog.SourceKey].(map[string]any)
	require.True(t, ok, "source attribute missing: %s", buf.String())
	assert.Contains(t, source["file"], "sourcehandler_test.go")
}

func TestLevelSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{})
	log := slog.New(NewLevelSourceHandler(base, slog.LevelWarn)).
		With("component", "admin").
		WithGroup("req")

	log.Warn("slow upstream", "path", "/api/admin/users")

	out := buf.String()
	assert.Contains(t, out, "component=admin")
	assert.Contains(t, out, "req.path=/api/admin/users")
	assert.Contains(t, out, "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
