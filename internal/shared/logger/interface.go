package logger

import (
	"io"
	"log/slog"
)

// Interface is the structured logger injected into services, handlers and
// middleware. Arguments after msg are alternating keys and values.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// With returns a logger that adds keysAndValues to every record.
	With(keysAndValues ...any) Interface
	// Named tags every record with logger=name.
	Named(name string) Interface
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger wraps the process logger set up by Init.
func NewLogger() Interface {
	return &slogLogger{l: Get()}
}

// NewNop returns a logger that discards everything.
func NewNop() Interface {
	return &slogLogger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (s *slogLogger) Debugw(msg string, keysAndValues ...any) { s.l.Debug(msg, keysAndValues...) }
func (s *slogLogger) Infow(msg string, keysAndValues ...any)  { s.l.Info(msg, keysAndValues...) }
func (s *slogLogger) Warnw(msg string, keysAndValues ...any)  { s.l.Warn(msg, keysAndValues...) }
func (s *slogLogger) Errorw(msg string, keysAndValues ...any) { s.l.Error(msg, keysAndValues...) }

func (s *slogLogger) With(keysAndValues ...any) Interface {
	return &slogLogger{l: s.l.With(keysAndValues...)}
}

func (s *slogLogger) Named(name string) Interface {
	return &slogLogger{l: s.l.With("logger", name)}
}
