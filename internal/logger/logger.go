// Package logger is the logging facade of the huff command.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Debugf(format string, v ...any)
}

type slogLogger struct {
	l *slog.Logger
}

// New returns a Logger writing slog text records to w at the given level.
func New(w io.Writer, level slog.Level) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

// Discard returns a Logger that drops everything.
func Discard() Logger { return New(io.Discard, slog.LevelError+1) }

func (s *slogLogger) Infof(format string, v ...any)  { s.logf(slog.LevelInfo, format, v...) }
func (s *slogLogger) Errorf(format string, v ...any) { s.logf(slog.LevelError, format, v...) }
func (s *slogLogger) Debugf(format string, v ...any) { s.logf(slog.LevelDebug, format, v...) }

func (s *slogLogger) logf(level slog.Level, format string, v ...any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, fmt.Sprintf(format, v...))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("logger: unknown level %q", name)
	}
	return level, nil
}
