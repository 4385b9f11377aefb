package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// StdoutLogger writes one JSON object per line.
type StdoutLogger struct {
	l *slog.Logger
}

func NewStdoutLogger(level string) (*StdoutLogger, error) {
	return NewJSONLogger(os.Stdout, level)
}

func NewJSONLogger(w io.Writer, level string) (*StdoutLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &StdoutLogger{l: slog.New(h)}, nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging: unknown level %q", level)
}

func (s *StdoutLogger) log(level slog.Level, msg string, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	s.l.LogAttrs(context.Background(), level, msg, attrs...)
}

func (s *StdoutLogger) Info(msg string, fields map[string]any) {
	s.log(slog.LevelInfo, msg, fields)
}

func (s *StdoutLogger) Warn(msg string, fields map[string]any) {
	s.log(slog.LevelWarn, msg, fields)
}

func (s *StdoutLogger) Error(msg string, fields map[string]any) {
	s.log(slog.LevelError, msg, fields)
}
