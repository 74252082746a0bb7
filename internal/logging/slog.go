package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a slog handler to the Logger interface.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger builds a Logger on top of the given slog handler.
func NewSlogLogger(h slog.Handler) *SlogLogger {
	return &SlogLogger{l: slog.New(h)}
}

// Discard returns a Logger that drops every record. Meant for tests.
func Discard() Logger {
	return NewSlogLogger(slog.DiscardHandler)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
