package listingqa

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with listingqa-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithDataset adds the dataset reference and its size to the logger.
func (l *Logger) WithDataset(d *Dataset) *Logger {
	if d == nil {
		return l
	}
	return &Logger{
		Logger: l.Logger.With("dataset", d.Name, "rows", d.Len()),
	}
}

// LogCheck logs the outcome of a single check.
func (l *Logger) LogCheck(ctx context.Context, r Result) {
	switch {
	case r.Skipped:
		l.DebugContext(ctx, "check skipped", "check", r.Name)
	case r.Err != nil:
		l.ErrorContext(ctx, "check errored",
			"check", r.Name,
			"error", r.Err,
		)
	case !r.Passed:
		l.WarnContext(ctx, "check failed",
			"check", r.Name,
			"issues", len(r.Issues),
			"reason", r.Issues.Error(),
			"duration", r.Duration,
		)
	default:
		l.InfoContext(ctx, "check passed",
			"check", r.Name,
			"duration", r.Duration,
		)
	}
}

// LogReport logs the summary of a suite run.
func (l *Logger) LogReport(ctx context.Context, rep Report) {
	failed := rep.Failed()
	if len(failed) > 0 {
		l.WarnContext(ctx, "data checks completed with failures",
			"total", len(rep.Results),
			"failed", len(failed),
			"failed_checks", strings.Join(failed, ","),
		)
		return
	}
	l.InfoContext(ctx, "data checks passed",
		"total", len(rep.Results),
	)
}
