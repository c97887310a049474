// Package logging configures the process wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable used to set the log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name into a slog.Level.
// Unknown names resolve to info.
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

// NewLogger creates a logger writing to w. It does not set the global logger.
func NewLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetDefaultCLILogger installs a stderr logger for interactive use.
// Menus go to stdout, so logs never interleave with rendered output.
func SetDefaultCLILogger(level slog.Level, json bool) {
	slog.SetDefault(NewLogger(os.Stderr, level, json))
}

// SetDefaultStructuredLogger installs a JSON logger tagged with the service
// name and version. The level comes from LOG_LEVEL.
func SetDefaultStructuredLogger(name, version string) {
	level := ParseLevel(os.Getenv(EnvLogLevel))
	logger := NewLogger(os.Stderr, level, true).With(
		slog.String("module", name),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}
