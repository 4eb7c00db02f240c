// Package logging configures the process wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
// Unknown or empty names return the fallback.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// LevelFromEnv returns the level named by LOG_LEVEL, or fallback if unset.
func LevelFromEnv(fallback slog.Level) slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel), fallback)
}

// NewStructuredLogger returns a JSON logger tagged with module and version.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// NewCLILogger returns a compact text logger for interactive use.
func NewCLILogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}

// SetDefaultStructuredLogger installs a JSON logger on w as the slog default.
func SetDefaultStructuredLogger(w io.Writer, module, version string, level slog.Level) {
	slog.SetDefault(NewStructuredLogger(w, module, version, level))
}

// SetDefaultCLILogger installs a text logger on w as the slog default.
func SetDefaultCLILogger(w io.Writer, level slog.Level) {
	slog.SetDefault(NewCLILogger(w, level))
}
