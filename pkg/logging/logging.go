// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("debug")  // explicit level
//	logging.Setup("")       // INFO
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a tint handler on stderr as the default slog logger and
// returns it.
func Setup(level string) *slog.Logger {
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      ParseLevel(level),
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, warn and error to slog levels. Anything else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
