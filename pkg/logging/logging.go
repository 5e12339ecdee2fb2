// Package logging configures structured logging: colored text with tint
// for terminals, or JSON for log collectors.
//
// Usage:
//
//	logging.Setup()                          // level from LOG_LEVEL, format from LOG_FORMAT
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	LOG_FORMAT: text, json (default: text)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures logging at the given level in the format
// named by LOG_FORMAT.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, os.Getenv("LOG_FORMAT"), level))
}

// New builds a logger writing to w. Format "json" selects slog's JSON
// handler; anything else selects tint.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// LevelFromEnv reads LOG_LEVEL.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
