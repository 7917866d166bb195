package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process-wide JSON logger. Level comes from
// LOG_LEVEL, pretty text output from LOG_PRETTY=true.
func NewLogger() *slog.Logger {
	level := parseLogLevel(GetEnv("LOG_LEVEL", "info"))

	opts := &slog.HandlerOptions{Level: level}
	if GetEnv("LOG_PRETTY", "false") == "true" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
