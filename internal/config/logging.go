// Package config loads, layers, and validates repograph's configuration and
// owns process-wide logging setup. Every other internal package leans on it
// for slog wiring and for the resolved profile that parameterizes a run.
//
// All log output goes to stderr so stdout stays clean for piped documents.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging replaces the global slog default with a stderr handler at the
// given level; format "json" selects JSON output, anything else text.
// Idempotent: each call swaps the previous handler.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is SetupLogging with an explicit writer, so tests
// can capture output.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel maps the verbosity flags to a slog.Level.
// REPOGRAPH_DEBUG=1 outranks --verbose, which outranks --quiet.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	switch {
	case os.Getenv("REPOGRAPH_DEBUG") == "1":
		return slog.LevelDebug
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveLogFormat reads REPOGRAPH_LOG_FORMAT; only "json" (case-insensitive)
// selects JSON, everything else is text.
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		return "json"
	}
	return "text"
}

// NewLogger derives a component-tagged child of the default logger.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
