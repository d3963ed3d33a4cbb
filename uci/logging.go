package uci

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogEnvVar selects diagnostic verbosity. The engine binary reads the same
// variable.
const LogEnvVar = "RUST_LOG"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// LevelFromEnv reads LogEnvVar once and maps it to a slog level.
// Unset or unrecognised values give slog.LevelWarn.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LogEnvVar))
}

// ParseLevel maps trace/debug/info/warn/error (case-insensitive) to a slog
// level. Module filters such as "odonata=debug" use the level after the
// last '='.
func ParseLevel(s string) slog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.LastIndexByte(s, '='); i >= 0 {
		s = s[i+1:]
	}
	switch s {
	case "trace", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error", "off":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger on w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
