// Package log wraps log/slog with the conventions used across the engine:
// every logger carries a component attribute, and the output handler is
// chosen once at startup.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Component names used across the engine.
const (
	ComponentApp         = "app"
	ComponentStore       = "store"
	ComponentSchema      = "schema"
	ComponentRecurring   = "recurring"
	ComponentInstallment = "installment"
	ComponentReport      = "report"
)

// Config controls how loggers are built.
type Config struct {
	Level     slog.Level
	Component string
	JSON      bool
	Output    io.Writer // defaults to stdout
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Component: ComponentApp}
}

// New creates a component-scoped slog.Logger. The component attribute is
// attached once here instead of on every call site.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler).With("component", cfg.Component)
}

// SetDefault installs a logger as the process default so packages that log
// through the slog package-level functions inherit it.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// ParseLevel maps a textual level from the environment to a slog.Level,
// defaulting to info.
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
