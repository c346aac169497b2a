package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewAttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})
	logger.Info("saved", "entries", 3)

	out := buf.String()
	if !strings.Contains(out, "component=store") {
		t.Errorf("output lacks component attribute: %s", out)
	}
	if !strings.Contains(out, "entries=3") {
		t.Errorf("output lacks call-site attribute: %s", out)
	}
}

func TestNewJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Component: ComponentApp, JSON: true, Output: &buf})
	logger.Info("hello")
	if !strings.Contains(buf.String(), `"component":"app"`) {
		t.Errorf("JSON output missing component: %s", buf.String())
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info record emitted below the configured level: %s", buf.String())
	}
	logger.Warn("loud")
	if buf.Len() == 0 {
		t.Error("warn record suppressed")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
