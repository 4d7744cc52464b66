package logging

import (
	"log/slog"
	"testing"

	"github.com/radiusdc/portal-core/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	log := New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	if log == nil || log.Logger == nil {
		t.Fatal("New() returned nil logger")
	}
	// Below the configured level — must not panic.
	log.Info("suppressed message")
}

func TestWith_AddsAttributes(t *testing.T) {
	log := Default()
	child := log.With("component", "test")
	if child == nil || child.Logger == log.Logger {
		t.Error("With() should return a distinct logger")
	}
}
