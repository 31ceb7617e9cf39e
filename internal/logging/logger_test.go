package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nconklindev/pwrzones/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v; want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "pwrzones.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", File: logFile})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("Built roster", zap.Int("participants", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log has %d lines; want 1:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "Built roster" || entry["participants"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewInteractiveWithoutFile(t *testing.T) {
	logger, err := NewInteractive(config.LoggingConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewInteractive() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("NewInteractive() without a file should discard every level")
	}
}
