package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLogLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	log.Info("run started", "agents", 3)
	if err := log.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	entries := readLogLines(t, dir)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "run started" {
		t.Errorf("msg = %v", entries[0]["msg"])
	}
	if entries[0]["agents"] != float64(3) {
		t.Errorf("agents = %v", entries[0]["agents"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelWarn, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("shown")
	log.Close()

	entries := readLogLines(t, dir)
	if len(entries) != 1 || entries[0]["msg"] != "shown" {
		t.Errorf("Expected only the WARN entry, got %v", entries)
	}
}

func TestLogger_ContextPropagation(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	child := log.WithAgent("backend-developer").WithPhase("validate")
	child.Info("checking edges")
	// The parent must be unaffected by child attributes.
	log.Info("plain")
	log.Close()

	entries := readLogLines(t, dir)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["agent"] != "backend-developer" || entries[0]["phase"] != "validate" {
		t.Errorf("Child attributes missing: %v", entries[0])
	}
	if _, ok := entries[1]["agent"]; ok {
		t.Error("Parent logger must not carry child attributes")
	}
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	log.With("run", "abc123", 42, "ignored").Info("tagged")
	log.Close()

	entries := readLogLines(t, dir)
	if entries[0]["run"] != "abc123" {
		t.Errorf("Expected run attribute, got %v", entries[0])
	}
}

func TestNewLogger_EmptyDirUsesStderr(t *testing.T) {
	log, err := NewLogger("", LevelInfo, RotationConfig{})
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if log.writer != nil {
		t.Error("Stderr logger must not hold a rotating writer")
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close on stderr logger must be a no-op, got %v", err)
	}
}

func TestNopLogger(t *testing.T) {
	log := NopLogger()
	log.Info("discarded")
	log.WithAgent("x").Error("also discarded")
	if err := log.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"trace", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLevelString(t *testing.T) {
	if got := ParseLevel("warn"); got != LevelWarn {
		t.Errorf("ParseLevel(warn) = %q", got)
	}
	if got := ParseLevel("bogus"); got != LevelInfo {
		t.Errorf("ParseLevel(bogus) = %q", got)
	}
	if len(ValidLevels()) != 4 {
		t.Errorf("ValidLevels() = %v", ValidLevels())
	}
}
