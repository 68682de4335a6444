package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("invitation joined", "invitation_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "invitation joined" {
		t.Errorf("msg = %v, want %q", entry["msg"], "invitation joined")
	}
	if entry["invitation_id"] != float64(7) {
		t.Errorf("invitation_id = %v, want 7", entry["invitation_id"])
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "text").Debug("proposal submitted", "name", "Drafting")

	if !strings.Contains(buf.String(), "name=Drafting") {
		t.Errorf("text output missing attribute: %q", buf.String())
	}
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	std := StdLogger(New(&buf, "info", "text"), slog.LevelWarn)

	std.Printf("slow query: %dms", 250)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "slow query: 250ms") {
		t.Errorf("unexpected output: %q", out)
	}
}
