package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/stride/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, config.LoggingConfig{Level: "info", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(h)
	logger.Debug("hidden")
	logger.Info("game_over", "tick", 42)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if rec["msg"] != "game_over" || rec["tick"] != float64(42) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNewHandlerText(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, config.LoggingConfig{Level: "debug", Format: "text"})
	if err != nil {
		t.Fatal(err)
	}
	slog.New(h).Debug("locomotion_jump", "velocity", 6)
	if !strings.Contains(buf.String(), "msg=locomotion_jump") {
		t.Errorf("text output missing message: %q", buf.String())
	}
}

func TestNewHandlerUnknownFormat(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, config.LoggingConfig{Level: "info", Format: "xml"})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestSetupFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "stride.log")
	cfg := config.Default().Logging
	cfg.File = path

	closer, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	slog.Info("session_start", "session", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"session_start"`) {
		t.Errorf("log file missing record: %q", data)
	}
}
