package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestConfigureFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Configure(&buf, "warn", ""); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	log.Info().Msg("hidden message")
	log.Warn().Str("db", "fits.db").Msg("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "fits.db") {
		t.Errorf("warn line missing from output: %q", out)
	}

	if err := Configure(&buf, "loud", ""); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestConfigureWritesLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "fitsstats.log")
	if err := Configure(&buf, "info", path); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	log.Info().Int("rows", 42).Msg("export finished")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), `"rows":42`) || !strings.Contains(string(data), `"message":"export finished"`) {
		t.Errorf("Expected JSON line in log file, got %q", data)
	}
	if !strings.Contains(buf.String(), "export finished") {
		t.Error("Expected console output as well")
	}
}
