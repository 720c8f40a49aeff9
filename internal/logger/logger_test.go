package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestTextFormatFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", "text")

	Info("dataset loaded: %d records", 56)
	Warn("unknown site %q", "XYZ")

	out := buf.String()
	if strings.Contains(out, "dataset loaded") {
		t.Errorf("expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, `[WARN] unknown site "XYZ"`) {
		t.Errorf("expected warn message in output, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")

	Debug("rendering %s chart", "pie")

	var entry struct {
		Time  string `json:"time"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry.Level != "debug" {
		t.Errorf("expected level debug, got %s", entry.Level)
	}
	if entry.Msg != "rendering pie chart" {
		t.Errorf("expected formatted message, got %q", entry.Msg)
	}
	if entry.Time == "" {
		t.Error("expected a timestamp")
	}
}

func TestTextFormatReportsCallSite(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "text")

	Info("from the test")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("expected the caller's file in output, got %q", buf.String())
	}
}

func TestFatalExitsAfterLogging(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "error", "text")

	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	Fatal("dataset %s missing", "launches.csv")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "[FATAL] dataset launches.csv missing") {
		t.Errorf("expected fatal message, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("expected the caller's file in output, got %q", out)
	}
}
