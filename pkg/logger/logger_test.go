package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected messages missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"none", LevelNone},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDumpOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Dump("request", map[string]any{"a": 1})
	if buf.Len() != 0 {
		t.Errorf("Dump wrote at info level: %q", buf.String())
	}

	l.SetLevel(LevelDebug)
	l.Dump("request", map[string]any{"a": 1})
	if !strings.Contains(buf.String(), "request") {
		t.Errorf("Dump output missing label: %q", buf.String())
	}
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := New(&first, LevelInfo)

	l.Info("one")
	l.SetOutput(&second)
	l.Info("two")

	if !strings.Contains(first.String(), "one") || strings.Contains(first.String(), "two") {
		t.Errorf("first buffer = %q", first.String())
	}
	if !strings.Contains(second.String(), "two") {
		t.Errorf("second buffer = %q", second.String())
	}
}
