package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarning},
		{"warning", LevelWarning},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConsoleOutputWithoutDatabase(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)

	InfoF("frame %d", 7)
	DebugF("hidden %d", 1)
	Warning("careful")

	out := buf.String()
	if !strings.Contains(out, "[INFO] frame 7") {
		t.Errorf("missing info line in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] careful") {
		t.Errorf("missing warning line in %q", out)
	}
}

func TestInitLoggerRejectsNil(t *testing.T) {
	if err := InitLogger(nil, "run"); err == nil {
		t.Fatal("expected error for nil database")
	}
}
