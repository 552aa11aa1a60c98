package logging

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger(LevelDebug, FormatText)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after InitLogger")
	}

	InitLogger(LevelInfo, FormatJSON)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after JSON InitLogger")
	}
}
