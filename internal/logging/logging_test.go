package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.WarnLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	logger, err := New("error", true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should enable debug")
	}

	quiet, err := New("error", false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if quiet.Core().Enabled(zapcore.WarnLevel) {
		t.Error("error-level logger should not enable warn")
	}
}
