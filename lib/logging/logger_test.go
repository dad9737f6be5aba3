package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.DEBUG, false},
		{"INFO", logger.INFO, false},
		{"warn", logger.WARNING, false},
		{"warning", logger.WARNING, false},
		{"error", logger.ERROR, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("typed", &buf)

	l.Infof("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Info should not be logged at the default level, got %q", buf.String())
	}

	l.Warningf("shown %d", 2)
	if !strings.Contains(buf.String(), "WARN  | typed           | shown 2") {
		t.Errorf("Unexpected log line %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(logger.DEBUG)
	l.Debugf("debug")
	if !strings.Contains(buf.String(), "DEBUG | typed") {
		t.Errorf("Debug should be logged after SetLevel(DEBUG), got %q", buf.String())
	}
}

func TestInitLoggersRejectsInvalidLevel(t *testing.T) {
	if err := InitLoggers("loud"); err == nil {
		t.Errorf("Expected an error for an invalid level")
	}
}
