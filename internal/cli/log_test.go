package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
	}{
		{"info", LogInfo, false},
		{"debug", LogDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Info("loaded bodies", "count", 4)
			logger.Debug("layout cache miss")

			out := buf.String()
			if !strings.Contains(out, "loaded bodies") || !strings.Contains(out, "count=4") {
				t.Errorf("info output = %q", out)
			}
			if got := strings.Contains(out, "layout cache miss"); got != tt.debug {
				t.Errorf("debug logged = %v, want %v", got, tt.debug)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("composed layout")

	if !strings.Contains(buf.String(), "composed layout") {
		t.Errorf("SetLogLevel(debug) output = %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Wrote 5 files")

	out := buf.String()
	if !strings.Contains(out, "Wrote 5 files (") || !strings.Contains(out, "s)") {
		t.Errorf("progress.done() output = %q, want message with duration", out)
	}
}
