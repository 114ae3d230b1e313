package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewShortensSourcePaths(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "level=INFO") {
		t.Error("INFO level not found in output")
	}
	if !strings.Contains(output, `msg="test message"`) {
		t.Error("message not found in output")
	}
	if !strings.Contains(output, "key=value") {
		t.Error("field not found in output")
	}
	// Source should be basename:line, not a full path.
	if strings.Contains(output, "/logger_test.go") {
		t.Errorf("source not shortened: %s", output)
	}
	if !strings.Contains(output, "logger_test.go") {
		t.Errorf("source missing: %s", output)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message logged at info level: %s", buf.String())
	}

	log = New(&buf, slog.LevelDebug)
	log.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message missing at debug level")
	}
}
