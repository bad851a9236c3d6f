package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerFunctions_NoNilPointers(t *testing.T) {
	logger = nil
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logger function panicked: %v", r)
		}
	}()

	Debug("test debug", "key", "value")
	Info("test info", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")
	With("component", "test").Info("discarded")
}

func TestInitWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, log.WarnLevel)

	Info("hidden message")
	Warn("shown message", "operation", "approve")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown message") || !strings.Contains(out, "operation=approve") {
		t.Errorf("warn line missing or malformed: %q", out)
	}
}

func TestWithAddsKeyValues(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, log.DebugLevel)

	With("component", "approvals").Debug("loaded", "count", 4)

	out := buf.String()
	if !strings.Contains(out, "component=approvals") || !strings.Contains(out, "count=4") {
		t.Errorf("expected component fields, got %q", out)
	}
}

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		opts Options
		want log.Level
	}{
		{Options{Level: "debug"}, log.DebugLevel},
		{Options{Level: "error"}, log.ErrorLevel},
		{Options{Level: "nonsense"}, log.InfoLevel},
		{Options{Level: "error", Verbose: true}, log.DebugLevel},
	}
	for _, tt := range tests {
		if got := resolveLevel(tt.opts); got != tt.want {
			t.Errorf("resolveLevel(%+v): got %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.log")
	Init(Options{Level: "info", File: path})
	Info("to file")
	if GetLogger() == nil {
		t.Fatal("logger should be initialized")
	}
}
