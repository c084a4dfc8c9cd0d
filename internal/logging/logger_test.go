package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gotexlint/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"case insensitive Info", "Info", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}

			if logger.GetLevel() != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, logger.GetLevel())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.

	// Save original and restore after test.
	original := logging.Default()
	defer logging.SetDefault(original)

	// Create a fresh logger for testing.
	testLogger := logging.New("info")
	logging.SetDefault(testLogger)

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.

	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "text",
			format: logging.FormatText,
			check: func(t *testing.T, out string) {
				t.Helper()
				if !strings.Contains(out, "INFO") || !strings.Contains(out, "path=paper.tex") {
					t.Errorf("unexpected text output %q", out)
				}
			},
		},
		{
			name:   "json",
			format: logging.FormatJSON,
			check: func(t *testing.T, out string) {
				t.Helper()
				if !strings.Contains(out, `"msg":"processed"`) || !strings.Contains(out, `"path":"paper.tex"`) {
					t.Errorf("unexpected json output %q", out)
				}
			},
		},
		{
			name:   "logfmt",
			format: logging.FormatLogfmt,
			check: func(t *testing.T, out string) {
				t.Helper()
				if !strings.Contains(out, "msg=processed") || !strings.Contains(out, "path=paper.tex") {
					t.Errorf("unexpected logfmt output %q", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.NewWithWriter(&buf, "info", tt.format)
			logger.Debug("hidden")
			logger.Info("processed", logging.FieldPath, "paper.tex")

			out := buf.String()
			if strings.Contains(out, "hidden") {
				t.Error("debug message logged at info level")
			}
			tt.check(t, out)
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)

	if logging.FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext without logger returned nil")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "info", "logfmt")
	ctx, child := logging.With(logging.WithLogger(context.Background(), base), "request_id", "abc")

	if logging.FromContext(ctx) != child {
		t.Fatal("With did not store the derived logger")
	}
	child.Info("handled")
	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Errorf("derived logger output missing field: %q", buf.String())
	}
}

func TestIsFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"text", "json", "logfmt", "JSON"} {
		if !logging.IsFormat(format) {
			t.Errorf("IsFormat(%q) = false", format)
		}
	}
	if logging.IsFormat("xml") {
		t.Error(`IsFormat("xml") = true`)
	}
}
