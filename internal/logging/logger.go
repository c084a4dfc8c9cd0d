// Package logging configures charmbracelet/log loggers for the CLI and the
// HTTP service and carries them through contexts.
package logging

import (
	"io"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Log output formats accepted by NewWithWriter.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// IsFormat reports whether format is one of the log formats.
func IsFormat(format string) bool {
	return slices.Contains([]string{FormatText, FormatJSON, FormatLogfmt}, strings.ToLower(format))
}

var defaultLogger atomic.Pointer[log.Logger]

// New returns a text logger on stderr. level is one of debug, info, warn
// or error; anything else means info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level, FormatText)
}

// NewWithWriter returns a logger on w. The json and logfmt formats stamp
// each entry with a time; text, used by the CLI, does not.
func NewWithWriter(w io.Writer, level, format string) *log.Logger {
	var formatter log.Formatter
	switch strings.ToLower(format) {
	case FormatJSON:
		formatter = log.JSONFormatter
	case FormatLogfmt:
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Level:           parseLevel(level),
	})
}

func parseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || parsed == log.FatalLevel {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, creating an info-level text
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
