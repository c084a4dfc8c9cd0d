package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gotexlint/pkg/analysis"
	"github.com/yaklabco/gotexlint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// DetailedSummary replaces the one-line text summary with a block of
	// per-count rows.
	DetailedSummary bool

	// GroupByFile groups diagnostics by file (default: true for text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Title heads markdown and HTML reports.
	Title string

	// SortBy orders the per-rule breakdown of JSON, markdown and HTML
	// reports. Empty means by issue count.
	SortBy analysis.SortField

	// ToolVersion is reported as the driver version in SARIF output.
	ToolVersion string
}

// DefaultTitle heads markdown and HTML reports when Options.Title is empty.
const DefaultTitle = "gotexlint report"

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		GroupByFile: true,
		Compact:     false,
		RuleFormat:  config.RuleFormatName,
		Title:       DefaultTitle,
		SortBy:      analysis.SortByCount,
	}
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}
