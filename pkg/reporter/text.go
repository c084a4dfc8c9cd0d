package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	switch {
	case !r.opts.ShowSummary:
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's diagnostics and returns how many it wrote.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}
	if file.Result == nil {
		return 0
	}

	fr := file.Result
	if fr.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Dim.Render(fr.Summary()))
	}

	if len(fr.Diagnostics) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(fr.Diagnostics)))
	}
	for i := range fr.Diagnostics {
		diag := fr.Diagnostics[i]
		diag.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(&diag, r.opts.RuleFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(fr.Diagnostics)
}

func (r *TextReporter) displayPath(path string) string {
	return relPath(r.opts.WorkingDir, path)
}

// relPath shows path relative to workDir when possible.
func relPath(workDir, path string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil {
		return rel
	}
	return path
}
