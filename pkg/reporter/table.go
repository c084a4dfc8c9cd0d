package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

// fallbackWidth is used when the writer is not a terminal.
const fallbackWidth = 100

// TableReporter prints one row per diagnostic, colored by severity.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
}

// NewTableReporter returns a TableReporter sized to opts.Writer.
func NewTableReporter(opts Options) *TableReporter {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(color)
	return &TableReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, color, widthOf(opts.Writer), opts.RuleFormat),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		r.summaryLine(bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(relPath(r.opts.WorkingDir, file.Path)),
			r.styles.Error.Render("error: "+file.Error.Error()))
	}

	stats := result.Stats
	if stats.DiagnosticsTotal == 0 {
		r.summaryLine(bw, r.styles.Success.Render("All tables passed!"))
		r.summaryLine(bw, r.styles.Dim.Render(
			fmt.Sprintf("%d files, %d tables checked", stats.FilesProcessed, stats.TablesTotal)))
		return 0, nil
	}

	fmt.Fprint(bw, r.table.FormatTable(result))
	r.summaryLine(bw, r.table.FormatTableSummary(stats, ""))
	return stats.DiagnosticsTotal, nil
}

func (r *TableReporter) summaryLine(w io.Writer, line string) {
	if r.opts.ShowSummary {
		fmt.Fprintln(w, line)
	}
}

func widthOf(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallbackWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackWidth
}
