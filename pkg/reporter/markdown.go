package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/analysis"
)

// markdownEscaper escapes characters Markdown would otherwise interpret
// inside warning text, such as the backslash of \caption or [H].
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"#", `\#`,
)

// MarkdownRenderer writes the analysis report as a GitHub-flavored Markdown
// document.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates a new Markdown renderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	writeMarkdown(bw, r.opts.title(), report, r.opts.ShowSummary)
	return nil
}

func writeMarkdown(w io.Writer, title string, report *analysis.Report, showRules bool) {
	fmt.Fprintf(w, "# %s\n\n", markdownEscaper.Replace(title))
	fmt.Fprintf(w, "%s\n", markdownTotals(report.Totals))

	for _, file := range report.Files {
		fmt.Fprintf(w, "\n## `%s`\n\n", file.Path)

		switch {
		case file.Error != "":
			fmt.Fprintf(w, "**Error:** %s\n", markdownEscaper.Replace(file.Error))
			continue
		case len(file.Tables) == 0:
			fmt.Fprintln(w, "No tables.")
		}

		for _, table := range file.Tables {
			fmt.Fprintf(w, "- Table %d%s", table.Index, markdownLocation(table))
			if len(table.Warnings) == 0 {
				fmt.Fprintln(w, ": no warnings")
				continue
			}
			fmt.Fprintln(w)
			for _, warning := range table.Warnings {
				fmt.Fprintf(w, "  - %s\n", markdownEscaper.Replace(warning))
			}
		}

		if file.JSONPath != "" {
			fmt.Fprintf(w, "\nDocument: `%s`\n", file.JSONPath)
		}
		if file.Skipped != "" {
			fmt.Fprintf(w, "\nSkipped: %s\n", markdownEscaper.Replace(file.Skipped))
		}
	}

	if !showRules || len(report.ByRule) == 0 {
		return
	}

	fmt.Fprint(w, "\n## Rules\n\n")
	fmt.Fprintln(w, "| Rule | Name | Issues | Errors | Warnings | Files |")
	fmt.Fprintln(w, "| --- | --- | ---: | ---: | ---: | ---: |")
	for _, rule := range report.ByRule {
		fmt.Fprintf(w, "| %s | %s | %d | %d | %d | %d |\n",
			rule.RuleID, rule.RuleName, rule.Issues, rule.Errors, rule.Warnings, len(rule.Files))
	}
}

func markdownTotals(t analysis.Totals) string {
	var status string
	switch {
	case t.HasErrors():
		status = "**Status:** failed. "
	case t.HasIssues():
		status = "**Status:** warnings. "
	default:
		status = "**Status:** passed. "
	}
	summary := status + fmt.Sprintf("%d files checked, %d tables, %d issues (%d errors, %d warnings, %d info).",
		t.Files, t.Tables, t.Issues, t.Errors, t.Warnings, t.Infos)
	if t.FilesErrored > 0 {
		summary += fmt.Sprintf(" %d files could not be processed.", t.FilesErrored)
	}
	return summary
}

func markdownLocation(table analysis.TableAnalysis) string {
	if table.Line == 0 {
		return ""
	}
	return fmt.Sprintf(" (line %d, column %d)", table.Line, table.Column)
}
