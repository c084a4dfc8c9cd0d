package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gotexlint/pkg/runner"
)

const summaryRule = "----------------------------------------"

// count renders "1 table" or "3 tables".
func count(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return strconv.Itoa(n) + " " + noun
}

// FormatSummaryOneLine condenses stats into one line, for example
// "5 issues (5 warnings) in 2 files, 7 tables checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	tables := count(stats.TablesTotal, "table")

	if stats.DiagnosticsTotal == 0 {
		line := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s, %s checked)", count(stats.FilesProcessed, "file"), tables))
		if stats.FilesWritten > 0 {
			line += ", " + s.Success.Render(count(stats.FilesWritten, "document")+" written")
		}
		return line + "\n"
	}

	issues := count(stats.DiagnosticsTotal, "issue")
	if bySeverity := s.severityCounts(stats); len(bySeverity) > 0 {
		issues += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	parts := []string{
		issues + " in " + count(stats.FilesWithIssues, "file"),
		tables + " checked",
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(count(stats.FilesErrored, "file")+" failed"))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatConvertSummary reports what a conversion did with the documents,
// for example "2 documents written, 1 unchanged".
func (s *Styles) FormatConvertSummary(stats runner.Stats) string {
	unchanged := stats.FilesProcessed - stats.FilesWritten - stats.FilesSkipped
	parts := []string{
		s.Success.Render(count(stats.FilesWritten, "document") + " written"),
		s.Dim.Render(strconv.Itoa(unchanged) + " unchanged"),
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(strconv.Itoa(stats.FilesSkipped)+" skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(count(stats.FilesErrored, "file")+" failed"))
	}
	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityCounts(stats runner.Stats) []string {
	var out []string
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		out = append(out, s.Error.Render(count(n, "error")))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		out = append(out, s.Warning.Render(count(n, "warning")))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		out = append(out, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return out
}

// FormatSummary renders stats as a block with one labelled row per count
// and a closing verdict. Rows for zero failures, writes or severities are
// left out.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var sb strings.Builder
	row := func(indent int, label string, n int, style lipgloss.Style) {
		fmt.Fprintf(&sb, "%s%-*s%s\n", strings.Repeat(" ", indent), 21-indent, label+":", style.Render(strconv.Itoa(n)))
	}
	optional := func(indent int, label string, n int, style lipgloss.Style) {
		if n > 0 {
			row(indent, label, n, style)
		}
	}

	sb.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n" + summaryRule + "\n")

	row(2, "Files checked", stats.FilesProcessed, s.SummaryValue)
	row(2, "Tables checked", stats.TablesTotal, s.SummaryValue)
	optional(2, "Files with issues", stats.FilesWithIssues, s.Failure)
	optional(2, "Files failed", stats.FilesErrored, s.Failure)
	optional(2, "Documents written", stats.FilesWritten, s.Success)
	sb.WriteString("\n")

	row(2, "Total issues", stats.DiagnosticsTotal, s.SummaryValue)
	optional(4, "Errors", stats.DiagnosticsBySeverity["error"], s.Error)
	optional(4, "Warnings", stats.DiagnosticsBySeverity["warning"], s.Warning)
	optional(4, "Info", stats.DiagnosticsBySeverity["info"], s.Info)
	sb.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity["error"] > 0:
		sb.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		sb.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		sb.WriteString(s.Success.Render("Lint passed"))
	}
	sb.WriteString("\n")
	return sb.String()
}
