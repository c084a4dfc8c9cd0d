package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

const (
	defaultTermWidth = 100
	cellGap          = "  "
	ellipsis         = "..."
)

// Columns in display order. The file and message columns give up width
// when the table is wider than the terminal, message first.
const (
	colFile = iota
	colLoc
	colTable
	colMessage
	colRule
	numColumns
)

var (
	columnTitles    = [numColumns]string{"FILE", "LOC", "TABLE", "MESSAGE", "RULE"}
	minColumnWidths = [numColumns]int{20, 8, 5, 35, 8}
)

// TableRow is one diagnostic laid out for the table.
type TableRow struct {
	Cells    [numColumns]string
	Severity config.Severity
}

// TableFormatter renders diagnostics as a fixed-width table, one block of
// rows per file.
type TableFormatter struct {
	styles     *Styles
	color      bool
	width      int
	ruleFormat config.RuleFormat
}

// NewTableFormatter creates a table formatter for a terminal termWidth
// columns wide. A non-positive width means 100.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, color: colorEnabled, width: termWidth, ruleFormat: ruleFormat}
}

// FormatTable renders every diagnostic in result. It returns "" when no
// file has diagnostics.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}
	blocks := t.blocks(result)
	if len(blocks) == 0 {
		return ""
	}

	widths := t.fit(blocks)
	heavy := t.styles.TableSeparator.Render(strings.Repeat("=", lineWidth(widths)))
	light := t.styles.TableSeparator.Render(strings.Repeat("-", lineWidth(widths)))

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(t.styles.TableHeader.Render(layout(columnTitles, widths)))
	line(heavy)
	for i, rows := range blocks {
		if i > 0 {
			line(light)
		}
		for _, row := range rows {
			line(t.rowStyle(row.Severity).Render(layout(row.Cells, widths)))
		}
	}
	line(heavy)
	line(t.legend())
	return b.String()
}

func (t *TableFormatter) blocks(result *runner.Result) [][]TableRow {
	var blocks [][]TableRow
	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		rows := make([]TableRow, len(file.Result.Diagnostics))
		for i, d := range file.Result.Diagnostics {
			rows[i] = TableRow{
				Cells: [numColumns]string{
					colFile:    file.Path,
					colLoc:     fmt.Sprintf("%d:%d", d.Line, d.Column),
					colTable:   strconv.Itoa(d.Table),
					colMessage: d.Message,
					colRule:    config.FormatRuleID(t.ruleFormat, d.RuleID, d.RuleName),
				},
				Severity: d.Severity,
			}
		}
		blocks = append(blocks, rows)
	}
	return blocks
}

// fit sizes each column to its content, then narrows the message and file
// columns, in that order and never below their minimums, until the table
// fits the terminal.
func (t *TableFormatter) fit(blocks [][]TableRow) [numColumns]int {
	widths := minColumnWidths
	for _, rows := range blocks {
		for _, row := range rows {
			for c, cell := range row.Cells {
				widths[c] = max(widths[c], len(cell))
			}
		}
	}
	for _, c := range []int{colMessage, colFile} {
		if over := lineWidth(widths) - t.width; over > 0 {
			widths[c] = max(minColumnWidths[c], widths[c]-over)
		}
	}
	return widths
}

func lineWidth(widths [numColumns]int) int {
	total := 0
	for _, w := range widths {
		total += w + len(cellGap)
	}
	return total
}

func layout(cells [numColumns]string, widths [numColumns]int) string {
	parts := make([]string, numColumns)
	for c, cell := range cells {
		if c == colFile {
			cell = clipLeft(cell, widths[c])
		} else {
			cell = clipRight(cell, widths[c])
		}
		parts[c] = fmt.Sprintf("%-*s", widths[c], cell)
	}
	return " " + strings.Join(parts, cellGap) + " "
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	}
	return lipgloss.NewStyle()
}

func (t *TableFormatter) legend() string {
	if !t.color {
		return t.styles.TableLegend.Render(` Legend: LOC = line:column of \begin{table} | TABLE = table number in file`)
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info ")))
}

// FormatTableSummary is the line printed under the table, for example
// " 2 files checked | 3 tables | 1 warning | 12ms".
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		count(stats.FilesProcessed, "file") + " checked",
		count(stats.TablesTotal, "table"),
	}
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		parts = append(parts, t.styles.Error.Render(count(n, "error")))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(count(n, "warning")))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		parts = append(parts, t.styles.Info.Render(strconv.Itoa(n)+" info"))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// clipRight shortens s to width, marking the cut with an ellipsis.
func clipRight(s string, width int) string {
	switch {
	case len(s) <= width:
		return s
	case width <= len(ellipsis):
		return s[:width]
	}
	return s[:width-len(ellipsis)] + ellipsis
}

// clipLeft shortens s to width from the front so a path keeps its file name.
func clipLeft(s string, width int) string {
	switch {
	case len(s) <= width:
		return s
	case width <= len(ellipsis):
		return s[len(s)-width:]
	}
	return ellipsis + s[len(s)-width+len(ellipsis):]
}
