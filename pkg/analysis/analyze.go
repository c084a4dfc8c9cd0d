// Package analysis turns runner results into a report model shared by the
// machine-readable and document renderers.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Analyze reduces result to a Report in a single pass over its files and
// diagnostics. A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	b := &builder{
		opts:   opts,
		report: &Report{Files: []FileAnalysis{}, Version: ReportVersion, Timestamp: time.Now()},
		rules:  make(map[string]*ruleTally),
	}
	if result != nil {
		for _, file := range result.Files {
			b.addFile(file)
		}
	}
	if opts.IncludeByRule {
		b.report.ByRule = b.byRule()
	}
	return b.report
}

type ruleTally struct {
	RuleAnalysis
	files map[string]struct{}
}

type builder struct {
	opts   Options
	report *Report
	rules  map[string]*ruleTally
}

// display makes path relative to the working directory when one is set.
func (b *builder) display(path string) string {
	if b.opts.WorkingDir == "" {
		return path
	}
	if rel, err := filepath.Rel(b.opts.WorkingDir, path); err == nil {
		return rel
	}
	return path
}

func (b *builder) addFile(file runner.FileOutcome) {
	totals := &b.report.Totals
	totals.Files++

	fa := FileAnalysis{Path: b.display(file.Path), Tables: []TableAnalysis{}}
	defer func() { b.report.Files = append(b.report.Files, fa) }()

	switch {
	case file.Error != nil:
		totals.FilesErrored++
		fa.Error = file.Error.Error()
		return
	case file.Result == nil:
		return
	}

	fr := file.Result
	fa.Tables = tablesOf(fr)
	fa.Issues = len(fr.Diagnostics)
	fa.Skipped = fr.SkipReason
	if fr.JSONPath != "" {
		fa.JSONPath = b.display(fr.JSONPath)
	}
	if fr.Written {
		totals.DocumentsWritten++
	}
	if fr.HasIssues() {
		totals.FilesWithIssues++
	}
	totals.Tables += fr.Tables

	for i := range fr.Diagnostics {
		b.addDiagnostic(fa.Path, &fr.Diagnostics[i])
	}
}

func (b *builder) addDiagnostic(path string, diag *lint.Diagnostic) {
	severity := config.SeverityWarning
	if diag.Severity != "" {
		severity = diag.Severity
	}

	tally, ok := b.rules[diag.RuleID]
	if !ok {
		tally = &ruleTally{
			RuleAnalysis: RuleAnalysis{RuleID: diag.RuleID, RuleName: diag.RuleName},
			files:        make(map[string]struct{}),
		}
		b.rules[diag.RuleID] = tally
	}
	tally.files[path] = struct{}{}

	totals := &b.report.Totals
	totals.Issues++
	tally.Issues++
	switch severity {
	case config.SeverityError:
		totals.Errors++
		tally.Errors++
	case config.SeverityWarning:
		totals.Warnings++
		tally.Warnings++
	case config.SeverityInfo:
		totals.Infos++
		tally.Infos++
	}

	if b.opts.IncludeDiagnostics {
		b.report.Diagnostics = append(b.report.Diagnostics, DiagnosticEntry{
			FilePath: path,
			Table:    diag.Table,
			RuleID:   diag.RuleID,
			RuleName: diag.RuleName,
			Rule:     config.FormatRuleID(b.opts.RuleFormat, diag.RuleID, diag.RuleName),
			Severity: string(severity),
			Message:  diag.Message,
			Line:     diag.Line,
			Column:   diag.Column,
		})
	}
}

func (b *builder) byRule() []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(b.rules))
	for _, tally := range b.rules {
		ra := tally.RuleAnalysis
		ra.Files = slices.Sorted(maps.Keys(tally.files))
		out = append(out, ra)
	}
	slices.SortFunc(out, ruleOrder(b.opts.SortBy, b.opts.SortDesc))
	return out
}

// tablesOf lists every table of a file, including tables without warnings.
func tablesOf(fr *lint.FileResult) []TableAnalysis {
	warnings := fr.TableWarnings()
	tables := make([]TableAnalysis, len(warnings))
	for i, msgs := range warnings {
		tables[i] = TableAnalysis{Index: i + 1, Warnings: msgs}
		if i < len(fr.TablePositions) {
			pos := fr.TablePositions[i]
			tables[i].Line, tables[i].Column = pos.Line, pos.Column
		}
	}
	return tables
}

// ruleOrder compares rules by sortBy. Ties always fall back to the rule ID.
// desc only reverses the count order.
func ruleOrder(sortBy SortField, desc bool) func(a, b RuleAnalysis) int {
	return func(a, b RuleAnalysis) int {
		var c int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = cmp.Or(
				cmp.Compare(b.Errors, a.Errors),
				cmp.Compare(b.Warnings, a.Warnings),
				cmp.Compare(b.Issues, a.Issues),
			)
		default:
			c = cmp.Compare(a.Issues, b.Issues)
			if desc {
				c = -c
			}
		}
		return cmp.Or(c, cmp.Compare(a.RuleID, b.RuleID))
	}
}
