package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files lists every processed file in run order.
	Files []FileAnalysis `json:"files"`

	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByRule groups diagnostics by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	Table    int    `json:"table"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files            int `json:"filesChecked"`
	FilesWithIssues  int `json:"filesWithIssues"`
	FilesErrored     int `json:"filesErrored"`
	Tables           int `json:"tablesChecked"`
	Issues           int `json:"totalIssues"`
	Errors           int `json:"errors"`
	Warnings         int `json:"warnings"`
	Infos            int `json:"infos"`
	DocumentsWritten int `json:"documentsWritten"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis holds one file's tables and their warnings.
type FileAnalysis struct {
	Path     string          `json:"path"`
	Tables   []TableAnalysis `json:"tables"`
	Issues   int             `json:"issues"`
	JSONPath string          `json:"document,omitempty"`
	Skipped  string          `json:"skipped,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// TableAnalysis holds the warnings of one table, in check order.
type TableAnalysis struct {
	Index    int      `json:"index"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Warnings []string `json:"warnings"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}
