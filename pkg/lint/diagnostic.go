package lint

import "github.com/yaklabco/gotexlint/pkg/config"

// Diagnostic represents a single failed check on one table.
type Diagnostic struct {
	// RuleID is the identifier of the check that failed.
	RuleID string

	// RuleName is the human-readable name of the check (e.g., "table-caption").
	RuleName string

	// Message is the warning text.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the table.
	FilePath string

	// Table is the 1-based index of the table in document order.
	Table int

	// Line and Column locate the table's \begin, 1-based. Zero when unknown.
	Line   int
	Column int
}

// Messages returns the warning text of each diagnostic, in order.
func Messages(diags []Diagnostic) []string {
	messages := make([]string, 0, len(diags))
	for _, d := range diags {
		messages = append(messages, d.Message)
	}
	return messages
}
