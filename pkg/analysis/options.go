package analysis

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/config"
)

// SortField orders Report.ByRule.
type SortField string

// Sort orders for the per-rule breakdown.
const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// SortFields lists the accepted orders.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	for _, f := range SortFields() {
		if s == f {
			return true
		}
	}
	return false
}

// ParseSortField parses a case-insensitive sort order. The empty string
// selects SortByCount.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	field := SortField(strings.ToLower(strings.TrimSpace(s)))
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort order %q; valid: count, alpha, severity", s)
	}
	return field, nil
}

// Options controls which views Analyze builds and how it labels them.
type Options struct {
	IncludeDiagnostics bool
	IncludeByRule      bool

	// SortBy orders ByRule. SortDesc only affects SortByCount; alpha is
	// always ascending and severity puts errors first.
	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions builds every view, busiest rule first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
