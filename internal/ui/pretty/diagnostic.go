package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Uses ID format for backwards compatibility.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic) string {
	return s.FormatDiagnosticWithFormat(diag, config.RuleFormatID)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.Line,
		diag.Column,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	// Main line: location  table  severity  message  (rule-id)
	return fmt.Sprintf("  %s  %s  %s  %s  %s\n",
		location,
		s.TableRef.Render(fmt.Sprintf("table %d", diag.Table)),
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatTreeLine formats one line of the document outline: depth guides
// followed by the node label. Macro names and group delimiters are styled.
func (s *Styles) FormatTreeLine(depth int, node texast.Node) string {
	guide := s.TreeGuide.Render(strings.Repeat("--", depth))
	label := texast.OutlineLabel(node)
	switch node.Kind() {
	case texast.KindMacro:
		label = s.TreeMacro.Render(label)
	case texast.KindGroup, texast.KindEnvironment:
		label = s.TreeGroup.Render(label)
	default:
	}
	return guide + label + "\n"
}
