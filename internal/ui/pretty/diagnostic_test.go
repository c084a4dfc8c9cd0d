package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

func captionDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:   "TEX004",
		RuleName: "table-caption",
		Message:  `Table does not have a caption using \caption.`,
		Severity: config.SeverityWarning,
		FilePath: "paper.tex",
		Table:    2,
		Line:     12,
		Column:   1,
	}
}

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatDiagnostic(captionDiagnostic())

	assert.Contains(t, result, "paper.tex:12:1")
	assert.Contains(t, result, "table 2")
	assert.Contains(t, result, "warning")
	assert.Contains(t, result, `Table does not have a caption using \caption.`)
	assert.Contains(t, result, "(TEX004)")
}

func TestFormatDiagnosticWithFormat(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		format config.RuleFormat
		want   string
	}{
		{config.RuleFormatName, "(table-caption)"},
		{config.RuleFormatID, "(TEX004)"},
		{config.RuleFormatCombined, "(TEX004/table-caption)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Contains(t, styles.FormatDiagnosticWithFormat(captionDiagnostic(), tt.format), tt.want)
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity(config.Severity("custom")))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "paper.tex (3 issues)", styles.FormatFileHeader("paper.tex", 3))
	assert.Equal(t, "paper.tex", styles.FormatFileHeader("paper.tex", 0))
}

func TestFormatTreeLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "caption\n", styles.FormatTreeLine(0, &texast.Macro{Name: "caption"}))
	assert.Equal(t, "--{ }\n", styles.FormatTreeLine(1, &texast.Group{Delimiters: texast.Delimiters{Open: "{", Close: "}"}}))
	assert.Equal(t, "----x\n", styles.FormatTreeLine(2, &texast.Chars{Text: "x"}))
}
