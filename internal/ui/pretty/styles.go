// Package pretty renders diagnostics, summaries, tables, trees and diffs for
// the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes.
const (
	colorGray    = "8"
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorSilver  = "7"
)

// Styles holds every style the CLI renders with. With color disabled each
// one is a no-op.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath lipgloss.Style
	Location lipgloss.Style
	TableRef lipgloss.Style
	RuleID   lipgloss.Style
	Message  lipgloss.Style

	TreeGuide lipgloss.Style
	TreeMacro lipgloss.Style
	TreeGroup lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	p := painter(colorEnabled)
	return &Styles{
		Error:   p.fg(colorRed).bold(),
		Warning: p.fg(colorYellow).bold(),
		Info:    p.fg(colorBlue).bold(),

		FilePath: p.plain().bold(),
		Location: p.fg(colorGray).done(),
		TableRef: p.fg(colorCyan).done(),
		RuleID:   p.fg(colorGray).done(),
		Message:  p.plain().done(),

		TreeGuide: p.fg(colorGray).done(),
		TreeMacro: p.fg(colorMagenta).done(),
		TreeGroup: p.fg(colorCyan).done(),

		SummaryTitle: p.plain().bold(),
		SummaryValue: p.plain().done(),
		Success:      p.fg(colorGreen).bold(),
		Failure:      p.fg(colorRed).bold(),

		TableHeader:    p.fg(colorSilver).bold(),
		TableErrorRow:  p.fg(colorRed).done(),
		TableWarnRow:   p.fg(colorYellow).done(),
		TableInfoRow:   p.fg(colorBlue).done(),
		TableLegend:    p.fg(colorGray).italic(),
		TableSeparator: p.fg(colorGray).done(),

		Dim:  p.fg(colorGray).done(),
		Bold: p.plain().bold(),
	}
}

// painter builds styles that collapse to plain when color is off.
type painter bool

type brush struct {
	on    bool
	style lipgloss.Style
}

func (p painter) plain() brush { return brush{on: bool(p), style: lipgloss.NewStyle()} }

func (p painter) fg(color string) brush {
	b := p.plain()
	if b.on {
		b.style = b.style.Foreground(lipgloss.Color(color))
	}
	return b
}

func (b brush) done() lipgloss.Style { return b.style }

func (b brush) bold() lipgloss.Style {
	if !b.on {
		return b.style
	}
	return b.style.Bold(true)
}

func (b brush) italic() lipgloss.Style {
	if !b.on {
		return b.style
	}
	return b.style.Italic(true)
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else means auto: color only on a terminal and
// only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
