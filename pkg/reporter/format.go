package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/config"
)

// Format selects a reporter. The values match config.OutputFormat.
type Format string

const (
	FormatText     = Format(config.FormatText)
	FormatTable    = Format(config.FormatTable)
	FormatJSON     = Format(config.FormatJSON)
	FormatMarkdown = Format(config.FormatMarkdown)
	FormatHTML     = Format(config.FormatHTML)
	FormatSARIF    = Format(config.FormatSARIF)
)

// formatAliases maps alternate spellings to their format.
var formatAliases = map[string]Format{
	"":   FormatText,
	"md": FormatMarkdown,
}

// ParseFormat accepts any Formats value in any case, "md" for markdown, and
// "" for text.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, markdown, html, sarif", s)
}

// Formats lists every format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatSARIF}
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool { return config.OutputFormat(f).IsValid() }
