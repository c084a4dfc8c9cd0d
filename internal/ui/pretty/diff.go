package pretty

import (
	"strings"

	"github.com/yaklabco/gotexlint/pkg/docdiff"
)

// FormatDiff renders a unified diff with added lines in the success style,
// removed lines in the failure style and headers dimmed.
func (s *Styles) FormatDiff(diff *docdiff.Diff) string {
	text := diff.String()
	if text == "" {
		return ""
	}

	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case body == "":
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			b.WriteString(s.Bold.Render(body))
		case strings.HasPrefix(body, "@@"):
			b.WriteString(s.Dim.Render(body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(s.Success.Render(body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(s.Failure.Render(body))
		default:
			b.WriteString(body)
		}
		if strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
