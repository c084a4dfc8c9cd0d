package config

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
	"text/template"
)

// TemplateOptions selects what GenerateTemplate writes.
type TemplateOptions struct {
	// Full writes every setting and a documented block per rule instead of
	// the commented-out minimal file.
	Full bool

	// IncludeRules limits the rule blocks of a full template to these IDs.
	IncludeRules []string
}

// RuleInfo describes a rule for a generated template.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider lists the known rules. The rules package installs one as
// DefaultRuleInfoProvider so this package need not import it.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set when the rules package is imported.
var DefaultRuleInfoProvider RuleInfoProvider

// DefaultTemplateHeader is the comment that opens generated configs.
func DefaultTemplateHeader() string {
	return "# gotexlint configuration\n# See: https://github.com/yaklabco/gotexlint"
}

const minimalTemplate = `{{header}}

# Default severity for all rules: error, warning, or info
severity_default: warning

# File extensions treated as LaTeX sources
# extensions:
#   - .tex
#   - .ltx

# File patterns to ignore (glob patterns)
# ignore:
#   - "build/**"

# Write <name>.json with the canonical document tree next to each source
# emit_json: false

# Rule-specific configuration, keyed by ID or name
# rules:
#   TEX002:
#     enabled: false
#   table-caption:
#     severity: error
`

const fullTemplate = `{{header}} - Full Template
#
# This template includes all available rules with their default settings.

# Default severity for all rules: error, warning, or info
severity_default: warning

# File extensions treated as LaTeX sources
extensions:
{{- range .Extensions}}
  - {{.}}
{{- end}}

# File patterns to ignore (glob patterns)
ignore:
  - "build/**"

# Maximum group/environment nesting accepted by the parser
max_depth: {{.MaxDepth}}

# Write <name>.json with the canonical document tree next to each source
emit_json: false

# HTTP service settings for "gotexlint serve"
serve:
  addr: {{.Addr}}

# Rule-specific configuration
rules:
{{- range .Rules}}

  # {{.ID}}: {{.Name}}
  # {{wrap .Description}}
{{- if .Tags}}
  # Tags: {{join .Tags ", "}}
{{- end}}
  {{.ID}}:
    enabled: {{.Enabled}}
    severity: {{.Severity}}
{{- end}}
`

var templates = template.Must(template.New("minimal").Funcs(template.FuncMap{
	"header": DefaultTemplateHeader,
	"join":   strings.Join,
	"wrap":   func(s string) string { return wrapComment(s, commentWidth) },
}).Parse(minimalTemplate))

func init() {
	template.Must(templates.New("full").Parse(fullTemplate))
}

const commentWidth = 70

type fullTemplateData struct {
	Extensions []string
	MaxDepth   int
	Addr       string
	Rules      []RuleInfo
}

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	name, data := "minimal", any(nil)
	if opts.Full {
		name, data = "full", fullTemplateData{
			Extensions: DefaultExtensions(),
			MaxDepth:   DefaultMaxDepth,
			Addr:       DefaultServeAddr,
			Rules:      templateRules(opts.IncludeRules),
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic("config template: " + err.Error())
	}
	return buf.Bytes()
}

func templateRules(include []string) []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	rules := DefaultRuleInfoProvider()
	if len(include) > 0 {
		rules = slices.DeleteFunc(rules, func(r RuleInfo) bool { return !slices.Contains(include, r.ID) })
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int { return cmp.Compare(a.ID, b.ID) })
	return rules
}

// wrapComment breaks text at spaces into lines of at most width bytes,
// continuing each line as an indented YAML comment.
func wrapComment(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return strings.Join(lines, "\n  # ")
}
