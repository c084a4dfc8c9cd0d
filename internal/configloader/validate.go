package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// ValidationError locates one invalid setting. Field is a dotted path such
// as "rules.TEX004.severity" or "extensions[1]".
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
	Line     int
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		if e.Line > 0 {
			sb.WriteString(":" + strconv.Itoa(e.Line))
		}
		sb.WriteString(": ")
	}
	if e.Field != "" {
		sb.WriteString(e.Field + ": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// ValidationResult collects the findings of Validate. Errors stop loading;
// warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether there are warnings.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for i := range r.Errors {
		out = append(out, "error: "+r.Errors[i].Error())
	}
	for i := range r.Warnings {
		out = append(out, "warning: "+r.Warnings[i].Error())
	}
	return out
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every setting of cfg. Unknown rule keys are warnings so
// that a configuration written for a newer release still loads.
func Validate(cfg *config.Config) *ValidationResult {
	res := &ValidationResult{}
	if cfg == nil {
		return res
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		res.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		res.fail("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, markdown, html, sarif", cfg.Format)
	}
	if cfg.RuleFormat != "" && !IsValidRuleFormat(cfg.RuleFormat) {
		res.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		res.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.MaxDepth < 0 {
		res.fail("max_depth", cfg.MaxDepth, "max_depth must be >= 0 (0 means the default)")
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			res.fail(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; must look like .tex", ext)
		}
	}

	// Compiled the same way the runner compiles them.
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			res.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	for key, rc := range cfg.Rules {
		if _, _, ok := lint.DefaultRegistry.Resolve(key); !ok {
			res.warn("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if rc.Severity != nil && !config.Severity(*rc.Severity).IsValid() {
			res.fail("rules."+key+".severity", *rc.Severity,
				"invalid severity %q; must be one of: error, warning, info", *rc.Severity)
		}
	}

	return res
}

// validateFile validates one configuration file, attributing findings to
// path and, when doc is available, to the line that set the field.
func validateFile(cfg *config.Config, path string, doc *yaml.Node) *ValidationResult {
	res := Validate(cfg)
	for _, list := range [][]ValidationError{res.Errors, res.Warnings} {
		for i := range list {
			list[i].FilePath = path
			list[i].Line = lineOf(doc, list[i].Field)
		}
	}
	return res
}

// lineOf finds the line of the value addressed by field, or 0.
func lineOf(doc *yaml.Node, field string) int {
	node := doc
	if node == nil || field == "" {
		return 0
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return 0
		}
		node = node.Content[0]
	}

	for _, part := range strings.Split(field, ".") {
		key, index := part, -1
		if open := strings.IndexByte(part, '['); open > 0 && strings.HasSuffix(part, "]") {
			n, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err == nil {
				key, index = part[:open], n
			}
		}

		node = mappingValue(node, key)
		if node == nil {
			return 0
		}
		if index >= 0 {
			if node.Kind != yaml.SequenceNode || index >= len(node.Content) {
				return node.Line
			}
			node = node.Content[index]
		}
	}
	return node.Line
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// IsValidRuleFormat reports whether f is name, id or combined.
func IsValidRuleFormat(f config.RuleFormat) bool {
	return slices.Contains([]config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}, f)
}
