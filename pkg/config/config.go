// Package config defines core configuration types for gotexlint.
// These types are pure data structures; discovery and merging live in the
// configloader package.
package config

import "slices"

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
	FormatSARIF    OutputFormat = "sarif"
)

// IsValid reports whether f names a supported output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains([]OutputFormat{FormatText, FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatSARIF}, f)
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "table-caption"
	RuleFormatID       RuleFormat = "id"       // "TEX004"
	RuleFormatCombined RuleFormat = "combined" // "TEX004/table-caption"
)

// FormatRuleID labels a rule for output. Unknown formats behave like
// RuleFormatName, and a rule without a name is always shown by ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".tex", ".ltx"}
}

// DefaultMaxDepth is the parser nesting limit used when none is configured.
const DefaultMaxDepth = 512

// DefaultServeAddr is the listen address of the HTTP service.
const DefaultServeAddr = "127.0.0.1:8080"

// Config is the root configuration structure for gotexlint.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID or name.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions lists the file extensions considered LaTeX sources.
	Extensions []string `yaml:"extensions,omitempty"`

	// MaxDepth bounds parser nesting.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// EmitJSON writes the canonical document next to each linted source.
	EmitJSON bool `yaml:"emit_json"`

	Serve ServeConfig `yaml:"serve,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Extensions:      DefaultExtensions(),
		MaxDepth:        DefaultMaxDepth,
		Serve:           ServeConfig{Addr: DefaultServeAddr},
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}
