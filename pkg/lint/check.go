// Package lint provides the table lint engine, diagnostics, and check
// registry for gotexlint.
package lint

import (
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// Check is one structural predicate over a table-like group node.
type Check interface {
	// ID returns the unique identifier for this check (e.g., "TEX001").
	ID() string

	// Name returns the human-readable name of the check.
	Name() string

	// Description returns a detailed description of what the check verifies.
	Description() string

	// Message is the warning reported when Pass returns false.
	Message() string

	// Gate reports whether a failure stops evaluation of the remaining checks.
	Gate() bool

	// DefaultEnabled returns whether the check is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this check.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this check.
	Tags() []string

	// Pass evaluates the check against root. It must not modify root.
	Pass(root texast.Node) bool
}

// BaseCheck provides the metadata half of the Check interface.
// Embed it in check implementations and supply Pass.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseCheck struct {
	id       string
	name     string
	desc     string
	message  string
	tags     []string
	gate     bool
	severity config.Severity
}

// NewBaseCheck creates a BaseCheck with the given properties and warning
// severity.
func NewBaseCheck(id, name, desc, message string, tags []string) BaseCheck {
	return BaseCheck{
		id:       id,
		name:     name,
		desc:     desc,
		message:  message,
		tags:     tags,
		severity: config.SeverityWarning,
	}
}

// NewGateCheck creates a BaseCheck whose failure short-circuits the engine.
// Gate checks default to error severity.
func NewGateCheck(id, name, desc, message string, tags []string) BaseCheck {
	base := NewBaseCheck(id, name, desc, message, tags)
	base.gate = true
	base.severity = config.SeverityError
	return base
}

// ID returns the unique identifier for this check.
func (c *BaseCheck) ID() string {
	return c.id
}

// Name returns the human-readable name of the check.
func (c *BaseCheck) Name() string {
	return c.name
}

// Description returns a detailed description of what the check verifies.
func (c *BaseCheck) Description() string {
	return c.desc
}

// Message returns the warning text.
func (c *BaseCheck) Message() string {
	return c.message
}

// Gate reports whether this is a short-circuiting check.
func (c *BaseCheck) Gate() bool {
	return c.gate
}

// DefaultEnabled returns whether the check is enabled by default.
func (c *BaseCheck) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this check.
func (c *BaseCheck) DefaultSeverity() config.Severity {
	return c.severity
}

// Tags returns categorization tags for this check.
func (c *BaseCheck) Tags() []string {
	return c.tags
}
