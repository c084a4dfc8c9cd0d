package lint

import (
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// Engine runs an ordered list of checks over table-like group nodes.
//
// Checks run in resolved order. A failing gate check reports its message
// and ends evaluation; every other check is independent, and all of their
// failures accumulate. The engine holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	checks []ResolvedCheck
}

// NewEngine creates an Engine running the checks of registry enabled by cfg.
// A nil cfg uses each check's defaults.
func NewEngine(registry *Registry, cfg *config.Config) *Engine {
	return &Engine{checks: ResolveChecks(registry, cfg)}
}

// NewDefaultEngine creates an Engine over DefaultRegistry with default
// settings. The built-in checks are registered by importing the rules
// package.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRegistry, nil)
}

// Checks returns the resolved checks in evaluation order.
func (e *Engine) Checks() []ResolvedCheck {
	return e.checks
}

// Lint returns the warning messages for root in evaluation order. An empty
// result means every check passed.
func (e *Engine) Lint(root texast.Node) []string {
	return Messages(e.Diagnostics(root))
}

// Diagnostics returns one diagnostic per failed check. Location fields are
// left for the caller to fill in.
func (e *Engine) Diagnostics(root texast.Node) []Diagnostic {
	diags := []Diagnostic{}

	for _, rc := range e.checks {
		if rc.Check.Pass(root) {
			continue
		}

		diags = append(diags, Diagnostic{
			RuleID:   rc.Check.ID(),
			RuleName: rc.Check.Name(),
			Message:  rc.Check.Message(),
			Severity: rc.Severity,
		})

		if rc.Check.Gate() {
			break
		}
	}

	return diags
}
