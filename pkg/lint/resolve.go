package lint

import (
	"cmp"
	"maps"
	"slices"

	"github.com/yaklabco/gotexlint/pkg/config"
)

// ResolvedCheck pairs a Check with its resolved configuration.
type ResolvedCheck struct {
	// Check is the underlying check implementation.
	Check Check

	// Enabled indicates whether the check should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this check.
	Severity config.Severity
}

// ResolveChecks determines which checks to run based on registry and config.
// It returns only enabled checks, gates first, then by ID. Gate checks are
// always enabled.
func ResolveChecks(registry *Registry, cfg *config.Config) []ResolvedCheck {
	var resolved []ResolvedCheck

	for _, check := range registry.Checks() {
		rc := resolveCheck(registry, check, cfg)
		if rc.Enabled {
			resolved = append(resolved, rc)
		}
	}

	slices.SortStableFunc(resolved, func(a, b ResolvedCheck) int {
		return cmp.Compare(gateRank(a.Check), gateRank(b.Check))
	})

	return resolved
}

func gateRank(check Check) int {
	if check.Gate() {
		return 0
	}
	return 1
}

func resolveCheck(registry *Registry, check Check, cfg *config.Config) ResolvedCheck {
	rc := ResolvedCheck{
		Check:    check,
		Enabled:  check.DefaultEnabled(),
		Severity: check.DefaultSeverity(),
	}

	if cfg == nil {
		return rc
	}

	if rc.Severity == "" && config.Severity(cfg.SeverityDefault).IsValid() {
		rc.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Per-rule config may be keyed by ID, name, or alias; keys are applied in
	// sorted order.
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[key]
		if id, _, ok := registry.Resolve(key); !ok || id != check.ID() {
			continue
		}
		if ruleCfg.Enabled != nil {
			rc.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rc.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// CLI enable/disable take precedence over the config file.
	if matchesAny(registry, check, cfg.EnableRules) {
		rc.Enabled = true
	}
	if matchesAny(registry, check, cfg.DisableRules) {
		rc.Enabled = false
	}

	if check.Gate() {
		rc.Enabled = true
	}

	return rc
}

func matchesAny(registry *Registry, check Check, keys []string) bool {
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok && id == check.ID() {
			return true
		}
	}
	return false
}
