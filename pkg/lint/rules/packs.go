package rules

import "github.com/yaklabco/gotexlint/pkg/config"

// Pack describes a named group of check defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .gotexlint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "default", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains check configurations keyed by check ID.
	Rules map[string]config.RuleConfig
}

// DefaultPack enables every table check as a warning.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "All table checks as warnings",
		Rules: map[string]config.RuleConfig{
			"TEX001": enabled("error"),   // table-environment
			"TEX002": enabled("warning"), // table-placement
			"TEX003": enabled("warning"), // table-centering
			"TEX004": enabled("warning"), // table-caption
		},
	}
}

// StrictPack reports every table check as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "All table checks as errors",
		Rules: map[string]config.RuleConfig{
			"TEX001": enabled("error"),
			"TEX002": enabled("error"),
			"TEX003": enabled("error"),
			"TEX004": enabled("error"),
		},
	}
}

// RelaxedPack drops the placement check and keeps captions informational.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Floating placement allowed; centering warned, captions informational",
		Rules: map[string]config.RuleConfig{
			"TEX002": disabled(),
			"TEX003": enabled("warning"),
			"TEX004": enabled("info"),
		},
	}
}

// Packs returns all built-in packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns the pack with the given name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the check enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
