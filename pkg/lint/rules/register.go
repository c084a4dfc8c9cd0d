package rules

import (
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// RegisterAll registers all built-in checks with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewTableEnvironmentCheck()) // TEX001
	registry.Register(NewTablePlacementCheck())   // TEX002
	registry.Register(NewTableCenteringCheck())   // TEX003
	registry.Register(NewTableCaptionCheck())     // TEX004
}

// RegisterAliases registers short alternate names for the built-in checks.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("table", "TEX001")
	registry.RegisterAlias("placement", "TEX002")
	registry.RegisterAlias("centering", "TEX003")
	registry.RegisterAlias("caption", "TEX004")
}

// RuleInfos describes the checks of registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	checks := registry.Checks()
	infos := make([]config.RuleInfo, 0, len(checks))
	for _, check := range checks {
		infos = append(infos, config.RuleInfo{
			ID:          check.ID(),
			Name:        check.Name(),
			Description: check.Description(),
			Enabled:     check.DefaultEnabled(),
			Severity:    check.DefaultSeverity(),
			Tags:        check.Tags(),
		})
	}
	return infos
}

// init registers all built-in checks with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic check registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
