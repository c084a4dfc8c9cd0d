package configloader

import (
	"slices"

	"github.com/yaklabco/gotexlint/pkg/config"
)

// merge layers override on top of base and returns a new Config. Zero
// scalars and nil slices in override leave base alone; a non-nil slice
// replaces base's; rules merge per field.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	overlay(&out.SeverityDefault, override.SeverityDefault)
	overlay(&out.Format, override.Format)
	overlay(&out.RuleFormat, override.RuleFormat)
	overlay(&out.Jobs, override.Jobs)
	overlay(&out.MaxDepth, override.MaxDepth)
	overlay(&out.Serve.Addr, override.Serve.Addr)

	// A layer can turn emission on but not off; GOTEXLINT_EMIT_JSON=false
	// is applied after merging and can.
	out.EmitJSON = out.EmitJSON || override.EmitJSON

	replace(&out.Ignore, override.Ignore)
	replace(&out.Extensions, override.Extensions)
	replace(&out.EnableRules, override.EnableRules)
	replace(&out.DisableRules, override.DisableRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func replace[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = slices.Clone(v)
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := make(map[string]config.RuleConfig, len(base)+len(override))
	for id, rc := range base {
		out[id] = rc
	}
	for id, rc := range override {
		merged := out[id]
		if rc.Enabled != nil {
			merged.Enabled = rc.Enabled
		}
		if rc.Severity != nil {
			merged.Severity = rc.Severity
		}
		out[id] = merged
	}
	return out
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for i, cfg := range configs {
		if i == 0 {
			out = cfg
			continue
		}
		out = merge(out, cfg)
	}
	return out
}
