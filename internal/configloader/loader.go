// Package configloader resolves the effective configuration from defaults,
// configuration files found the XDG way, GOTEXLINT_* environment variables
// and command-line flags, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means the process
	// working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and is applied last.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	Warnings []string
}

type layer struct {
	name string
	path string
	skip bool
}

// Load merges, from lowest to highest precedence: defaults, the system
// file, the user file, the project file, the --config file, GOTEXLINT_*
// variables and CLIConfig. Each file is validated on its own so errors
// point at the file and line that caused them.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	res := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, l := range []layer{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	} {
		if l.skip || l.path == "" {
			continue
		}
		fileCfg, doc, err := readConfigFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}
		if v := validateFile(fileCfg, l.path, doc); !v.Valid() {
			return nil, &v.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		res.LoadedFrom = append(res.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	res.Warnings = append(res.Warnings, canonicalizeRules(cfg, lint.DefaultRegistry)...)

	v := Validate(cfg)
	if !v.Valid() {
		return nil, &v.Errors[0]
	}
	for i := range v.Warnings {
		res.Warnings = append(res.Warnings, v.Warnings[i].Error())
	}

	res.Config = cfg
	return res, nil
}

// readConfigFile decodes one file. Absent fields stay zero so merge keeps
// the lower layers' values. The node tree is returned for line lookups.
func readConfigFile(path string) (*config.Config, *yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse YAML in %s: %w", path, err)
	}

	cfg := &config.Config{Rules: map[string]config.RuleConfig{}}
	if doc.Kind == 0 {
		return cfg, nil, nil
	}
	if err := doc.Decode(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse YAML in %s: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]config.RuleConfig{}
	}
	return cfg, &doc, nil
}

// canonicalizeRules rekeys cfg.Rules by rule ID so "table-caption" and
// "TEX004" address the same check. Keys are visited in sorted order; when
// two keys name one rule the later key wins and a warning is returned.
// Unknown keys are kept for Validate to report.
func canonicalizeRules(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	rules := make(map[string]config.RuleConfig, len(cfg.Rules))
	spelledAs := make(map[string]string, len(cfg.Rules))

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		id, _, ok := registry.Resolve(key)
		if !ok {
			id = key
		} else if prev, dup := spelledAs[id]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q",
				prev, key, id, key))
		}
		spelledAs[id] = key
		rules[id] = cfg.Rules[key]
	}

	cfg.Rules = rules
	return warnings
}
