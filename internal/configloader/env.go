package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gotexlint/pkg/config"
)

// envVarPrefix is the prefix for all gotexlint environment variables.
const envVarPrefix = "GOTEXLINT_"

// envVar describes one supported environment variable: how to apply its
// value and what it means.
type envVar struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"SEVERITY_DEFAULT": {
		field:       "severity_default",
		description: "Default severity: error, warning, or info",
		apply: func(cfg *config.Config, value string) error {
			cfg.SeverityDefault = value
			return nil
		},
	},
	"FORMAT": {
		field:       "format",
		description: "Output format: text, table, json, markdown, html, or sarif",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"RULE_FORMAT": {
		field:       "rule_format",
		description: "Rule identifiers in output: name, id, or combined",
		apply: func(cfg *config.Config, value string) error {
			cfg.RuleFormat = config.RuleFormat(value)
			return nil
		},
	},
	"JOBS": {
		field:       "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := parseInt("JOBS", value)
			if err != nil {
				return err
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"MAX_DEPTH": {
		field:       "max_depth",
		description: "Maximum parser nesting depth",
		apply: func(cfg *config.Config, value string) error {
			depth, err := parseInt("MAX_DEPTH", value)
			if err != nil {
				return err
			}
			cfg.MaxDepth = depth
			return nil
		},
	},
	"EMIT_JSON": {
		field:       "emit_json",
		description: "Write the canonical document next to each source: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %sEMIT_JSON: %q (expected true/false/1/0)", envVarPrefix, value)
			}
			cfg.EmitJSON = b
			return nil
		},
	},
	"IGNORE": {
		field:       "ignore",
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	"EXTENSIONS": {
		field:       "extensions",
		description: "Comma-separated list of LaTeX file extensions",
		apply: func(cfg *config.Config, value string) error {
			cfg.Extensions = parseSliceValue(value)
			return nil
		},
	},
	"SERVE_ADDR": {
		field:       "serve.addr",
		description: "Listen address of the HTTP service",
		apply: func(cfg *config.Config, value string) error {
			cfg.Serve.Addr = value
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOTEXLINT_ (e.g., GOTEXLINT_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, v := range envVars {
		value := os.Getenv(envVarPrefix + suffix)
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return err
		}
	}

	return nil
}

func parseInt(suffix, value string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s%s: %q", envVarPrefix, suffix, value)
	}
	return i, nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, v := range envVars {
		if v.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVarHelp is one line of environment variable documentation.
type EnvVarHelp struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVarHelp {
	list := make([]EnvVarHelp, 0, len(envVars))
	for suffix, v := range envVars {
		list = append(list, EnvVarHelp{Name: envVarPrefix + suffix, Description: v.description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
