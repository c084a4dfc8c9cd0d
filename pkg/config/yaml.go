package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// YAMLIndent is the indentation of generated configuration files.
func YAMLIndent() int { return yamlIndent }

// ToYAML renders the persisted fields of c. CLI-only fields are omitted.
// A nil config renders as nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(header, "\n"))
	sb.WriteString("\n\n")
	sb.Write(body)
	return []byte(sb.String()), nil
}

// FromYAML decodes a configuration document. Unknown keys are ignored here;
// configloader validates them.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	return &cfg, nil
}

// Clone returns a copy of c that shares no slices, maps or pointers with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.Extensions = slices.Clone(c.Extensions)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)

	if c.Rules != nil {
		out.Rules = maps.Clone(c.Rules)
		for id, rc := range out.Rules {
			out.Rules[id] = rc.clone()
		}
	}
	return &out
}

func (rc RuleConfig) clone() RuleConfig {
	var out RuleConfig
	if rc.Enabled != nil {
		v := *rc.Enabled
		out.Enabled = &v
	}
	if rc.Severity != nil {
		v := *rc.Severity
		out.Severity = &v
	}
	return out
}
