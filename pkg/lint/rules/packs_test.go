package rules

import (
	"testing"

	"github.com/yaklabco/gotexlint/pkg/lint"
)

func TestPacks(t *testing.T) {
	packs := Packs()

	if len(packs) != 3 {
		t.Errorf("got %d packs, want 3", len(packs))
	}

	registry := lint.NewRegistry()
	RegisterAll(registry)

	for _, pack := range packs {
		if pack.Name == "" {
			t.Error("pack has empty name")
		}
		if pack.Description == "" {
			t.Errorf("pack %q has empty description", pack.Name)
		}
		if len(pack.Rules) == 0 {
			t.Errorf("pack %q has no rules", pack.Name)
		}

		for ruleID, cfg := range pack.Rules {
			if _, ok := registry.GetByID(ruleID); !ok {
				t.Errorf("pack %q references unknown check %q", pack.Name, ruleID)
			}
			if cfg.Enabled == nil {
				t.Errorf("pack %q rule %q has nil Enabled", pack.Name, ruleID)
			}
		}
	}
}

func TestPackByName(t *testing.T) {
	for _, name := range PackNames() {
		pack := PackByName(name)
		if pack == nil {
			t.Fatalf("PackByName(%q) = nil", name)
		}
		if pack.Name != name {
			t.Errorf("PackByName(%q).Name = %q", name, pack.Name)
		}
	}

	if PackByName("nonexistent") != nil {
		t.Error("PackByName(nonexistent) should be nil")
	}
}

func TestRelaxedPack_DisablesPlacement(t *testing.T) {
	cfg := RelaxedPack().Rules["TEX002"]
	if cfg.Enabled == nil || *cfg.Enabled {
		t.Error("relaxed pack should disable TEX002")
	}
}
