package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{"TEX001", "TEX002", "TEX003", "TEX004"}, registry.IDs())

	check, ok := registry.GetByID("TEX001")
	require.True(t, ok)
	assert.Equal(t, "table-environment", check.Name())
	assert.True(t, check.Gate())

	for _, id := range []string{"TEX002", "TEX003", "TEX004"} {
		check, ok := registry.GetByID(id)
		require.True(t, ok, id)
		assert.False(t, check.Gate(), id)
	}
}

func TestRegisterAliases(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)

	tests := []struct {
		alias string
		want  string
	}{
		{"table", "TEX001"},
		{"placement", "TEX002"},
		{"centering", "TEX003"},
		{"caption", "TEX004"},
	}

	for _, tt := range tests {
		id, _, ok := registry.Resolve(tt.alias)
		require.True(t, ok, tt.alias)
		assert.Equal(t, tt.want, id)
	}
}

func TestDefaultRegistryPopulated(t *testing.T) {
	assert.Len(t, lint.DefaultRegistry.Checks(), 4)

	infos := config.DefaultRuleInfoProvider()
	require.Len(t, infos, 4)
	assert.Equal(t, "TEX001", infos[0].ID)
	assert.Equal(t, config.SeverityError, infos[0].Severity)

	template := string(config.GenerateTemplate(config.TemplateOptions{Full: true}))
	assert.Contains(t, template, "# TEX004: table-caption")
}
