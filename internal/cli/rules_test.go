package cli_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/internal/cli"
)

func TestRules_Text(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules")
	require.NoError(t, err)

	for _, want := range []string{
		"TEX001/table-environment",
		"TEX002/table-placement",
		"TEX003/table-centering",
		"TEX004/table-caption",
		"(gate)",
		msgCaption,
	} {
		assert.Contains(t, stdout, want)
	}

	first := strings.Index(stdout, "TEX001")
	last := strings.Index(stdout, "TEX004")
	assert.Less(t, first, last, "rules are listed in ID order")
}

func TestRules_RuleFormat(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--rule-format", "id")
	require.NoError(t, err)
	assert.Contains(t, stdout, "TEX002")
	assert.NotContains(t, stdout, "table-placement")
}

func TestRules_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Message  string `json:"message"`
		Severity string `json:"severity"`
		Gate     bool   `json:"gate"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 4)

	assert.Equal(t, "TEX001", infos[0].ID)
	assert.True(t, infos[0].Gate)
	assert.Equal(t, "error", infos[0].Severity)

	assert.Equal(t, "table-caption", infos[3].Name)
	assert.Equal(t, msgCaption, infos[3].Message)
	assert.False(t, infos[3].Gate)
	assert.Equal(t, "warning", infos[3].Severity)
}

func TestRules_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "rules", "--format", "yaml")
	require.ErrorIs(t, err, cli.ErrUsage)
}
