package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/internal/cli"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/reporter"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

const (
	goodTable = "\\begin{table}[H]\n\\begin{center}\nx\n\\end{center}\n\\caption{Fine.}\n\\end{table}\n"
	badTable  = "\\section{Results}\n\\begin{table}\n\\begin{tabular}{l}\nx\n\\end{tabular}\n\\end{table}\n"

	msgPlacement = "Table does not have a [H] positioning directive."
	msgCentering = `Table is not centered using \begin{center} and \end{center}.`
	msgCaption   = `Table does not have a caption using \caption.`
)

type jsonReport struct {
	Files []struct {
		Path   string `json:"path"`
		Error  string `json:"error"`
		Tables []struct {
			Index    int      `json:"index"`
			Line     int      `json:"line"`
			Warnings []string `json:"warnings"`
		} `json:"tables"`
	} `json:"files"`
	Diagnostics []struct {
		Rule string `json:"rule"`
	} `json:"diagnostics"`
	Summary struct {
		Tables   int `json:"tablesChecked"`
		Issues   int `json:"totalIssues"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

func TestLintCommand_RuleFormatDefault(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	flag := lintCmd.Flags().Lookup("rule-format")
	require.NotNil(t, flag, "rule-format flag should exist")
	assert.Equal(t, "name", flag.DefValue)
}

func TestLint_TextOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, src)
	require.NoError(t, err, "warnings alone do not fail the run")

	assert.Contains(t, stdout, "paper.tex")
	assert.Contains(t, stdout, "table 1")
	assert.Contains(t, stdout, msgPlacement)
	assert.Contains(t, stdout, msgCentering)
	assert.Contains(t, stdout, msgCaption)
	assert.Contains(t, stdout, "(table-caption)")
	assert.Contains(t, stdout, ":2:1")
}

func TestLint_StatsSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, "--stats", src)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Summary")
	assert.Contains(t, stdout, "Tables checked:    1")
	assert.Contains(t, stdout, "Warnings:        3")
	assert.Contains(t, stdout, "Lint completed with warnings")
}

func TestLint_Strict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", badTable)

	_, _, err := execute(t, "lint", "--config", cfg, "--strict", src)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintIssues, cli.ExitCode(err))

	clean := writeFile(t, dir, "clean.tex", goodTable)
	_, _, err = execute(t, "lint", "--config", cfg, "--strict", clean)
	require.NoError(t, err)
}

func TestLint_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "doc.tex", goodTable+"\n"+badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, "--format", "json", "--rule-format", "combined", src)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].Tables, 2)
	assert.Empty(t, report.Files[0].Tables[0].Warnings)
	assert.NotNil(t, report.Files[0].Tables[0].Warnings, "clean tables report an empty list")
	assert.Equal(t, []string{msgPlacement, msgCentering, msgCaption}, report.Files[0].Tables[1].Warnings)
	assert.Equal(t, 1, report.Files[0].Tables[0].Line)
	assert.Equal(t, 2, report.Summary.Tables)
	assert.Equal(t, 3, report.Summary.Issues)
	assert.Equal(t, 3, report.Summary.Warnings)

	rules := make([]string, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		rules = append(rules, d.Rule)
	}
	assert.Contains(t, rules, "TEX004/table-caption")
}

func TestLint_DisableAndSeverityFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeFile(t, dir, "gotexlint.yml", `rules:
  table-placement:
    enabled: false
  TEX004:
    severity: error
`)
	src := writeFile(t, dir, "paper.tex", badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, src)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound, "error severity fails the run")

	assert.NotContains(t, stdout, msgPlacement)
	assert.Contains(t, stdout, msgCentering)
	assert.Contains(t, stdout, msgCaption)

	stdout, _, err = execute(t, "lint", "--config", cfg, "--disable", "TEX004", src)
	require.NoError(t, err)
	assert.NotContains(t, stdout, msgCaption)
}

func TestLint_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	writeFile(t, dir, "a.tex", goodTable)
	writeFile(t, dir, "chapters/b.ltx", badTable)
	writeFile(t, dir, "notes.txt", badTable)
	writeFile(t, dir, "build/c.tex", badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, "--format", "json", "--ignore", "**/build/**", dir)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	paths := make([]string, 0, len(report.Files))
	for _, f := range report.Files {
		paths = append(paths, filepath.ToSlash(f.Path))
	}
	require.Len(t, paths, 2, "got %v", paths)
	assert.True(t, strings.HasSuffix(paths[0], "a.tex"))
	assert.True(t, strings.HasSuffix(paths[1], "chapters/b.ltx"))
}

func TestLint_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", badTable)
	out := filepath.Join(dir, "report.html")

	stdout, _, err := execute(t, "lint", "--config", cfg, "--format", "html", "-o", out, src)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
	assert.Contains(t, string(data), "table-caption")
}

func TestLint_SARIF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", badTable)

	stdout, _, err := execute(t, "lint", "--config", cfg, "--format", "sarif", src)
	require.NoError(t, err)

	var log reporter.SARIFLog
	require.NoError(t, json.Unmarshal([]byte(stdout), &log))
	require.Len(t, log.Runs, 1)
	assert.Equal(t, "test-version", log.Runs[0].Tool.Driver.Version)
	assert.NotEmpty(t, log.Runs[0].Results)
}

func TestLint_EmitJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	src := writeFile(t, dir, "paper.tex", goodTable)

	_, _, err := execute(t, "lint", "--config", cfg, "--emit-json", src)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "paper.json"))
	require.NoError(t, err)
}

func TestLint_ConvertedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)
	doc := `[
    {
        "type": "EnvironmentNode",
        "environmentname": "table",
        "args": [null],
        "children": [
            {
                "type": "GroupNode",
                "delimiters": "('{', '}')",
                "children": ["x"]
            }
        ]
    }
]`
	src := writeFile(t, dir, "paper.json", doc)

	stdout, _, err := execute(t, "lint", "--config", cfg, "--format", "json", src)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	assert.Empty(t, report.Files[0].Error)
	require.Len(t, report.Files[0].Tables, 1)
	assert.Equal(t, []string{msgPlacement, msgCentering, msgCaption}, report.Files[0].Tables[0].Warnings)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestLint_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := emptyConfig(t, dir)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "unknown format",
			args: []string{"lint", "--config", cfg, "--format", "xml", dir},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown rule format",
			args: []string{"lint", "--config", cfg, "--rule-format", "short", dir},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown sort",
			args: []string{"lint", "--config", cfg, "--sort", "size", dir},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "missing path",
			args: []string{"lint", "--config", cfg, filepath.Join(dir, "missing.tex")},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "missing config",
			args: []string{"lint", "--config", filepath.Join(dir, "nope.yml"), dir},
			want: cli.ExitConfigError,
		},
		{
			name: "parse failure",
			args: []string{"lint", "--config", cfg, writeFile(t, dir, "bad.tex", "\\begin{table}\n{unclosed\n")},
			want: cli.ExitLintIssues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withSeverity := func(sev string, n int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{DiagnosticsBySeverity: map[string]int{sev: n}}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil", result: nil, want: cli.ExitSuccess},
		{name: "clean", result: withSeverity(string(config.SeverityWarning), 0), want: cli.ExitSuccess},
		{name: "warnings", result: withSeverity(string(config.SeverityWarning), 2), want: cli.ExitSuccess},
		{name: "warnings strict", result: withSeverity(string(config.SeverityWarning), 2), strict: true, want: cli.ExitLintIssues},
		{name: "info strict", result: withSeverity(string(config.SeverityInfo), 2), strict: true, want: cli.ExitSuccess},
		{name: "errors", result: withSeverity(string(config.SeverityError), 1), want: cli.ExitLintIssues},
		{name: "failed file", result: &runner.Result{Stats: runner.Stats{FilesErrored: 1}}, want: cli.ExitLintIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}
