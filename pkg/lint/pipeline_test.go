package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/latex"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

const sampleDocument = `\documentclass{article}
\begin{document}
\begin{table}[H]
\begin{center}
\begin{tabular}{ll}
a & b \\
\end{tabular}
\end{center}
\caption{Good.}
\end{table}

\begin{table}
\begin{tabular}{l}
x \\
\end{tabular}
\end{table}
\end{document}
`

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newPipeline() *lint.Pipeline {
	return lint.NewPipelineFromConfig(lint.DefaultRegistry, config.NewConfig())
}

func TestPipeline_ProcessFile_LintOnly(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "paper.tex", sampleDocument)

	result, err := newPipeline().ProcessFile(context.Background(), path, lint.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	require.NotNil(t, result.OriginalInfo)
	assert.Equal(t, 2, result.Tables)
	require.Len(t, result.TablePositions, 2)
	assert.Equal(t, 3, result.TablePositions[0].Line)
	assert.Equal(t, 12, result.TablePositions[1].Line)
	assert.Equal(t, [][]string{
		{},
		{msgPlacement, msgCentering, msgCaption},
	}, result.TableWarnings())

	for _, d := range result.Diagnostics {
		assert.Equal(t, path, d.FilePath)
		assert.Equal(t, 2, d.Table)
		assert.Equal(t, 12, d.Line)
		assert.Equal(t, 1, d.Column)
	}

	assert.False(t, result.Written)
	assert.Empty(t, result.JSONPath)
	assert.Equal(t, "issues found", result.Summary())
	_, err = os.Stat(lint.JSONPath(path))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPipeline_ProcessFile_EmitJSON(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "clean.tex", "\\begin{table}[H]\\begin{center}\\end{center}\\caption{x}\\end{table}\n")
	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true

	pipeline := newPipeline()
	result, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.Equal(t, strings.TrimSuffix(path, ".tex")+".json", result.JSONPath)
	assert.Equal(t, "ok (document written)", result.Summary())

	data, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	decoded, err := texast.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, result.Tree, decoded)

	again, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, again.Written, "unchanged document is not rewritten")
	assert.Equal(t, "ok", again.Summary())
}

func TestPipeline_ProcessFile_BacksUpPreviousDocument(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "doc.tex", "text\n")
	jsonPath := lint.JSONPath(path)
	require.NoError(t, os.WriteFile(jsonPath, []byte("[]\n"), 0o644))

	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, result.BackupCreated)
	assert.True(t, result.Written)

	backup, err := os.ReadFile(fsutil.BackupPath(jsonPath, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(backup))
}

func TestPipeline_ProcessFile_NoBackupForUnchangedDocument(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "doc.tex", "text\n")
	jsonPath := lint.JSONPath(path)

	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true
	pipeline := newPipeline()

	first, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, first.Written)

	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	again, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, again.Written)
	assert.False(t, again.BackupCreated)
	assert.Equal(t, jsonPath, again.JSONPath)

	_, err = os.Stat(fsutil.BackupPath(jsonPath, fsutil.BackupModeSidecar))
	assert.True(t, errors.Is(err, os.ErrNotExist), "unchanged document is not backed up")
}

func TestPipeline_ProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "doc.tex", "text\n")
	jsonPath := lint.JSONPath(path)

	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true
	opts.DryRun = true

	pipeline := newPipeline()
	result, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Diff)
	assert.Positive(t, result.Diff.Additions)
	assert.Zero(t, result.Diff.Deletions)
	assert.False(t, result.Written)
	assert.Equal(t, jsonPath, result.JSONPath)
	assert.Equal(t, "ok (document would change)", result.Summary())
	_, err = os.Stat(jsonPath)
	assert.True(t, errors.Is(err, os.ErrNotExist), "dry run writes nothing")

	opts.DryRun = false
	_, err = pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	opts.DryRun = true
	again, err := pipeline.ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.Nil(t, again.Diff, "an up to date document has no diff")
}

func TestPipeline_ProcessFile_Errors(t *testing.T) {
	t.Parallel()

	pipeline := newPipeline()
	ctx := context.Background()

	_, err := pipeline.ProcessFile(ctx, filepath.Join(t.TempDir(), "missing.tex"), lint.DefaultPipelineOptions())
	require.ErrorIs(t, err, lint.ErrFileNotFound)
	assert.True(t, lint.IsPipelineError(err))

	bad := writeSource(t, "bad.tex", "\\begin{table}\n{unclosed\n")
	_, err = pipeline.ProcessFile(ctx, bad, lint.DefaultPipelineOptions())
	require.ErrorIs(t, err, lint.ErrParseFailure)

	var parseErr *latex.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Positive(t, parseErr.Pos.Line)
}

func TestPipeline_ProcessFile_ConvertedDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata", "legacy.json")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true

	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	require.NotNil(t, result.OriginalInfo)
	assert.Equal(t, 2, result.Tables)
	assert.Equal(t, [][]string{
		{},
		{msgPlacement, msgCentering, msgCaption},
	}, result.TableWarnings())
	for _, d := range result.Diagnostics {
		assert.Equal(t, path, d.FilePath)
		assert.Zero(t, d.Line)
	}

	assert.False(t, result.Written)
	assert.True(t, result.Skipped)
	assert.Empty(t, result.JSONPath)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "converted documents are never rewritten")
}

func TestPipeline_ProcessDocument_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newPipeline().ProcessDocument(context.Background(), "bad.json", []byte(`[{"type":"GroupNode","delimiters":"{"}]`))
	require.ErrorIs(t, err, lint.ErrParseFailure)
	require.ErrorIs(t, err, texast.ErrMalformedDocument)
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	result, err := newPipeline().ProcessContent(context.Background(), "inline.tex", []byte("no tables here"))
	require.NoError(t, err)
	assert.Zero(t, result.Tables)
	assert.False(t, result.HasIssues())
	assert.Empty(t, result.TableWarnings())
	assert.Len(t, result.Tree, 1)
}

func TestPipeline_ProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline().ProcessContent(ctx, "x.tex", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_MaxDepthFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.MaxDepth = 3
	pipeline := lint.NewPipelineFromConfig(lint.DefaultRegistry, cfg)

	_, err := pipeline.ProcessContent(context.Background(), "deep.tex", []byte("{{{{x}}}}"))
	require.ErrorIs(t, err, lint.ErrParseFailure)
	require.ErrorIs(t, err, latex.ErrTooDeep)
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dir/paper.json", lint.JSONPath("dir/paper.tex"))
	assert.Equal(t, "noext.json", lint.JSONPath("noext"))
}
