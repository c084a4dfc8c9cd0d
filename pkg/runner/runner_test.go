package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
	_ "github.com/yaklabco/gotexlint/pkg/lint/rules"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

const goodTable = `\begin{table}[H]
\begin{center}
\begin{tabular}{l}
x \\
\end{tabular}
\end{center}
\caption{Fine.}
\end{table}
`

const bareTable = `\begin{table}
\begin{tabular}{l}
x \\
\end{tabular}
\end{table}
`

func newRunner() *runner.Runner {
	return runner.New(lint.NewPipelineFromConfig(lint.DefaultRegistry, config.NewConfig()))
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipelineFromConfig(lint.DefaultRegistry, nil)
	lintRunner := runner.New(pipeline)

	if lintRunner.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.Stats.FilesDiscovered != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.HasIssues() || result.HasFailures() {
		t.Error("empty run should have no issues")
	}
}

func TestRunner_Run_Stats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"a.tex":      goodTable,
		"b.tex":      bareTable + "\n" + goodTable,
		"c.tex":      "no tables",
		"broken.tex": "{unclosed",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesDiscovered != 4 {
		t.Errorf("FilesDiscovered = %d, want 4", stats.FilesDiscovered)
	}
	if stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", stats.FilesProcessed)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", stats.FilesErrored)
	}
	if stats.TablesTotal != 3 {
		t.Errorf("TablesTotal = %d, want 3", stats.TablesTotal)
	}
	if stats.DiagnosticsTotal != 3 {
		t.Errorf("DiagnosticsTotal = %d, want 3", stats.DiagnosticsTotal)
	}
	if stats.FilesWithIssues != 1 {
		t.Errorf("FilesWithIssues = %d, want 1", stats.FilesWithIssues)
	}
	if stats.DiagnosticsBySeverity["warning"] != 3 {
		t.Errorf("warnings = %d, want 3", stats.DiagnosticsBySeverity["warning"])
	}
	if stats.FilesWritten != 0 {
		t.Errorf("FilesWritten = %d, want 0", stats.FilesWritten)
	}
	if !result.HasIssues() {
		t.Error("expected HasIssues")
	}
	if result.HasFailures() {
		t.Error("warnings alone are not failures")
	}

	// Outcomes follow sorted path order.
	wantOrder := []string{"a.tex", "b.tex", "broken.tex", "c.tex"}
	for i, outcome := range result.Files {
		if filepath.Base(outcome.Path) != wantOrder[i] {
			t.Errorf("Files[%d] = %s, want %s", i, filepath.Base(outcome.Path), wantOrder[i])
		}
	}

	broken := result.Files[2]
	if !errors.Is(broken.Error, lint.ErrParseFailure) {
		t.Errorf("broken.tex error = %v, want ErrParseFailure", broken.Error)
	}
	if broken.Result != nil {
		t.Error("errored outcome should have no result")
	}
}

func TestRunner_Run_EmitJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"one.tex": goodTable,
		"two.tex": bareTable,
	})

	cfg := config.NewConfig()
	cfg.EmitJSON = true

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesWritten != 2 {
		t.Errorf("FilesWritten = %d, want 2", result.Stats.FilesWritten)
	}
	for _, name := range []string{"one.json", "two.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	// JSON documents are not LaTeX sources and are not rediscovered.
	again, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if again.Stats.FilesDiscovered != 2 {
		t.Errorf("FilesDiscovered = %d, want 2", again.Stats.FilesDiscovered)
	}
	if again.Stats.FilesWritten != 0 {
		t.Errorf("unchanged documents rewritten: %d", again.Stats.FilesWritten)
	}
}

func TestRunner_Run_PipelineOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"one.tex": goodTable})

	opts := lint.DefaultPipelineOptions()
	opts.EmitJSON = true

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Pipeline:   &opts,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesWritten != 1 {
		t.Errorf("FilesWritten = %d, want 1", result.Stats.FilesWritten)
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.tex": goodTable})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	if result.HasIssues() || result.HasFailures() {
		t.Error("nil result should report nothing")
	}
}
