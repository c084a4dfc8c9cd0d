package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gotexlint/internal/cli"
	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// execute runs the root command with args and returns stdout, stderr and
// the command error. Color is always disabled.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name inside dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// emptyConfig writes an empty explicit config file so tests do not depend
// on configuration found around the working directory.
func emptyConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "gotexlint.yml", "rules: {}\n")
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "gotexlint" {
		t.Errorf("expected Use to be 'gotexlint', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
	if !strings.Contains(cmd.Long, "GOTEXLINT_JOBS") {
		t.Error("expected Long description to list environment variables")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"lint", "convert", "tree", "rules", "init", "serve", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"lint":    {"format", "rule-format", "output", "ignore", "enable", "disable", "detect", "emit-json", "strict", "compact", "jobs", "sort", "stats"},
		"convert": {"backup", "compact", "stdout", "diff", "jobs"},
		"tree":    {"tables"},
		"rules":   {"format", "rule-format"},
		"init":    {"force", "full", "pack", "output"},
		"serve":   {"addr", "log-format", "log-level", "max-body-bytes"},
		"version": {"short"},
	}

	for name, flags := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := cli.NewRootCommand(testInfo)
			sub, _, err := root.Find([]string{name})
			if err != nil {
				t.Fatalf("%s command not found: %v", name, err)
			}
			for _, flag := range flags {
				if sub.Flags().Lookup(flag) == nil {
					t.Errorf("expected %s flag --%s", name, flag)
				}
			}
		})
	}
}

func TestPersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, flag := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag --%s", flag)
		}
	}
}

func TestInvalidColorIsUsageError(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--color", "sometimes", "version"})

	err := cmd.Execute()
	if !errors.Is(err, cli.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("expected exit code %d, got %d", cli.ExitInvalidUsage, got)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	want := "gotexlint test-version\ncommit: test-commit\nbuilt:  test-date\n"
	if stdout != want {
		t.Errorf("unexpected version output:\n%s", stdout)
	}

	stdout, _, err = execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if stdout != "test-version\n" {
		t.Errorf("unexpected short version output %q", stdout)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "lint issues", err: cli.ErrLintIssuesFound, want: cli.ExitLintIssues},
		{name: "parse failure", err: fmt.Errorf("tree: %w", lint.ErrParseFailure), want: cli.ExitLintIssues},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "missing path", err: fmt.Errorf("stat x: %w", fs.ErrNotExist), want: cli.ExitInvalidUsage},
		{name: "missing file", err: fmt.Errorf("%w: x.tex", fsutil.ErrNotFound), want: cli.ExitInvalidUsage},
		{name: "directory", err: fmt.Errorf("%w: dir", fsutil.ErrIsDirectory), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: bad yaml", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "missing config", err: fmt.Errorf("%w: %w", cli.ErrConfig, fs.ErrNotExist), want: cli.ExitConfigError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "lint", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"Usage:", "gotexlint lint [paths...]", "--rule-format", "Global Flags:"} {
		if !bytes.Contains([]byte(stdout), []byte(want)) {
			t.Errorf("help output missing %q:\n%s", want, stdout)
		}
	}
}
