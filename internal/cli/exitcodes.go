package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

// Exit codes for gotexlint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintIssues indicates lint completed but found errors, strict-mode
	// warnings, or files that could not be processed.
	ExitLintIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound), errors.Is(err, lint.ErrParseFailure),
		errors.Is(err, lint.ErrConvertFailure):
		return ExitLintIssues
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage), errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() || result.Stats.FilesErrored > 0 {
		return ExitLintIssues
	}

	if strict && result.Stats.DiagnosticsBySeverity["warning"] > 0 {
		return ExitLintIssues
	}

	return ExitSuccess
}
