// Command gotexlint lints the tables of LaTeX documents and converts the
// documents to a canonical JSON tree.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/yaklabco/gotexlint/internal/cli"
	"github.com/yaklabco/gotexlint/internal/logging"
	_ "github.com/yaklabco/gotexlint/pkg/lint/rules"
)

// Set with -ldflags -X at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := root.ExecuteContext(ctx)

	// Issues found are already in the report; only the exit code says so.
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
