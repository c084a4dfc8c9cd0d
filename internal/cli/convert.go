package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/runner"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

type convertFlags struct {
	backup  bool
	compact bool
	stdout  bool
	diff    bool
	jobs    int
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <paths...>",
		Short: "Write the JSON document tree of LaTeX files",
		Long: `Convert LaTeX files into their JSON document tree.

For each source the tree is written next to it with a .json extension,
replacing the source extension (paper.tex becomes paper.json). Documents
that would not change are left untouched.

Examples:
  gotexlint convert paper.tex         # Write paper.json
  gotexlint convert chapters/         # Convert every source in a directory
  gotexlint convert --backup doc.tex  # Keep doc.json.gotexlint.bak first
  gotexlint convert --stdout doc.tex  # Print the tree instead of writing it
  gotexlint convert --diff doc.tex    # Show how doc.json would change`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up an existing document before replacing it")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write documents without indentation")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print documents to stdout instead of writing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show how each document would change without writing it")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	logger := logging.Default()

	if flags.stdout && flags.diff {
		return fmt.Errorf("%w: --stdout and --diff are mutually exclusive", ErrUsage)
	}

	cfg, workDir, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	pipelineOpts := lint.DefaultPipelineOptions()
	pipelineOpts.EmitJSON = !flags.stdout
	pipelineOpts.Indent = !flags.compact
	pipelineOpts.Backup = fsutil.BackupConfig{Enabled: flags.backup, Mode: fsutil.BackupModeSidecar}
	pipelineOpts.DryRun = flags.diff

	jobs := cfg.Jobs
	if flags.jobs != 0 {
		jobs = flags.jobs
	}

	result, err := runner.New(lint.NewPipelineFromConfig(lint.DefaultRegistry, cfg)).Run(cmd.Context(), runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         jobs,
		Config:       cfg,
		Pipeline:     &pipelineOpts,
	})
	if err != nil {
		return errors.Join(errors.New("convert run failed"), err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	for _, file := range result.Files {
		if err := reportConversion(out, styles, workDir, file, flags); err != nil {
			return err
		}
	}

	if !flags.stdout && !flags.diff {
		fmt.Fprint(out, styles.FormatConvertSummary(result.Stats))
	}

	logger.Debug("convert finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	if result.Stats.FilesErrored > 0 {
		return ErrLintIssuesFound
	}
	return nil
}

func reportConversion(out io.Writer, styles *pretty.Styles, workDir string, file runner.FileOutcome, flags *convertFlags) error {
	display := relativeTo(workDir, file.Path)

	switch {
	case file.Error != nil:
		fmt.Fprintf(out, "%s %s: %v\n", styles.Failure.Render("failed"), styles.FilePath.Render(display), file.Error)
	case file.Result == nil:
	case flags.stdout:
		if err := texast.Encode(out, file.Result.Tree, !flags.compact); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
	case flags.diff && file.Result.Diff != nil:
		fmt.Fprint(out, styles.FormatDiff(file.Result.Diff))
	case file.Result.Skipped:
		fmt.Fprintf(out, "%s %s: %s\n", styles.Warning.Render("skipped"), styles.FilePath.Render(display), file.Result.SkipReason)
	case file.Result.Written:
		fmt.Fprintf(out, "%s %s from %s\n", styles.Success.Render("wrote"),
			styles.FilePath.Render(relativeTo(workDir, file.Result.JSONPath)), styles.FilePath.Render(display))
	default:
		fmt.Fprintf(out, "%s %s\n", styles.Dim.Render("unchanged"), styles.FilePath.Render(relativeTo(workDir, file.Result.JSONPath)))
	}
	return nil
}

func relativeTo(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
