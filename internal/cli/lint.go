package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/configloader"
	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/pkg/analysis"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/reporter"
	"github.com/yaklabco/gotexlint/pkg/runner"
)

type lintFlags struct {
	format     string
	ruleFormat string
	sortBy     string
	output     string
	ignore     []string
	enable     []string
	disable    []string
	detect     bool
	emitJSON   bool
	strict     bool
	compact    bool
	stats      bool
	jobs       int
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check tables in LaTeX files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check every table environment in LaTeX files.

Each table is expected to use the [H] placement specifier, to be centered
with a center environment, and to carry a caption. Directories are searched
recursively for .tex and .ltx files.

Examples:
  gotexlint lint                     # Lint the current directory
  gotexlint lint thesis/             # Lint a directory
  gotexlint lint paper.tex           # Lint a single file
  gotexlint lint --format json       # Output as JSON for CI
  gotexlint lint --format html -o report.html
  gotexlint lint --format sarif -o gotexlint.sarif
  gotexlint lint --disable table-placement
  gotexlint lint --strict            # Fail on warnings too
  gotexlint lint --format markdown --sort alpha`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()
	start := time.Now()

	cliCfg := &config.Config{
		Jobs:         flags.jobs,
		Ignore:       flags.ignore,
		EnableRules:  flags.enable,
		DisableRules: flags.disable,
		EmitJSON:     flags.emitJSON,
	}

	// Only explicit flags override the environment and config files.
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = config.OutputFormat(format)
	}
	if cmd.Flags().Changed("rule-format") {
		cliCfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
		if !configloader.IsValidRuleFormat(cliCfg.RuleFormat) {
			return fmt.Errorf("%w: unknown rule format %q; valid: name, id, combined", ErrUsage, flags.ruleFormat)
		}
	}

	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxDepth, cfg.MaxDepth,
		logging.FieldEmitJSON, cfg.EmitJSON,
	)

	pipeline := lint.NewPipelineFromConfig(lint.DefaultRegistry, cfg)
	runOpts := runner.Options{
		Paths:         args,
		WorkingDir:    workDir,
		Extensions:    cfg.Extensions,
		DetectContent: flags.detect,
		ExcludeGlobs:  cfg.Ignore,
		Jobs:          cfg.Jobs,
		Config:        cfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline).Run(cmd.Context(), runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldTables, result.Stats.TablesTotal,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, time.Since(start),
	)

	out, closeOut, err := outputWriter(cmd.OutOrStdout(), flags.output)
	if err != nil {
		return err
	}
	if flags.output != "" && flags.output != "-" {
		logger.Debug("writing report", logging.FieldOutput, flags.output)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          reporter.Format(cfg.Format),
		Color:           colorMode(cmd),
		ShowSummary:     true,
		DetailedSummary: flags.stats,
		GroupByFile:     true,
		Compact:         flags.compact,
		RuleFormat:      cfg.RuleFormat,
		WorkingDir:      workDir,
		SortBy:          sortBy,
		ToolVersion:     info.Version,
	})
	if err != nil {
		return errors.Join(fmt.Errorf("create reporter: %w", err), closeOut())
	}

	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return errors.Join(fmt.Errorf("report results: %w", err), closeOut())
	}
	if err := closeOut(); err != nil {
		return err
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

// outputWriter returns the report destination: stdout, or the file named
// by path.
func outputWriter(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return file, func() error {
		if err := file.Close(); err != nil {
			return fmt.Errorf("close report file: %w", err)
		}
		return nil
	}, nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	formats := make([]string, 0, len(reporter.Formats()))
	for _, f := range reporter.Formats() {
		formats = append(formats, f.String())
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "also lint files without a LaTeX extension whose content looks like TeX")
	cmd.Flags().BoolVar(&flags.emitJSON, "emit-json", false, "write <name>.json with the document tree next to each source")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "end text output with a detailed summary block")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"per-rule order in json, markdown and html reports: count, alpha, or severity")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}
