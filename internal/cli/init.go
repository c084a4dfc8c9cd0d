package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

const defaultConfigFile = ".gotexlint.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gotexlint configuration file",
		Long: `Create a new .gotexlint.yml configuration file in the current directory.
The file can be customized to enable or disable checks, change severities,
and set the paths to ignore.

Examples:
  gotexlint init                     Create minimal .gotexlint.yml
  gotexlint init --full              Document every check in the file
  gotexlint init --pack strict       Start from the strict pack
  gotexlint init --output tex.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate full template with all checks documented")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	if flags.full && flags.pack != "" {
		return fmt.Errorf("%w: --full and --pack are mutually exclusive", ErrUsage)
	}

	content, err := initContent(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", flags.output, err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", flags.output)
	return err
}

func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		return config.GenerateTemplate(config.TemplateOptions{Full: flags.full}), nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("%w: unknown pack %q; valid: %s",
			ErrUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.NewConfig()
	for key, rc := range pack.Rules {
		cfg.Rules[key] = rc
	}

	header := config.DefaultTemplateHeader() + "\n# Pack: " + pack.Name + " - " + pack.Description
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("render pack %s: %w", pack.Name, err)
	}
	return content, nil
}
