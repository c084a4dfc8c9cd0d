// Package cli wires the gotexlint commands together with cobra.
package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/configloader"
	"github.com/yaklabco/gotexlint/internal/logging"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var colorModes = []string{"auto", "always", "never"}

type rootFlags struct {
	debug  bool
	config string
	color  string
}

const rootLongDescription = `gotexlint parses LaTeX sources into a canonical document tree and checks
every table environment for placement, centering, and a caption.

The tree can be printed, written next to each source as JSON, or served
over HTTP together with the table checks.`

// environmentHelp lists the configuration overrides read from the
// environment.
func environmentHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-26s %s\n", v.Name, v.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewRootCommand builds the gotexlint command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "gotexlint",
		Short:         "A LaTeX table linter and document tree converter",
		Long:          rootLongDescription + environmentHelp(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return flags.apply()
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.config, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newLintCommand(info),
		newConvertCommand(),
		newTreeCommand(),
		newRulesCommand(),
		newInitCommand(),
		newServeCommand(info),
		newVersionCommand(info),
	)

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(root)
	return root
}

func (f *rootFlags) apply() error {
	if !slices.Contains(colorModes, f.color) {
		return fmt.Errorf("%w: invalid --color %q; valid: auto, always, never", ErrUsage, f.color)
	}
	if f.debug {
		logging.SetLevel("debug")
	}
	return nil
}
