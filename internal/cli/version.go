package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of gotexlint.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				_, err := fmt.Fprintln(out, info.Version)
				return err
			}
			_, err := fmt.Fprintf(out, "gotexlint %s\ncommit: %s\nbuilt:  %s\n",
				info.Version, info.Commit, info.Date)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
