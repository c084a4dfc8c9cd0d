package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/fsutil"
	"github.com/yaklabco/gotexlint/pkg/latex"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

type treeFlags struct {
	tables bool
}

func newTreeCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the document tree of a LaTeX file",
		Long: `Print an outline of the document tree, one node per line, indented
with "--" per nesting level. Use "-" to read from stdin.

Examples:
  gotexlint tree paper.tex
  gotexlint tree --tables paper.tex   # Only the table views that lint checks
  cat paper.tex | gotexlint tree -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.tables, "tables", false, "print only the table views")

	return cmd
}

func runTree(cmd *cobra.Command, path string, flags *treeFlags) error {
	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	content, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	nodes, err := latex.New(latex.WithMaxDepth(cfg.MaxDepth)).Parse(cmd.Context(), path, content)
	if err != nil {
		return fmt.Errorf("%w: %w", lint.ErrParseFailure, err)
	}

	tree, err := texast.ConvertRoot(nodes)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", lint.ErrConvertFailure, path, err)
	}

	if flags.tables {
		views := texast.Tables(tree)
		tree = make([]texast.Node, len(views))
		for i, view := range views {
			tree[i] = view
		}
	}

	out := cmd.OutOrStdout()
	if !pretty.IsColorEnabled(colorMode(cmd), out) {
		return texast.Dump(out, tree)
	}
	return writeStyledTree(out, pretty.NewStyles(true), tree)
}

func writeStyledTree(out io.Writer, styles *pretty.Styles, tree []texast.Node) error {
	var err error
	texast.Walk(tree, func(node texast.Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = io.WriteString(out, styles.FormatTreeLine(depth, node))
		return true
	})
	if err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, _, err := fsutil.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return content, nil
}
