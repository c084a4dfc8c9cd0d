package texast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexlint/pkg/latex"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

func convertSource(t *testing.T, src string) []texast.Node {
	t.Helper()

	nodes, err := latex.Parse("doc.tex", []byte(src))
	require.NoError(t, err)
	tree, err := texast.ConvertRoot(nodes)
	require.NoError(t, err)
	return tree
}

func TestTables_View(t *testing.T) {
	t.Parallel()

	tree := convertSource(t, strings.Join([]string{
		`\begin{table}[H]`,
		`\begin{center}`,
		`\begin{tabular}{ll}`,
		`a & b \\`,
		`\end{tabular}`,
		`\end{center}`,
		`\caption{A table.}`,
		`\end{table}`,
	}, "\n"))

	tables := texast.Tables(tree)
	require.Len(t, tables, 1)

	view := tables[0]
	assert.Equal(t, texast.EnvironmentDelimiters("table"), view.Delimiters)
	assert.Equal(t, `\begin{table}`, view.Delimiters.Open)
	assert.Equal(t, `\end{table}`, view.Delimiters.Close)
	require.Len(t, view.Args, 1)
	assert.Equal(t, &texast.Chars{Text: "[H]"}, view.Args[0])

	var center *texast.Group
	var caption *texast.Macro
	for _, child := range view.Children {
		switch n := child.(type) {
		case *texast.Group:
			center = n
		case *texast.Macro:
			caption = n
		}
	}
	require.NotNil(t, center)
	assert.Equal(t, texast.EnvironmentDelimiters("center"), center.Delimiters)
	require.NotNil(t, caption)
	assert.Equal(t, "caption", caption.Name)
}

func TestTables_OmittedPlacement(t *testing.T) {
	t.Parallel()

	tree := convertSource(t, "\\begin{table}\n\\caption{x}\n\\end{table}\n")

	tables := texast.Tables(tree)
	require.Len(t, tables, 1)
	assert.NotNil(t, tables[0].Args)
	assert.Empty(t, tables[0].Args)
}

func TestTables_DocumentOrderAndNesting(t *testing.T) {
	t.Parallel()

	tree := convertSource(t, strings.Join([]string{
		`\begin{document}`,
		`\begin{table}[t]\end{table}`,
		`\begin{figure}\begin{table}[h!]\end{table}\end{figure}`,
		`\end{document}`,
	}, "\n"))

	tables := texast.Tables(tree)
	require.Len(t, tables, 2)
	assert.Equal(t, &texast.Chars{Text: "[t]"}, tables[0].Args[0])
	assert.Equal(t, &texast.Chars{Text: "[h!]"}, tables[1].Args[0])
}

func TestTableView_KeepsTextualPlacement(t *testing.T) {
	t.Parallel()

	env := &texast.Environment{
		Name:     "table",
		Args:     []texast.Node{&texast.Chars{Text: "[H]"}},
		Children: []texast.Node{},
	}
	view := texast.TableView(env)
	assert.Equal(t, []texast.Node{&texast.Chars{Text: "[H]"}}, view.Args)
}
