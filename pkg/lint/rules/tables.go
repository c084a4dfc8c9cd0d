package rules

import (
	"strings"

	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// Table check messages.
const (
	MessageTableEnvironment = "Table environment not detected."
	MessageTablePlacement   = "Table does not have a [H] positioning directive."
	MessageTableCentering   = `Table is not centered using \begin{center} and \end{center}.`
	MessageTableCaption     = `Table does not have a caption using \caption.`
)

var tableTags = []string{"tables"}

// TableEnvironmentCheck gates the table checks: the root must be a group
// delimited by \begin{table} and \end{table}.
type TableEnvironmentCheck struct {
	lint.BaseCheck
}

// NewTableEnvironmentCheck creates the gate check.
func NewTableEnvironmentCheck() *TableEnvironmentCheck {
	return &TableEnvironmentCheck{
		BaseCheck: lint.NewGateCheck(
			"TEX001",
			"table-environment",
			"The linted node must be a table environment",
			MessageTableEnvironment,
			tableTags,
		),
	}
}

// Pass reports whether root is a table-like group.
func (c *TableEnvironmentCheck) Pass(root texast.Node) bool {
	group, ok := root.(*texast.Group)
	return ok && group != nil && group.Delimiters == texast.EnvironmentDelimiters(texast.TableEnvironment)
}

// TablePlacementCheck requires the [H] placement specifier in the table's
// first argument.
type TablePlacementCheck struct {
	lint.BaseCheck
}

// NewTablePlacementCheck creates the placement check.
func NewTablePlacementCheck() *TablePlacementCheck {
	return &TablePlacementCheck{
		BaseCheck: lint.NewBaseCheck(
			"TEX002",
			"table-placement",
			"Tables should be placed here with the [H] specifier",
			MessageTablePlacement,
			tableTags,
		),
	}
}

// Pass reports whether the first argument is text containing [H]. A missing
// or non-textual argument fails.
func (c *TablePlacementCheck) Pass(root texast.Node) bool {
	args := texast.Args(root)
	if len(args) == 0 {
		return false
	}
	chars, ok := args[0].(*texast.Chars)
	return ok && chars != nil && strings.Contains(chars.Text, texast.PlacementHere)
}

// TableCenteringCheck requires a center block among the table's direct
// children.
type TableCenteringCheck struct {
	lint.BaseCheck
}

// NewTableCenteringCheck creates the centering check.
func NewTableCenteringCheck() *TableCenteringCheck {
	return &TableCenteringCheck{
		BaseCheck: lint.NewBaseCheck(
			"TEX003",
			"table-centering",
			`Tables should be centered with \begin{center} and \end{center}`,
			MessageTableCentering,
			tableTags,
		),
	}
}

// Pass reports whether a direct child is a center group. Nested groups are
// not searched.
func (c *TableCenteringCheck) Pass(root texast.Node) bool {
	center := texast.EnvironmentDelimiters(texast.CenterEnvironment)
	for _, child := range texast.Children(root) {
		if group, ok := child.(*texast.Group); ok && group != nil && group.Delimiters == center {
			return true
		}
	}
	return false
}

// TableCaptionCheck requires a \caption among the table's direct children.
type TableCaptionCheck struct {
	lint.BaseCheck
}

// NewTableCaptionCheck creates the caption check.
func NewTableCaptionCheck() *TableCaptionCheck {
	return &TableCaptionCheck{
		BaseCheck: lint.NewBaseCheck(
			"TEX004",
			"table-caption",
			`Tables should have a caption set with \caption`,
			MessageTableCaption,
			tableTags,
		),
	}
}

// Pass reports whether a direct child is a caption macro.
func (c *TableCaptionCheck) Pass(root texast.Node) bool {
	for _, child := range texast.Children(root) {
		if macro, ok := child.(*texast.Macro); ok && macro != nil && macro.Name == texast.CaptionMacro {
			return true
		}
	}
	return false
}
