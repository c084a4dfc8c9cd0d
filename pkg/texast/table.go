package texast

import "strings"

// Markers the table checks look for.
const (
	TableEnvironment  = "table"
	CenterEnvironment = "center"
	CaptionMacro      = "caption"
	PlacementHere     = "[H]"
)

// EnvironmentDelimiters returns the begin/end marker pair of a named
// environment.
func EnvironmentDelimiters(name string) Delimiters {
	return Delimiters{Open: `\begin{` + name + `}`, Close: `\end{` + name + `}`}
}

// TableView re-expresses a table environment as a table-like group. Its
// placement argument becomes a single Chars value including the brackets
// and each direct child environment becomes a group with begin/end
// delimiters. An omitted placement yields no arguments.
func TableView(env *Environment) *Group {
	view := &Group{
		Delimiters: EnvironmentDelimiters(env.Name),
		Args:       []Node{},
		Children:   make([]Node, 0, len(env.Children)),
	}

	if len(env.Args) > 0 {
		if placement := placementChars(env.Args[0]); placement != nil {
			view.Args = append(view.Args, placement)
		}
	}

	for _, child := range env.Children {
		if inner, ok := child.(*Environment); ok {
			child = &Group{
				Delimiters: EnvironmentDelimiters(inner.Name),
				Args:       inner.Args,
				Children:   inner.Children,
			}
		}
		view.Children = append(view.Children, child)
	}
	return view
}

// Tables returns a view of every table environment in the tree, in
// document order. Tables nested in other tables are included.
func Tables(tree []Node) []*Group {
	var views []*Group
	Walk(tree, func(node Node, _ int) bool {
		if env, ok := node.(*Environment); ok && env.Name == TableEnvironment {
			views = append(views, TableView(env))
		}
		return true
	})
	return views
}

func placementChars(arg Node) Node {
	switch n := arg.(type) {
	case *Chars:
		return n
	case *Group:
		var text strings.Builder
		text.WriteString(n.Delimiters.Open)
		for _, child := range n.Children {
			if chars, ok := child.(*Chars); ok {
				text.WriteString(chars.Text)
			}
		}
		text.WriteString(n.Delimiters.Close)
		return &Chars{Text: text.String()}
	default:
		return nil
	}
}
