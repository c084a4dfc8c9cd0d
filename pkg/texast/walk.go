package texast

import (
	"fmt"
	"io"
	"strings"
)

// WalkFunc is called for every present node. Returning false skips the
// node's arguments and children.
type WalkFunc func(node Node, depth int) bool

type walkItem struct {
	node  Node
	depth int
}

// Walk visits the tree in pre-order: each node, then its arguments, then
// its children. Absent nodes are not visited.
func Walk(tree []Node, fn WalkFunc) {
	stack := make([]walkItem, 0, len(tree))
	for i := len(tree) - 1; i >= 0; i-- {
		stack = append(stack, walkItem{node: tree[i]})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.node == nil {
			continue
		}
		if !fn(item.node, item.depth) {
			continue
		}

		children := Children(item.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkItem{node: children[i], depth: item.depth + 1})
		}
		args := Args(item.node)
		for i := len(args) - 1; i >= 0; i-- {
			stack = append(stack, walkItem{node: args[i], depth: item.depth + 1})
		}
	}
}

// Dump writes an outline of the tree, one node per line, indented with
// "--" per level.
func Dump(w io.Writer, tree []Node) error {
	var err error
	Walk(tree, func(node Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("--", depth), OutlineLabel(node))
		return true
	})
	return err
}

// OutlineLabel returns the one-line label Dump prints for node.
func OutlineLabel(node Node) string {
	switch n := node.(type) {
	case *Macro:
		return n.Name
	case *Group:
		return n.Delimiters.Open + " " + n.Delimiters.Close
	case *Chars:
		return n.Text
	case *Comment:
		return "%" + n.Text
	case *Environment:
		return `\begin{` + n.Name + `}`
	case *Specials:
		return n.Chars
	case *Math:
		return "$"
	case *Unknown:
		return UnknownTypePrefix + n.Label
	default:
		return fmt.Sprintf("%T", node)
	}
}
