package texast

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gotexlint/pkg/latex"
)

// ErrMissingArguments is returned when a macro or environment syntax node
// arrives without an argument descriptor. This is a contract violation by
// the parser; no sensible canonical shape exists for it.
var ErrMissingArguments = errors.New("missing argument descriptor")

// frame is one pending composite node on the conversion work-list. Its
// inputs are the argument slots followed by the children; outputs are
// appended in the same order as they are converted.
type frame struct {
	src     latex.Node
	pending []latex.Node
	nargs   int
	out     []Node
}

// ConvertRoot converts the top-level node list of a document.
func ConvertRoot(nodes []latex.Node) ([]Node, error) {
	tree := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		converted, err := Convert(node)
		if err != nil {
			return nil, err
		}
		tree = append(tree, converted)
	}
	return tree, nil
}

// Convert converts one syntax node and everything beneath it. A nil input
// yields a nil Node and no error. Unrecognized node types become *Unknown.
//
// The traversal uses an explicit work-list, so input depth is bounded by
// memory rather than by the goroutine stack.
func Convert(node latex.Node) (Node, error) {
	if absent(node) {
		return nil, nil
	}
	if leaf, ok := convertLeaf(node); ok {
		return leaf, nil
	}

	root, err := newFrame(node)
	if err != nil {
		return nil, err
	}
	stack := []*frame{root}

	for {
		top := stack[len(stack)-1]

		if len(top.out) < len(top.pending) {
			child := top.pending[len(top.out)]
			if absent(child) {
				top.out = append(top.out, nil)
				continue
			}
			if leaf, ok := convertLeaf(child); ok {
				top.out = append(top.out, leaf)
				continue
			}
			next, err := newFrame(child)
			if err != nil {
				return nil, err
			}
			stack = append(stack, next)
			continue
		}

		built := top.build()
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return built, nil
		}
		parent := stack[len(stack)-1]
		parent.out = append(parent.out, built)
	}
}

// convertLeaf converts nodes that have no nested syntax nodes. The second
// result is false for composite kinds.
func convertLeaf(node latex.Node) (Node, bool) {
	switch n := node.(type) {
	case *latex.CharsNode:
		return &Chars{Text: Escape(n.Chars)}, true
	case *latex.CommentNode:
		return &Comment{Text: n.Comment}, true
	case *latex.MacroNode, *latex.GroupNode, *latex.EnvironmentNode,
		*latex.SpecialsNode, *latex.MathNode:
		return nil, false
	default:
		return &Unknown{Label: fmt.Sprintf("%T", node)}, true
	}
}

func newFrame(node latex.Node) (*frame, error) {
	f := &frame{src: node}

	switch n := node.(type) {
	case *latex.MacroNode:
		if n.Args == nil {
			return nil, missingArguments("macro \\"+n.Name, n.Position)
		}
		f.pending = n.Args.Nodes
		f.nargs = len(n.Args.Nodes)
	case *latex.GroupNode:
		f.pending = n.Nodes
	case *latex.EnvironmentNode:
		if n.Args == nil {
			return nil, missingArguments("environment "+n.Name, n.Position)
		}
		f.pending = make([]latex.Node, 0, len(n.Args.Nodes)+len(n.Nodes))
		f.pending = append(f.pending, n.Args.Nodes...)
		f.pending = append(f.pending, n.Nodes...)
		f.nargs = len(n.Args.Nodes)
	case *latex.SpecialsNode:
		if n.Args != nil {
			f.pending = n.Args.Nodes
			f.nargs = len(n.Args.Nodes)
		}
	case *latex.MathNode:
		f.pending = n.Nodes
	default:
		return nil, fmt.Errorf("no frame for %T", node)
	}

	f.out = make([]Node, 0, len(f.pending))
	return f, nil
}

// build assembles the canonical node once every input has been converted.
func (f *frame) build() Node {
	args := f.out[:f.nargs:f.nargs]
	children := f.out[f.nargs:]

	switch n := f.src.(type) {
	case *latex.MacroNode:
		return &Macro{Name: n.Name, Args: args}
	case *latex.GroupNode:
		return &Group{
			Delimiters: Delimiters{Open: n.Delimiters[0], Close: n.Delimiters[1]},
			Children:   children,
		}
	case *latex.EnvironmentNode:
		return &Environment{Name: n.Name, Args: args, Children: children}
	case *latex.SpecialsNode:
		return &Specials{Chars: n.Chars, Args: args}
	case *latex.MathNode:
		return &Math{Children: children}
	default:
		return &Unknown{Label: fmt.Sprintf("%T", f.src)}
	}
}

func missingArguments(what string, pos latex.Position) error {
	return fmt.Errorf("%w: %s at %s", ErrMissingArguments, what, pos)
}

// absent reports whether node is nil, including typed nil pointers of the
// known syntax node types.
func absent(node latex.Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *latex.MacroNode:
		return n == nil
	case *latex.GroupNode:
		return n == nil
	case *latex.CharsNode:
		return n == nil
	case *latex.CommentNode:
		return n == nil
	case *latex.EnvironmentNode:
		return n == nil
	case *latex.SpecialsNode:
		return n == nil
	case *latex.MathNode:
		return n == nil
	default:
		return false
	}
}
