// Package latex parses LaTeX source into a tree of syntax nodes.
//
// The node kinds mirror the structure a LaTeX walker exposes: macro
// invocations, delimited groups, literal characters, comments, named
// environments, special character sequences and math regions. The package
// performs no semantic interpretation; it only records structure and
// source positions.
package latex

import "fmt"

// Position is a location in the parsed source.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// String formats the position as "file:line:col".
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is a syntax node produced by the parser.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() Position
	latexNode()
}

// Arguments is the argument descriptor attached to macros, environments and
// (optionally) specials. Nodes holds one entry per argument slot declared by
// the argument spec; an omitted optional argument is a nil entry.
type Arguments struct {
	Spec  string
	Nodes []Node
}

// MacroNode is a command invocation such as \caption{...}.
type MacroNode struct {
	Name     string
	Args     *Arguments
	Position Position
}

// GroupNode is a delimited group: {...} or an optional argument [...].
type GroupNode struct {
	Delimiters [2]string
	Nodes      []Node
	Position   Position
}

// CharsNode is a run of literal text.
type CharsNode struct {
	Chars    string
	Position Position
}

// CommentNode is a % comment; Comment excludes the leading percent sign.
type CommentNode struct {
	Comment  string
	Position Position
}

// EnvironmentNode is a \begin{name}...\end{name} block.
type EnvironmentNode struct {
	Name     string
	Args     *Arguments
	Nodes    []Node
	Position Position
}

// SpecialsNode is a special character sequence such as ~, & or --.
// Args is nil when no argument descriptor applies.
type SpecialsNode struct {
	Chars    string
	Args     *Arguments
	Position Position
}

// MathNode is an inline or display math region.
type MathNode struct {
	Delimiters [2]string
	Display    bool
	Nodes      []Node
	Position   Position
}

func (n *MacroNode) Pos() Position       { return n.Position }
func (n *GroupNode) Pos() Position       { return n.Position }
func (n *CharsNode) Pos() Position       { return n.Position }
func (n *CommentNode) Pos() Position     { return n.Position }
func (n *EnvironmentNode) Pos() Position { return n.Position }
func (n *SpecialsNode) Pos() Position    { return n.Position }
func (n *MathNode) Pos() Position        { return n.Position }

func (*MacroNode) latexNode()       {}
func (*GroupNode) latexNode()       {}
func (*CharsNode) latexNode()       {}
func (*CommentNode) latexNode()     {}
func (*EnvironmentNode) latexNode() {}
func (*SpecialsNode) latexNode()    {}
func (*MathNode) latexNode()        {}
