// Package texast defines the canonical document tree and converts parser
// output into it.
//
// Canonical nodes are immutable values built once, bottom-up, by Convert.
// They hold no references back into the syntax tree. A nil Node is the
// absent value (for example an omitted optional argument); argument and
// child slices may contain nil entries.
package texast

// Kind is the discriminant of a canonical node.
type Kind uint8

// Node kinds. KindUnknown is the fallback for syntax nodes the builder does
// not recognize.
const (
	KindMacro Kind = iota + 1
	KindGroup
	KindChars
	KindComment
	KindEnvironment
	KindSpecials
	KindMath
	KindUnknown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMacro:
		return "Macro"
	case KindGroup:
		return "Group"
	case KindChars:
		return "Chars"
	case KindComment:
		return "Comment"
	case KindEnvironment:
		return "Environment"
	case KindSpecials:
		return "Specials"
	case KindMath:
		return "Math"
	case KindUnknown:
		return "Unknown"
	default:
		return "Kind(invalid)"
	}
}

// Node is a canonical tree node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	canonical()
}

// Delimiters is the open/close pair of a group. Both are always present,
// possibly as empty strings.
type Delimiters struct {
	Open  string
	Close string
}

// Macro is a command invocation. Args preserves source argument order.
type Macro struct {
	Name string
	Args []Node
}

// Group is a delimited group. Args is never set by Convert; table views and
// decoded documents use it to carry a table's placement argument.
type Group struct {
	Delimiters Delimiters
	Args       []Node
	Children   []Node
}

// Chars is literal text. Text holds the escaped form; see Escape.
type Chars struct {
	Text string
}

// NewChars creates a Chars node from raw text.
func NewChars(raw string) *Chars {
	return &Chars{Text: Escape(raw)}
}

// Raw returns the original text by reversing the escaping.
func (c *Chars) Raw() (string, error) {
	return Unescape(c.Text)
}

// Comment is a verbatim comment body.
type Comment struct {
	Text string
}

// Environment is a named begin/end block. Args precede Children.
type Environment struct {
	Name     string
	Args     []Node
	Children []Node
}

// Specials is a special character sequence. Args is empty, never nil, when
// the parser attached no argument descriptor.
type Specials struct {
	Chars string
	Args  []Node
}

// Math is a math region. Delimiters are not retained.
type Math struct {
	Children []Node
}

// Unknown stands in for a syntax node kind the builder does not recognize.
type Unknown struct {
	Label string
}

func (*Macro) Kind() Kind       { return KindMacro }
func (*Group) Kind() Kind       { return KindGroup }
func (*Chars) Kind() Kind       { return KindChars }
func (*Comment) Kind() Kind     { return KindComment }
func (*Environment) Kind() Kind { return KindEnvironment }
func (*Specials) Kind() Kind    { return KindSpecials }
func (*Math) Kind() Kind        { return KindMath }
func (*Unknown) Kind() Kind     { return KindUnknown }

func (*Macro) canonical()       {}
func (*Group) canonical()       {}
func (*Chars) canonical()       {}
func (*Comment) canonical()     {}
func (*Environment) canonical() {}
func (*Specials) canonical()    {}
func (*Math) canonical()        {}
func (*Unknown) canonical()     {}

// Args returns the argument list of n, or nil for kinds without arguments
// and for nil nodes.
func Args(n Node) []Node {
	switch node := n.(type) {
	case *Macro:
		if node != nil {
			return node.Args
		}
	case *Group:
		if node != nil {
			return node.Args
		}
	case *Environment:
		if node != nil {
			return node.Args
		}
	case *Specials:
		if node != nil {
			return node.Args
		}
	}
	return nil
}

// Children returns the child list of n, or nil for leaf kinds and for nil
// nodes.
func Children(n Node) []Node {
	switch node := n.(type) {
	case *Group:
		if node != nil {
			return node.Children
		}
	case *Environment:
		if node != nil {
			return node.Children
		}
	case *Math:
		if node != nil {
			return node.Children
		}
	}
	return nil
}
