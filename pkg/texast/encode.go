package texast

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Document type tags.
const (
	TypeMacro       = "MacroNode"
	TypeGroup       = "GroupNode"
	TypeComment     = "CommentNode"
	TypeEnvironment = "EnvironmentNode"
	TypeSpecials    = "SpecialsNode"
	TypeMath        = "MathNode"

	// UnknownTypePrefix precedes the label in an unknown node's type tag.
	UnknownTypePrefix = "Unknown;"
)

// documentIndent matches the indentation of documents written by convert.
const documentIndent = "    "

// Marshal encodes a canonical tree as a JSON array. Chars nodes encode as
// bare strings, absent nodes as null and every other kind as an object
// tagged by "type".
func Marshal(tree []Node, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(nonNil(tree), "", documentIndent)
	} else {
		data, err = json.Marshal(nonNil(tree))
	}
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Encode writes the encoded tree followed by a newline.
func Encode(w io.Writer, tree []Node, indent bool) error {
	data, err := Marshal(tree, indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func nonNil(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}

// MarshalJSON implements json.Marshaler.
func (n *Macro) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		MacroName string `json:"macroname"`
		Args      []Node `json:"args"`
	}{TypeMacro, n.Name, nonNil(n.Args)})
}

// MarshalJSON implements json.Marshaler. Args is written only when present.
func (n *Group) MarshalJSON() ([]byte, error) {
	delimiters := [2]string{n.Delimiters.Open, n.Delimiters.Close}
	if len(n.Args) > 0 {
		return json.Marshal(struct {
			Type       string    `json:"type"`
			Delimiters [2]string `json:"delimiters"`
			Args       []Node    `json:"args"`
			Children   []Node    `json:"children"`
		}{TypeGroup, delimiters, n.Args, nonNil(n.Children)})
	}
	return json.Marshal(struct {
		Type       string    `json:"type"`
		Delimiters [2]string `json:"delimiters"`
		Children   []Node    `json:"children"`
	}{TypeGroup, delimiters, nonNil(n.Children)})
}

// MarshalJSON implements json.Marshaler.
func (n *Chars) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Text)
}

// MarshalJSON implements json.Marshaler.
func (n *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{TypeComment, n.Text})
}

// MarshalJSON implements json.Marshaler.
func (n *Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Name     string `json:"name"`
		Args     []Node `json:"args"`
		Children []Node `json:"children"`
	}{TypeEnvironment, n.Name, nonNil(n.Args), nonNil(n.Children)})
}

// MarshalJSON implements json.Marshaler.
func (n *Specials) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Specials string `json:"specials"`
		Args     []Node `json:"args"`
	}{TypeSpecials, n.Chars, nonNil(n.Args)})
}

// MarshalJSON implements json.Marshaler.
func (n *Math) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Children []Node `json:"children"`
	}{TypeMath, nonNil(n.Children)})
}

// MarshalJSON implements json.Marshaler.
func (n *Unknown) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{UnknownTypePrefix + n.Label})
}
