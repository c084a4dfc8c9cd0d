package texast

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// MaxDecodeDepth bounds the nesting accepted by Decode.
const MaxDecodeDepth = 1024

// Decode errors.
var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrDocumentTooDeep   = errors.New("document nesting too deep")
)

// wireNode is the loosely-typed document shape. It never leaves this file.
type wireNode struct {
	Type       string            `json:"type"`
	MacroName  string            `json:"macroname"`
	Name       string            `json:"name"`
	Text       string            `json:"text"`
	Specials   string            `json:"specials"`
	Delimiters wireDelimiters    `json:"delimiters"`
	Args       []json.RawMessage `json:"args"`
	Children   []json.RawMessage `json:"children"`

	// Legacy spellings written by older converters.
	LegacyComment     *string           `json:"comment"`
	LegacyEnvironment *string           `json:"environmentname"`
	LegacyNodeList    []json.RawMessage `json:"nodelist"`
}

// wireDelimiters is a group's delimiter list. Current documents write a
// JSON array. Legacy documents write the tuple as a quoted literal, for
// example "('{', '}')".
type wireDelimiters []string

func (d *wireDelimiters) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*d = list
		return nil
	}

	var literal string
	if err := json.Unmarshal(trimmed, &literal); err != nil {
		return err
	}
	list, err := parseTupleLiteral(literal)
	if err != nil {
		return err
	}
	*d = list
	return nil
}

// parseTupleLiteral parses a tuple of quoted strings such as ('[', ']').
// Elements use single or double quotes with backslash escapes.
func parseTupleLiteral(literal string) ([]string, error) {
	s := strings.TrimSpace(literal)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("delimiters %q: not a tuple", literal)
	}
	s = s[1 : len(s)-1]

	var items []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return items, nil
		}
		item, rest, err := unquoteLiteral(s)
		if err != nil {
			return nil, fmt.Errorf("delimiters %q: %w", literal, err)
		}
		items = append(items, item)

		rest = strings.TrimLeft(rest, " \t")
		switch {
		case rest == "":
			return items, nil
		case rest[0] == ',':
			s = rest[1:]
		default:
			return nil, fmt.Errorf("delimiters %q: expected ',' after element %d", literal, len(items))
		}
	}
}

// unquoteLiteral reads one quoted string from the front of s and returns it
// with the remainder of s.
func unquoteLiteral(s string) (string, string, error) {
	quote := s[0]
	if quote != '\'' && quote != '"' {
		return "", "", fmt.Errorf("unexpected %q", quote)
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), s[i+1:], nil
		case c != '\\':
			b.WriteByte(c)
			continue
		case i+1 == len(s):
			return "", "", errors.New("unterminated escape")
		}

		i++
		switch esc := s[i]; esc {
		case '\\', '\'', '"':
			b.WriteByte(esc)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[esc]
			if i+width >= len(s) {
				return "", "", fmt.Errorf("short \\%c escape", esc)
			}
			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				return "", "", fmt.Errorf("bad \\%c escape: %w", esc, err)
			}
			b.WriteRune(rune(code))
			i += width
		default:
			// Unknown escapes keep their backslash.
			b.WriteByte('\\')
			b.WriteByte(esc)
		}
	}
	return "", "", errors.New("unterminated string")
}

func (w *wireNode) normalize() {
	if w.Text == "" && w.LegacyComment != nil {
		w.Text = *w.LegacyComment
	}
	if w.Name == "" && w.LegacyEnvironment != nil {
		w.Name = *w.LegacyEnvironment
	}
	if w.Children == nil && w.LegacyNodeList != nil {
		w.Children = w.LegacyNodeList
	}
}

// Decode parses a document written by Marshal back into a canonical tree.
// Objects with an unrecognized type decode to *Unknown carrying the type.
// The legacy field names comment, environmentname and nodelist are accepted,
// as are group delimiters written as a tuple literal.
func Decode(data []byte) ([]Node, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return decodeList(raw, 0)
}

func decodeList(raw []json.RawMessage, depth int) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for _, item := range raw {
		node, err := decodeNode(item, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(raw json.RawMessage, depth int) (Node, error) {
	if depth > MaxDecodeDepth {
		return nil, ErrDocumentTooDeep
	}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return nil, nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		return &Chars{Text: text}, nil
	case trimmed[0] != '{':
		return nil, fmt.Errorf("%w: unexpected value %.20s", ErrMalformedDocument, trimmed)
	}

	var wire wireNode
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	wire.normalize()

	args, err := decodeList(wire.Args, depth+1)
	if err != nil {
		return nil, err
	}
	children, err := decodeList(wire.Children, depth+1)
	if err != nil {
		return nil, err
	}

	switch wire.Type {
	case TypeMacro:
		return &Macro{Name: wire.MacroName, Args: args}, nil
	case TypeGroup:
		if len(wire.Delimiters) != 2 {
			return nil, fmt.Errorf("%w: group delimiters must be a pair", ErrMalformedDocument)
		}
		group := &Group{
			Delimiters: Delimiters{Open: wire.Delimiters[0], Close: wire.Delimiters[1]},
			Children:   children,
		}
		if len(args) > 0 {
			group.Args = args
		}
		return group, nil
	case TypeComment:
		return &Comment{Text: wire.Text}, nil
	case TypeEnvironment:
		return &Environment{Name: wire.Name, Args: args, Children: children}, nil
	case TypeSpecials:
		return &Specials{Chars: wire.Specials, Args: args}, nil
	case TypeMath:
		return &Math{Children: children}, nil
	default:
		return &Unknown{Label: strings.TrimPrefix(wire.Type, UnknownTypePrefix)}, nil
	}
}
