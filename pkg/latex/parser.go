package latex

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth bounds the nesting of groups, environments, math regions
// and macro arguments accepted by the parser.
const DefaultMaxDepth = 512

// Sentinel errors for categorization via errors.Is.
var (
	// ErrSyntax indicates malformed source: unbalanced braces, a mismatched
	// \end, an unterminated math region and similar.
	ErrSyntax = errors.New("syntax error")

	// ErrTooDeep indicates the source nests deeper than the parser allows.
	ErrTooDeep = errors.New("nesting too deep")
)

// ParseError describes a parse failure at a source position.
type ParseError struct {
	Pos Position
	Msg string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns the sentinel error category.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth. Values <= 0 keep the default.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithMacroSpecs adds or overrides macro argument specs.
func WithMacroSpecs(specs map[string]string) Option {
	return func(p *Parser) {
		maps.Copy(p.macros, specs)
	}
}

// WithEnvironmentSpecs adds or overrides environment argument specs.
func WithEnvironmentSpecs(specs map[string]string) Option {
	return func(p *Parser) {
		maps.Copy(p.environments, specs)
	}
}

// Parser converts LaTeX source into syntax nodes.
// A Parser is safe for concurrent use once constructed.
type Parser struct {
	maxDepth     int
	macros       map[string]string
	environments map[string]string
}

// New creates a Parser with the default argument specs.
func New(opts ...Option) *Parser {
	parser := &Parser{
		maxDepth:     DefaultMaxDepth,
		macros:       maps.Clone(DefaultMacroSpecs),
		environments: maps.Clone(DefaultEnvironmentSpecs),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Parse parses content into the top-level node list. The path is used only
// for positions in nodes and errors.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) ([]Node, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse cancelled: %w", ctx.Err())
	default:
	}

	tokens, err := tokenize(path, content)
	if err != nil {
		return nil, err
	}

	st := &state{parser: p, tokens: tokens}
	return st.parseList(token{}, nil, "document")
}

// Parse parses content with a default Parser.
func Parse(path string, content []byte) ([]Node, error) {
	return New().Parse(context.Background(), path, content)
}

// closer reports whether a token ends the list being parsed.
type closer func(tok token) bool

func closeOn(kind tokenKind, value string) closer {
	return func(tok token) bool {
		return tok.is(kind, value)
	}
}

type state struct {
	parser *Parser
	tokens []token
	pos    int
	depth  int
}

func (s *state) peek() token {
	return s.tokens[s.pos]
}

func (s *state) next() token {
	tok := s.tokens[s.pos]
	if tok.kind != tokEOF {
		s.pos++
	}
	return tok
}

func (s *state) fail(pos Position, category error, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: category}
}

func (s *state) enter(pos Position) error {
	s.depth++
	if s.depth > s.parser.maxDepth {
		return s.fail(pos, ErrTooDeep, "nesting exceeds %d levels", s.parser.maxDepth)
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

// parseList parses nodes until isClose matches (the closing token is
// consumed) or, when isClose is nil, until end of input. Adjacent text,
// punctuation and brackets merge into a single CharsNode.
func (s *state) parseList(open token, isClose closer, what string) ([]Node, error) {
	nodes := make([]Node, 0)

	var text strings.Builder
	var textPos Position
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &CharsNode{Chars: text.String(), Position: textPos})
			text.Reset()
		}
	}

	for {
		tok := s.peek()
		if isClose != nil && isClose(tok) {
			flush()
			s.next()
			return nodes, nil
		}

		switch tok.kind {
		case tokEOF:
			if isClose != nil {
				return nil, s.fail(open.pos, ErrSyntax, "unterminated %s", what)
			}
			flush()
			return nodes, nil
		case tokText, tokPunct, tokBracket:
			if text.Len() == 0 {
				textPos = tok.pos
			}
			text.WriteString(tok.value)
			s.next()
			continue
		default:
		}

		flush()
		node, err := s.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// parseNode parses the structural node starting at the current token.
func (s *state) parseNode() (Node, error) {
	tok := s.next()

	switch tok.kind {
	case tokComment:
		return &CommentNode{Comment: strings.TrimPrefix(tok.value, "%"), Position: tok.pos}, nil

	case tokBrace:
		if tok.value == "}" {
			return nil, s.fail(tok.pos, ErrSyntax, "unexpected }")
		}
		return s.parseGroup(tok, "{", "}", tokBrace, "group")

	case tokMacro:
		if err := s.enter(tok.pos); err != nil {
			return nil, err
		}
		defer s.leave()

		name := tok.value[1:]
		args, err := s.parseArgs(s.parser.macros[name])
		if err != nil {
			return nil, err
		}
		return &MacroNode{Name: name, Args: args, Position: tok.pos}, nil

	case tokBeginEnv:
		return s.parseEnvironment(tok)

	case tokEndEnv:
		return nil, s.fail(tok.pos, ErrSyntax, "unexpected %s", tok.value)

	case tokMathDelim:
		switch tok.value {
		case `\(`:
			return s.parseMath(tok, `\)`, false)
		case `\[`:
			return s.parseMath(tok, `\]`, true)
		default:
			return nil, s.fail(tok.pos, ErrSyntax, "unexpected %s", tok.value)
		}

	case tokDollar:
		return s.parseMath(tok, tok.value, tok.value == "$$")

	case tokSpecials:
		return &SpecialsNode{Chars: tok.value, Position: tok.pos}, nil

	default:
		return nil, s.fail(tok.pos, ErrSyntax, "unexpected %q", tok.value)
	}
}

func (s *state) parseGroup(open token, left, right string, kind tokenKind, what string) (Node, error) {
	if err := s.enter(open.pos); err != nil {
		return nil, err
	}
	defer s.leave()

	nodes, err := s.parseList(open, closeOn(kind, right), what)
	if err != nil {
		return nil, err
	}
	return &GroupNode{Delimiters: [2]string{left, right}, Nodes: nodes, Position: open.pos}, nil
}

func (s *state) parseEnvironment(open token) (Node, error) {
	if err := s.enter(open.pos); err != nil {
		return nil, err
	}
	defer s.leave()

	name := environmentName(open.value)
	args, err := s.parseArgs(s.parser.environments[name])
	if err != nil {
		return nil, err
	}

	isEnd := func(tok token) bool {
		return tok.kind == tokEndEnv && environmentName(tok.value) == name
	}
	nodes, err := s.parseList(open, isEnd, open.value)
	if err != nil {
		return nil, err
	}

	return &EnvironmentNode{Name: name, Args: args, Nodes: nodes, Position: open.pos}, nil
}

func (s *state) parseMath(open token, right string, display bool) (Node, error) {
	if err := s.enter(open.pos); err != nil {
		return nil, err
	}
	defer s.leave()

	kind := tokDollar
	if open.kind == tokMathDelim {
		kind = tokMathDelim
	}
	nodes, err := s.parseList(open, closeOn(kind, right), "math "+open.value)
	if err != nil {
		return nil, err
	}
	return &MathNode{
		Delimiters: [2]string{open.value, right},
		Display:    display,
		Nodes:      nodes,
		Position:   open.pos,
	}, nil
}

// parseArgs reads one argument per spec character. Missing arguments are
// recorded as nil entries so the slot count always matches len(spec).
func (s *state) parseArgs(spec string) (*Arguments, error) {
	args := &Arguments{Spec: spec, Nodes: make([]Node, 0, len(spec))}

	for _, kind := range spec {
		var (
			arg Node
			err error
		)
		switch kind {
		case specStar:
			arg = s.parseStar()
		case specOptional:
			arg, err = s.parseOptional()
		case specMandatory:
			arg, err = s.parseMandatory()
		default:
			return nil, fmt.Errorf("invalid argument spec %q", spec)
		}
		if err != nil {
			return nil, err
		}
		args.Nodes = append(args.Nodes, arg)
	}

	return args, nil
}

func (s *state) parseStar() Node {
	tok := s.peek()
	if tok.kind != tokText || !strings.HasPrefix(tok.value, "*") {
		return nil
	}
	return s.splitText(1)
}

func (s *state) parseOptional() (Node, error) {
	idx := s.skipBlank()
	if !s.tokens[idx].is(tokBracket, "[") {
		return nil, nil
	}
	s.pos = idx
	open := s.next()
	return s.parseGroup(open, "[", "]", tokBracket, "optional argument")
}

func (s *state) parseMandatory() (Node, error) {
	idx := s.skipBlank()
	tok := s.tokens[idx]

	switch {
	case tok.is(tokBrace, "{"), tok.kind == tokMacro:
		s.pos = idx
		return s.parseNode()
	case tok.kind == tokPunct:
		s.pos = idx
		s.next()
		return &CharsNode{Chars: tok.value, Position: tok.pos}, nil
	case tok.kind == tokText:
		rest := strings.TrimLeft(tok.value, " \t\r\n")
		skipped := tok.value[:len(tok.value)-len(rest)]
		if strings.Count(skipped, "\n") >= 2 {
			return nil, nil
		}
		s.pos = idx
		s.trimText(len(skipped))
		_, size := utf8.DecodeRuneInString(rest)
		return s.splitText(size), nil
	default:
		return nil, nil
	}
}

// skipBlank returns the index of the first token after whitespace-only text.
// A paragraph break ends the search so arguments never cross paragraphs.
func (s *state) skipBlank() int {
	idx := s.pos
	for s.tokens[idx].kind == tokText {
		value := s.tokens[idx].value
		if strings.TrimSpace(value) != "" || strings.Count(value, "\n") >= 2 {
			break
		}
		idx++
	}
	return idx
}

// trimText drops the first n bytes of the current text token.
func (s *state) trimText(n int) {
	if n == 0 {
		return
	}
	tok := &s.tokens[s.pos]
	for _, r := range tok.value[:n] {
		if r == '\n' {
			tok.pos.Line++
			tok.pos.Column = 1
		} else {
			tok.pos.Column++
		}
	}
	tok.value = tok.value[n:]
	tok.pos.Offset += n
	if tok.value == "" {
		s.pos++
	}
}

// splitText consumes the first n bytes of the current text token as a
// CharsNode.
func (s *state) splitText(n int) Node {
	tok := s.tokens[s.pos]
	node := &CharsNode{Chars: tok.value[:n], Position: tok.pos}
	s.trimText(n)
	return node
}
