package latex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokComment
	tokBeginEnv
	tokEndEnv
	tokMathDelim
	tokMacro
	tokDollar
	tokSpecials
	tokBrace
	tokBracket
	tokText
	tokPunct
)

// texLexer tokenizes LaTeX source. Rule order matters: the first matching
// rule wins, so environment markers and math delimiters precede macros and
// the multi-character specials precede single punctuation.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var texLexer = stateful.MustSimple([]stateful.Rule{
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "BeginEnv", Pattern: `\\begin[ \t]*\{[^{}]*\}`},
	{Name: "EndEnv", Pattern: `\\end[ \t]*\{[^{}]*\}`},
	{Name: "MathDelim", Pattern: `\\[\[\]()]`},
	{Name: "Macro", Pattern: `\\(?:[a-zA-Z@]+|[^a-zA-Z@])`},
	{Name: "Dollar", Pattern: `\$\$|\$`},
	{Name: "Specials", Pattern: `---|--|\x60\x60|''|~|&`},
	{Name: "Brace", Pattern: `[{}]`},
	{Name: "Bracket", Pattern: `[\[\]]`},
	{Name: "Text", Pattern: `[^\\%{}\[\]$~&\x60'\-]+`},
	{Name: "Punct", Pattern: `[\x60'\-]`},
})

// token is the parser-facing view of a lexer token.
type token struct {
	kind  tokenKind
	value string
	pos   Position
}

func (t token) is(kind tokenKind, value string) bool {
	return t.kind == kind && t.value == value
}

// tokenize runs the lexer over src and maps its symbols to tokenKinds.
func tokenize(filename string, src []byte) ([]token, error) {
	symbols := texLexer.Symbols()
	kinds := map[rune]tokenKind{
		symbols["Comment"]:   tokComment,
		symbols["BeginEnv"]:  tokBeginEnv,
		symbols["EndEnv"]:    tokEndEnv,
		symbols["MathDelim"]: tokMathDelim,
		symbols["Macro"]:     tokMacro,
		symbols["Dollar"]:    tokDollar,
		symbols["Specials"]:  tokSpecials,
		symbols["Brace"]:     tokBrace,
		symbols["Bracket"]:   tokBracket,
		symbols["Text"]:      tokText,
		symbols["Punct"]:     tokPunct,
	}

	lex, err := texLexer.Lex(filename, bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("start lexer: %w", err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: ErrSyntax}
	}

	tokens := make([]token, 0, len(raw))
	for _, tok := range raw {
		pos := Position{
			Filename: filename,
			Offset:   tok.Pos.Offset,
			Line:     tok.Pos.Line,
			Column:   tok.Pos.Column,
		}
		if tok.Type == lexer.EOF {
			tokens = append(tokens, token{kind: tokEOF, pos: pos})
			continue
		}
		kind, ok := kinds[tok.Type]
		if !ok {
			return nil, &ParseError{Pos: pos, Msg: fmt.Sprintf("unexpected token %q", tok.Value), Err: ErrSyntax}
		}
		tokens = append(tokens, token{kind: kind, value: tok.Value, pos: pos})
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].kind != tokEOF {
		tokens = append(tokens, token{kind: tokEOF, pos: Position{Filename: filename, Offset: len(src)}})
	}

	return tokens, nil
}

// environmentName extracts "name" from "\begin{name}" or "\end{name}".
func environmentName(marker string) string {
	open := strings.IndexByte(marker, '{')
	if open < 0 || !strings.HasSuffix(marker, "}") {
		return ""
	}
	return strings.TrimSpace(marker[open+1 : len(marker)-1])
}
