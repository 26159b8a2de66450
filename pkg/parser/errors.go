package parser

import (
	"errors"
	"fmt"

	"github.com/frostline-labs/frostql/pkg/token"
)

// ErrRecursionLimit is returned when input nests deeper than the
// configured limit. It is a distinct kind so callers can tell
// resource protection apart from syntax errors.
var ErrRecursionLimit = errors.New("recursion limit exceeded")

// ParseError reports a production that could not match the next
// token. Expected names the grammatic category or literal, Found the
// offending token as written.
type ParseError struct {
	Expected string
	Found    string
	Pos      token.Position
}

func (e *ParseError) Error() string {
	return "Expected: " + e.Expected + ", found: " + e.Found
}

// GrammarError reports a structurally invalid construct: clauses that
// exclude each other, missing required options, conflicting aliases.
// Raised at the point of detection, never deferred.
type GrammarError struct {
	Msg string
}

func (e *GrammarError) Error() string {
	return e.Msg
}

// LexError reports a malformed token. It is always fatal to the parse.
type LexError struct {
	Msg    string
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// foundString renders a token for the "found:" half of a ParseError.
// Quoted identifiers and strings keep their delimiters so the message
// mirrors the source.
func foundString(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.STRING:
		return "'" + tok.Literal + "'"
	case token.IDENT:
		if tok.Quote != 0 {
			q := string(tok.Quote)
			return q + tok.Literal + q
		}
		return tok.Literal
	default:
		if tok.Literal != "" {
			return tok.Literal
		}
		return tok.Type.String()
	}
}
