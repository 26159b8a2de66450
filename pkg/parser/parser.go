// Package parser turns SQL text into syntax trees.
//
// Parsing is dialect-driven: the lexer asks the dialect for quote
// characters and comment prefixes, the expression parser for operator
// precedence, and the statement grammars for feature toggles. The
// parser itself never branches on a dialect name.
package parser

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

// DefaultRecursionLimit bounds nesting depth unless overridden.
const DefaultRecursionLimit = 50

// Options control a parse invocation.
type Options struct {
	// RecursionLimit bounds the nesting depth of parenthesized
	// expressions, subqueries, and joins.
	RecursionLimit int
	// Unescape interprets backslash escapes inside string literals.
	Unescape bool
}

// Option mutates Options.
type Option func(*Options)

// WithRecursionLimit overrides the nesting depth limit.
func WithRecursionLimit(n int) Option {
	return func(o *Options) { o.RecursionLimit = n }
}

// WithUnescape toggles backslash escape interpretation in strings.
func WithUnescape(on bool) Option {
	return func(o *Options) { o.Unescape = on }
}

// Parse tokenizes and parses sql under the given dialect, returning
// the statement sequence. A failed parse yields no statements.
func Parse(sql string, d *dialect.Dialect, opts ...Option) ([]ast.Statement, error) {
	o := Options{RecursionLimit: DefaultRecursionLimit}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := newLexer(sql, d, o.Unescape).lex()
	if err != nil {
		return nil, err
	}
	toks := make([]token.Token, 0, len(raw))
	for _, t := range raw {
		if !token.IsTrivia(t.Type) {
			toks = append(toks, t)
		}
	}

	p := &parser{toks: toks, d: d, limit: o.RecursionLimit}
	var stmts []ast.Statement
	for {
		for p.match(token.SEMICOLON) {
		}
		if p.check(token.EOF) {
			return stmts, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if !p.check(token.EOF) && !p.check(token.SEMICOLON) {
			return nil, p.expected("end of statement")
		}
	}
}

// ParseExpr parses a single standalone expression.
func ParseExpr(sql string, d *dialect.Dialect, opts ...Option) (ast.Expr, error) {
	o := Options{RecursionLimit: DefaultRecursionLimit}
	for _, opt := range opts {
		opt(&o)
	}
	raw, err := newLexer(sql, d, o.Unescape).lex()
	if err != nil {
		return nil, err
	}
	toks := make([]token.Token, 0, len(raw))
	for _, t := range raw {
		if !token.IsTrivia(t.Type) {
			toks = append(toks, t)
		}
	}
	p := &parser{toks: toks, d: d, limit: o.RecursionLimit}
	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, p.expected("end of statement")
	}
	return e, nil
}

// Lex tokenizes sql under the given dialect without parsing. The
// result keeps whitespace and comment trivia and ends with an EOF
// token.
func Lex(sql string, d *dialect.Dialect, opts ...Option) ([]token.Token, error) {
	o := Options{RecursionLimit: DefaultRecursionLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return newLexer(sql, d, o.Unescape).lex()
}

// parser holds one parse invocation's state: the trivia-filtered
// token slice, a cursor, and the nesting depth counter.
type parser struct {
	toks  []token.Token
	pos   int
	d     *dialect.Dialect
	depth int
	limit int
}

func (p *parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return token.Token{Type: token.EOF}
}

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token.Token{Type: token.EOF}
}

func (p *parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *parser) check(t token.TokenType) bool {
	return p.cur().Type == t
}

func (p *parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// save returns a position checkpoint for speculative parsing.
func (p *parser) save() int {
	return p.pos
}

// restore rewinds to a checkpoint. Depth is untouched: failed
// speculative branches unwind their own enterNested calls.
func (p *parser) restore(mark int) {
	p.pos = mark
}

// enterNested counts one level of self-recursive grammar and fails
// once the configured limit is reached.
func (p *parser) enterNested() error {
	p.depth++
	if p.depth >= p.limit {
		return ErrRecursionLimit
	}
	return nil
}

func (p *parser) exitNested() {
	p.depth--
}

// tokWord returns the uppercase word of a bare identifier or keyword
// token, or "" for anything else.
func tokWord(tok token.Token) string {
	switch {
	case tok.Type == token.IDENT && tok.Quote == 0:
		return strings.ToUpper(tok.Literal)
	case token.IsKeyword(tok.Type) || token.IsDynamic(tok.Type):
		return strings.ToUpper(tok.Literal)
	default:
		return ""
	}
}

// checkWord reports whether the current token is one of the given
// uppercase words, matched case-insensitively.
func (p *parser) checkWord(words ...string) bool {
	w := tokWord(p.cur())
	if w == "" {
		return false
	}
	for _, want := range words {
		if w == want {
			return true
		}
	}
	return false
}

func (p *parser) matchWord(words ...string) bool {
	if p.checkWord(words...) {
		p.advance()
		return true
	}
	return false
}

// expectWord requires one of the given words and returns it in
// canonical uppercase.
func (p *parser) expectWord(what string, words ...string) (string, error) {
	if !p.checkWord(words...) {
		return "", p.expected(what)
	}
	return tokWord(p.advance()), nil
}

func (p *parser) expect(t token.TokenType, what string) (token.Token, error) {
	if !p.check(t) {
		return token.Token{}, p.expected(what)
	}
	return p.advance(), nil
}

// expected builds a ParseError against the current token.
func (p *parser) expected(what string) error {
	tok := p.cur()
	return &ParseError{Expected: what, Found: foundString(tok), Pos: tok.Pos()}
}

// isIdentLike reports whether a token can serve as an identifier.
// Keywords double as identifiers in name position; reservedness is
// checked separately where it matters.
func isIdentLike(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsKeyword(tok.Type) || token.IsDynamic(tok.Type)
}

// parseIdent consumes one identifier, allowing keywords.
func (p *parser) parseIdent() (ast.Ident, error) {
	tok := p.cur()
	if !isIdentLike(tok) {
		return ast.Ident{}, p.expected("identifier")
	}
	p.advance()
	return ast.Ident{Value: tok.Literal, Quote: tok.Quote}, nil
}

// parseObjectName parses a dotted name. Double-dot schema omission is
// accepted at most once when the dialect enables it, and at most one
// IDENTIFIER(...) part may appear in the whole name.
func (p *parser) parseObjectName() (ast.ObjectName, error) {
	var name ast.ObjectName
	part, err := p.parseObjectNamePart()
	if err != nil {
		return nil, err
	}
	name = append(name, part)

	hasEmpty := false
	hasFunc := part.Func != nil
	for p.check(token.DOT) {
		// stop before wildcard qualifiers
		if p.peek().Type == token.STAR {
			return name, nil
		}
		p.advance()
		if p.check(token.DOT) {
			if !p.d.Features().DoubleDotNotation || hasEmpty || !isIdentLike(p.peek()) {
				return nil, p.expected("identifier")
			}
			hasEmpty = true
			name = append(name, ast.ObjectNamePart{})
			p.advance()
		}
		part, err := p.parseObjectNamePart()
		if err != nil {
			return nil, err
		}
		if part.Func != nil {
			if hasFunc {
				return nil, &GrammarError{Msg: "only one IDENTIFIER() part is allowed in an object name"}
			}
			hasFunc = true
		}
		name = append(name, part)
	}
	return name, nil
}

func (p *parser) parseObjectNamePart() (ast.ObjectNamePart, error) {
	if p.d.Features().IdentifierFunction && p.checkWord("IDENTIFIER") && p.peek().Type == token.LPAREN {
		p.advance()
		p.advance()
		arg, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return ast.ObjectNamePart{}, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return ast.ObjectNamePart{}, err
		}
		return ast.ObjectNamePart{Func: &ast.IdentifierFunc{Arg: arg}}, nil
	}
	id, err := p.parseIdent()
	if err != nil {
		return ast.ObjectNamePart{}, err
	}
	return ast.ObjectNamePart{Ident: id}, nil
}

// parseStatement dispatches on the leading keyword. Statement entry
// counts one nesting level so blocks and subqueries share the bound.
func (p *parser) parseStatement() (ast.Statement, error) {
	if err := p.enterNested(); err != nil {
		return nil, err
	}
	defer p.exitNested()

	switch p.cur().Type {
	case token.SELECT, token.WITH, token.LPAREN, token.VALUES:
		return p.parseQuery()
	case token.CREATE:
		return p.parseCreate()
	case token.DROP:
		return p.parseDrop()
	case token.ALTER:
		return p.parseAlter()
	case token.COPY:
		return p.parseCopyInto()
	case token.DECLARE:
		return p.parseDeclare()
	case token.BEGIN:
		return p.parseBeginBlock()
	case token.SHOW:
		return p.parseShow()
	case token.GRANT:
		return p.parseGrant()
	case token.REVOKE:
		return p.parseRevoke()
	case token.USE:
		return p.parseUse()
	}
	switch {
	case p.checkWord("RAISE"):
		return p.parseRaise()
	case p.checkWord("LIST", "LS"):
		return p.parseList()
	case p.checkWord("REMOVE", "RM"):
		return p.parseRemove()
	}
	return nil, p.expected("an SQL statement")
}
