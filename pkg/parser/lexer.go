package parser

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

// lexer walks source text and produces the full token sequence,
// trivia included. The dialect supplies quote characters, comment
// prefixes, and keyword resolution.
type lexer struct {
	src      string
	dialect  *dialect.Dialect
	unescape bool

	offset int
	line   int
	col    int
}

func newLexer(src string, d *dialect.Dialect, unescape bool) *lexer {
	return &lexer{src: src, dialect: d, unescape: unescape, line: 1, col: 1}
}

// lex tokenizes the whole input. The returned slice always ends with
// an EOF token.
func (l *lexer) lex() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (l *lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.offset}
}

func (l *lexer) eof() bool {
	return l.offset >= len(l.src)
}

func (l *lexer) ch() byte {
	return l.src[l.offset]
}

func (l *lexer) at(i int) byte {
	if l.offset+i >= len(l.src) {
		return 0
	}
	return l.src[l.offset+i]
}

func (l *lexer) advance() {
	if l.src[l.offset] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.offset++
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n && !l.eof(); i++ {
		l.advance()
	}
}

func (l *lexer) token(t token.TokenType, lit string, start token.Position) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Span:    token.Span{Start: start, End: l.pos()},
	}
}

func (l *lexer) next() (token.Token, error) {
	start := l.pos()
	if l.eof() {
		return l.token(token.EOF, "", start), nil
	}

	c := l.ch()
	switch {
	case isSpace(c):
		return l.whitespace(start), nil
	case l.isLineComment():
		return l.lineComment(start), nil
	case c == '/' && l.at(1) == '*':
		return l.blockComment(start)
	case c == '\'':
		return l.stringLit(start)
	case c == '$' && l.dialect.Features().DollarQuotedStrings && l.dollarTagLen() > 0:
		return l.dollarString(start)
	case l.dialect.IsQuoteChar(c):
		return l.quotedIdent(start)
	case isDigit(c):
		return l.number(start), nil
	case isIdentStart(c) || (c == '$' && l.dialect.Features().DollarInIdent):
		return l.word(start), nil
	case c == '@' && l.dialect.Features().StageReferences:
		return l.stageRef(start), nil
	case c == '?':
		l.advance()
		return l.token(token.PLACEHOLDER, "?", start), nil
	default:
		return l.operator(start)
	}
}

func (l *lexer) whitespace(start token.Position) token.Token {
	from := l.offset
	for !l.eof() && isSpace(l.ch()) {
		l.advance()
	}
	return l.token(token.WS, l.src[from:l.offset], start)
}

func (l *lexer) isLineComment() bool {
	rest := l.src[l.offset:]
	for _, prefix := range l.dialect.CommentPrefixes() {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return false
}

func (l *lexer) lineComment(start token.Position) token.Token {
	from := l.offset
	for !l.eof() && l.ch() != '\n' {
		l.advance()
	}
	return l.token(token.COMMENT, l.src[from:l.offset], start)
}

// blockComment consumes /* ... */ with nesting.
func (l *lexer) blockComment(start token.Position) (token.Token, error) {
	from := l.offset
	l.advanceN(2)
	depth := 1
	for !l.eof() {
		if l.ch() == '/' && l.at(1) == '*' {
			depth++
			l.advanceN(2)
			continue
		}
		if l.ch() == '*' && l.at(1) == '/' {
			depth--
			l.advanceN(2)
			if depth == 0 {
				return l.token(token.COMMENT, l.src[from:l.offset], start), nil
			}
			continue
		}
		l.advance()
	}
	return token.Token{}, &LexError{Msg: "unterminated block comment", Offset: start.Offset}
}

func (l *lexer) stringLit(start token.Position) (token.Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for !l.eof() {
		c := l.ch()
		switch {
		case c == '\'' && l.at(1) == '\'':
			sb.WriteByte('\'')
			l.advanceN(2)
		case c == '\'':
			l.advance()
			tok := l.token(token.STRING, sb.String(), start)
			tok.Style = token.SingleQuoted
			return tok, nil
		case c == '\\' && l.unescape:
			l.advance()
			if l.eof() {
				return token.Token{}, &LexError{Msg: "unterminated string literal", Offset: start.Offset}
			}
			sb.WriteByte(unescapeChar(l.ch()))
			l.advance()
		default:
			sb.WriteByte(c)
			l.advance()
		}
	}
	return token.Token{}, &LexError{Msg: "unterminated string literal", Offset: start.Offset}
}

func unescapeChar(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// dollarTagLen returns the length of a $tag$ opener at the cursor, or
// zero when the cursor does not open a dollar-quoted string.
func (l *lexer) dollarTagLen() int {
	i := 1
	for l.offset+i < len(l.src) {
		c := l.src[l.offset+i]
		if c == '$' {
			return i + 1
		}
		if !isIdentPart(c) {
			return 0
		}
		i++
	}
	return 0
}

func (l *lexer) dollarString(start token.Position) (token.Token, error) {
	tagLen := l.dollarTagLen()
	tag := l.src[l.offset : l.offset+tagLen]
	l.advanceN(tagLen)
	from := l.offset
	for l.offset+tagLen <= len(l.src) {
		if strings.HasPrefix(l.src[l.offset:], tag) {
			body := l.src[from:l.offset]
			l.advanceN(tagLen)
			tok := l.token(token.STRING, body, start)
			tok.Style = token.DollarQuoted
			return tok, nil
		}
		l.advance()
	}
	return token.Token{}, &LexError{Msg: "unterminated dollar-quoted string", Offset: start.Offset}
}

func (l *lexer) quotedIdent(start token.Position) (token.Token, error) {
	quote := l.ch()
	l.advance()
	var sb strings.Builder
	for !l.eof() {
		c := l.ch()
		if c == quote && l.at(1) == quote {
			sb.WriteByte(quote)
			l.advanceN(2)
			continue
		}
		if c == quote {
			l.advance()
			tok := l.token(token.IDENT, sb.String(), start)
			tok.Quote = quote
			return tok, nil
		}
		sb.WriteByte(c)
		l.advance()
	}
	return token.Token{}, &LexError{Msg: "unterminated quoted identifier", Offset: start.Offset}
}

func (l *lexer) number(start token.Position) token.Token {
	from := l.offset
	for !l.eof() && isDigit(l.ch()) {
		l.advance()
	}
	if !l.eof() && l.ch() == '.' && isDigit(l.at(1)) {
		l.advance()
		for !l.eof() && isDigit(l.ch()) {
			l.advance()
		}
	}
	if !l.eof() && (l.ch() == 'e' || l.ch() == 'E') {
		next := l.at(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.at(2))) {
			l.advance()
			if l.ch() == '+' || l.ch() == '-' {
				l.advance()
			}
			for !l.eof() && isDigit(l.ch()) {
				l.advance()
			}
		}
	}
	return l.token(token.NUMBER, l.src[from:l.offset], start)
}

func (l *lexer) word(start token.Position) token.Token {
	from := l.offset
	dollar := l.dialect.Features().DollarInIdent
	for !l.eof() {
		c := l.ch()
		if isIdentPart(c) || (c == '$' && dollar) {
			l.advance()
			continue
		}
		break
	}
	lit := l.src[from:l.offset]
	if t, ok := l.dialect.KeywordToken(lit); ok {
		return l.token(t, lit, start)
	}
	return l.token(token.IDENT, lit, start)
}

// stageRef consumes an @stage/path reference as one token, '@'
// included in the literal.
func (l *lexer) stageRef(start token.Position) token.Token {
	from := l.offset
	l.advance() // @
	for !l.eof() {
		c := l.ch()
		if isIdentPart(c) || c == '/' || c == '.' || c == '~' || c == '%' || c == '-' || c == '$' {
			l.advance()
			continue
		}
		break
	}
	return l.token(token.ATIDENT, l.src[from:l.offset], start)
}

func (l *lexer) operator(start token.Position) (token.Token, error) {
	two := ""
	if l.offset+1 < len(l.src) {
		two = l.src[l.offset : l.offset+2]
	}
	switch two {
	case "||":
		l.advanceN(2)
		return l.token(token.DPIPE, "||", start), nil
	case "::":
		l.advanceN(2)
		return l.token(token.DCOLON, "::", start), nil
	case ":=":
		l.advanceN(2)
		return l.token(token.ASSIGN, ":=", start), nil
	case "=>":
		l.advanceN(2)
		return l.token(token.ARROW, "=>", start), nil
	case "<=":
		l.advanceN(2)
		return l.token(token.LE, "<=", start), nil
	case ">=":
		l.advanceN(2)
		return l.token(token.GE, ">=", start), nil
	case "!=", "<>":
		l.advanceN(2)
		return l.token(token.NE, two, start), nil
	}

	c := l.ch()
	var t token.TokenType
	switch c {
	case '+':
		t = token.PLUS
	case '-':
		t = token.MINUS
	case '*':
		t = token.STAR
	case '/':
		t = token.SLASH
	case '%':
		t = token.PERCENT
	case '=':
		t = token.EQ
	case '<':
		t = token.LT
	case '>':
		t = token.GT
	case '.':
		t = token.DOT
	case ',':
		t = token.COMMA
	case ':':
		t = token.COLON
	case ';':
		t = token.SEMICOLON
	case '(':
		t = token.LPAREN
	case ')':
		t = token.RPAREN
	case '[':
		t = token.LBRACKET
	case ']':
		t = token.RBRACKET
	default:
		return token.Token{}, &LexError{Msg: "unexpected character " + string(c), Offset: l.offset}
	}
	l.advance()
	return l.token(t, string(c), start), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
