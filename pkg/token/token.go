// Package token defines the lexical tokens for SQL parsing.
//
// Core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific tokens are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	WS      // whitespace run
	COMMENT // line or block comment, delimiters included

	// Literals
	IDENT       // identifier, quoted or bare
	NUMBER      // 123, 45.67, 1e10
	STRING      // 'hello' or $$hello$$
	PLACEHOLDER // ?
	ATIDENT     // @stage/path object reference

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	COLON     // :
	DCOLON    // ::
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	ARROW     // =>
	ASSIGN    // :=

	// Keywords (alphabetical)
	ALL
	ALTER
	AND
	AS
	ASC
	BEGIN
	BETWEEN
	BY
	CASE
	CAST
	COPY
	CREATE
	CROSS
	CURRENT
	DECLARE
	DESC
	DISTINCT
	DROP
	ELSE
	END
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FILTER
	FIRST
	FOLLOWING
	FOR
	FROM
	FULL
	GRANT
	GROUP
	HAVING
	IF
	IN
	INNER
	INTERSECT
	INTO
	IS
	JOIN
	LAST
	LATERAL
	LEFT
	LIKE
	LIMIT
	NATURAL
	NEXT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	RANGE
	RECURSIVE
	REPLACE
	REVOKE
	RIGHT
	ROW
	ROWS
	SELECT
	SET
	SHOW
	TABLE
	THEN
	TO
	TOP
	TRUE
	UNBOUNDED
	UNION
	USE
	USING
	VALUES
	VIEW
	WHEN
	WHERE
	WITH
	WITHIN

	keywordEnd

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	WS:      "WS",
	COMMENT: "COMMENT",

	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	PLACEHOLDER: "?",
	ATIDENT:     "ATIDENT",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	COLON:     ":",
	DCOLON:    "::",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	ARROW:     "=>",
	ASSIGN:    ":=",

	ALL:       "ALL",
	ALTER:     "ALTER",
	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BEGIN:     "BEGIN",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	COPY:      "COPY",
	CREATE:    "CREATE",
	CROSS:     "CROSS",
	CURRENT:   "CURRENT",
	DECLARE:   "DECLARE",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	DROP:      "DROP",
	ELSE:      "ELSE",
	END:       "END",
	EXCEPT:    "EXCEPT",
	EXISTS:    "EXISTS",
	FALSE:     "FALSE",
	FETCH:     "FETCH",
	FILTER:    "FILTER",
	FIRST:     "FIRST",
	FOLLOWING: "FOLLOWING",
	FOR:       "FOR",
	FROM:      "FROM",
	FULL:      "FULL",
	GRANT:     "GRANT",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IF:        "IF",
	IN:        "IN",
	INNER:     "INNER",
	INTERSECT: "INTERSECT",
	INTO:      "INTO",
	IS:        "IS",
	JOIN:      "JOIN",
	LAST:      "LAST",
	LATERAL:   "LATERAL",
	LEFT:      "LEFT",
	LIKE:      "LIKE",
	LIMIT:     "LIMIT",
	NATURAL:   "NATURAL",
	NEXT:      "NEXT",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OFFSET:    "OFFSET",
	ON:        "ON",
	ONLY:      "ONLY",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	PRECEDING: "PRECEDING",
	RANGE:     "RANGE",
	RECURSIVE: "RECURSIVE",
	REPLACE:   "REPLACE",
	REVOKE:    "REVOKE",
	RIGHT:     "RIGHT",
	ROW:       "ROW",
	ROWS:      "ROWS",
	SELECT:    "SELECT",
	SET:       "SET",
	SHOW:      "SHOW",
	TABLE:     "TABLE",
	THEN:      "THEN",
	TO:        "TO",
	TOP:       "TOP",
	TRUE:      "TRUE",
	UNBOUNDED: "UNBOUNDED",
	UNION:     "UNION",
	USE:       "USE",
	USING:     "USING",
	VALUES:    "VALUES",
	VIEW:      "VIEW",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WITH:      "WITH",
	WITHIN:    "WITHIN",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":       ALL,
	"alter":     ALTER,
	"and":       AND,
	"as":        AS,
	"asc":       ASC,
	"begin":     BEGIN,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"cast":      CAST,
	"copy":      COPY,
	"create":    CREATE,
	"cross":     CROSS,
	"current":   CURRENT,
	"declare":   DECLARE,
	"desc":      DESC,
	"distinct":  DISTINCT,
	"drop":      DROP,
	"else":      ELSE,
	"end":       END,
	"except":    EXCEPT,
	"exists":    EXISTS,
	"false":     FALSE,
	"fetch":     FETCH,
	"filter":    FILTER,
	"first":     FIRST,
	"following": FOLLOWING,
	"for":       FOR,
	"from":      FROM,
	"full":      FULL,
	"grant":     GRANT,
	"group":     GROUP,
	"having":    HAVING,
	"if":        IF,
	"in":        IN,
	"inner":     INNER,
	"intersect": INTERSECT,
	"into":      INTO,
	"is":        IS,
	"join":      JOIN,
	"last":      LAST,
	"lateral":   LATERAL,
	"left":      LEFT,
	"like":      LIKE,
	"limit":     LIMIT,
	"natural":   NATURAL,
	"next":      NEXT,
	"not":       NOT,
	"null":      NULL,
	"nulls":     NULLS,
	"offset":    OFFSET,
	"on":        ON,
	"only":      ONLY,
	"or":        OR,
	"order":     ORDER,
	"outer":     OUTER,
	"over":      OVER,
	"partition": PARTITION,
	"preceding": PRECEDING,
	"range":     RANGE,
	"recursive": RECURSIVE,
	"replace":   REPLACE,
	"revoke":    REVOKE,
	"right":     RIGHT,
	"row":       ROW,
	"rows":      ROWS,
	"select":    SELECT,
	"set":       SET,
	"show":      SHOW,
	"table":     TABLE,
	"then":      THEN,
	"to":        TO,
	"top":       TOP,
	"true":      TRUE,
	"unbounded": UNBOUNDED,
	"union":     UNION,
	"use":       USE,
	"using":     USING,
	"values":    VALUES,
	"view":      VIEW,
	"when":      WHEN,
	"where":     WHERE,
	"with":      WITH,
	"within":    WITHIN,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a builtin keyword, the keyword token type is
// returned. Otherwise IDENT is returned. Dialect-registered keywords
// are resolved separately via Dialect.KeywordToken.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t < keywordEnd
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= ASSIGN
}

// IsTrivia returns true for tokens the parser skips over.
func IsTrivia(t TokenType) bool {
	return t == WS || t == COMMENT
}

// StringStyle records how a string literal was written in the source.
type StringStyle byte

const (
	// SingleQuoted is the standard '...' form.
	SingleQuoted StringStyle = iota
	// DollarQuoted is the $$...$$ form.
	DollarQuoted
)

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string // processed text: string content, identifier without quotes
	Quote   byte   // identifier quote char, 0 for bare identifiers
	Style   StringStyle
	Span    Span
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}
