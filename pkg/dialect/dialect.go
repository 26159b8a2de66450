// Package dialect provides SQL dialect configuration for the lexer,
// parser, and renderer.
//
// A Dialect is a read-only capability provider: the parser never
// branches on the dialect name, only on capability queries. Concrete
// dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/token"
)

// Features is the set of grammar toggles a dialect may enable. The
// parser consults these at decision points; everything defaults off.
type Features struct {
	// OuterJoinMarker accepts the legacy (+) postfix on column refs.
	OuterJoinMarker bool
	// SemiStructuredAccess accepts colon/dot/bracket path access.
	SemiStructuredAccess bool
	// SingleSubqueryFuncArg accepts f(SELECT ...) without inner parens.
	SingleSubqueryFuncArg bool
	// TrailingCommas accepts a trailing comma in the projection list.
	TrailingCommas bool
	// DoubleDotNotation accepts db..tbl table names.
	DoubleDotNotation bool
	// AsofJoin accepts ASOF JOIN ... MATCH_CONDITION (...).
	AsofJoin bool
	// NestedJoinsWithoutParens accepts two pending ON clauses.
	NestedJoinsWithoutParens bool
	// ConnectByRoot accepts the CONNECT_BY_ROOT prefix operator.
	ConnectByRoot bool
	// DollarQuotedStrings accepts $$...$$ string literals.
	DollarQuotedStrings bool
	// StageReferences accepts @stage/path object references.
	StageReferences bool
	// IdentifierFunction accepts IDENTIFIER(...) object name parts.
	IdentifierFunction bool
	// DollarInIdent accepts $ inside bare identifiers.
	DollarInIdent bool
	// TopN accepts SELECT TOP n.
	TopN bool
	// TimeTravel accepts AT(...) and BEFORE(...) on table references.
	TimeTravel bool
}

// Dialect is an immutable dialect description. Build one with a
// Builder; all query methods are safe for concurrent use.
type Dialect struct {
	Name string

	quoteChars      []byte
	commentPrefixes []string
	dynamicKw       map[string]token.TokenType
	precedence      map[token.TokenType]int
	features        Features

	reservedSelectAlias map[string]struct{}
	reservedTableAlias  map[string]struct{}
	reservedColumnAlias map[string]struct{}
}

// Features returns the grammar toggles for this dialect.
func (d *Dialect) Features() Features {
	return d.features
}

// QuoteChars returns the accepted identifier quote characters.
func (d *Dialect) QuoteChars() []byte {
	return d.quoteChars
}

// IsQuoteChar returns true if c opens a quoted identifier.
func (d *Dialect) IsQuoteChar(c byte) bool {
	for _, q := range d.quoteChars {
		if q == c {
			return true
		}
	}
	return false
}

// CommentPrefixes returns the line comment introducers.
func (d *Dialect) CommentPrefixes() []string {
	return d.commentPrefixes
}

// KeywordToken resolves a word to its keyword token. Builtin keywords
// resolve for every dialect; dialect keywords only when registered.
func (d *Dialect) KeywordToken(word string) (token.TokenType, bool) {
	lower := strings.ToLower(word)
	if t := token.LookupIdent(lower); t != token.IDENT {
		return t, true
	}
	if t, ok := d.dynamicKw[lower]; ok {
		return t, true
	}
	return token.IDENT, false
}

// Precedence returns the infix precedence of a token, or
// PrecedenceNone when the token is not an operator here.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return PrecedenceNone
}

// ReservedForSelectAlias reports whether a word cannot be used as a
// bare projection alias.
func (d *Dialect) ReservedForSelectAlias(word string) bool {
	_, ok := d.reservedSelectAlias[strings.ToLower(word)]
	return ok
}

// ReservedForTableAlias reports whether a word cannot be used as a
// bare table alias.
func (d *Dialect) ReservedForTableAlias(word string) bool {
	_, ok := d.reservedTableAlias[strings.ToLower(word)]
	return ok
}

// ReservedForColumnAlias reports whether a word cannot be used as a
// bare column alias in column lists.
func (d *Dialect) ReservedForColumnAlias(word string) bool {
	_, ok := d.reservedColumnAlias[strings.ToLower(word)]
	return ok
}

// Config is the declarative description a dialect package feeds to
// New. Build() auto-wires keywords and operator precedence from it.
type Config struct {
	Name            string
	QuoteChars      string
	CommentPrefixes []string

	// Keywords are dialect keywords registered as dynamic tokens.
	Keywords []string

	ReservedForSelectAlias []string
	ReservedForTableAlias  []string
	ReservedForColumnAlias []string

	Features Features
}

// Builder constructs a Dialect.
type Builder struct {
	dialect *Dialect
	config  *Config
}

// New creates a dialect builder from a Config.
func New(cfg *Config) *Builder {
	return &Builder{
		config: cfg,
		dialect: &Dialect{
			Name:                cfg.Name,
			quoteChars:          []byte(cfg.QuoteChars),
			commentPrefixes:     append([]string(nil), cfg.CommentPrefixes...),
			dynamicKw:           make(map[string]token.TokenType),
			precedence:          defaultPrecedence(),
			features:            cfg.Features,
			reservedSelectAlias: wordSet(cfg.ReservedForSelectAlias),
			reservedTableAlias:  wordSet(cfg.ReservedForTableAlias),
			reservedColumnAlias: wordSet(cfg.ReservedForColumnAlias),
		},
	}
}

// AddKeyword registers a dynamic keyword with an explicit token.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	return b
}

// AddPrecedence overrides the precedence of an operator token.
func (b *Builder) AddPrecedence(t token.TokenType, p int) *Builder {
	b.dialect.precedence[t] = p
	return b
}

// Build finalizes the dialect, wiring Config keywords through the
// global token registry and assigning operator precedence to the
// dialect comparison keywords.
func (b *Builder) Build() *Dialect {
	for _, kw := range b.config.Keywords {
		t, ok := token.LookupDynamicKeyword(kw)
		if !ok {
			t = token.Register(kw)
		}
		b.dialect.dynamicKw[strings.ToLower(kw)] = t

		switch strings.ToUpper(kw) {
		case "ILIKE", "RLIKE":
			b.dialect.precedence[t] = PrecedenceComparison
		}
	}
	return b.dialect
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
