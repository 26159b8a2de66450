package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-labs/frostql/pkg/token"
)

func buildTestDialect() *Dialect {
	return New(&Config{
		Name:            "testdialect",
		QuoteChars:      `"`,
		CommentPrefixes: []string{"--"},
		Keywords:        []string{"ILIKE", "QUALIFY"},
		ReservedForTableAlias: []string{
			"where", "group", "order", "limit",
		},
		Features: Features{
			SemiStructuredAccess: true,
			TrailingCommas:       true,
		},
	}).Build()
}

func TestKeywordToken(t *testing.T) {
	d := buildTestDialect()

	tok, ok := d.KeywordToken("SELECT")
	require.True(t, ok)
	assert.Equal(t, token.SELECT, tok)

	tok, ok = d.KeywordToken("ilike")
	require.True(t, ok)
	assert.Equal(t, ILIKE, tok)

	_, ok = d.KeywordToken("rlike")
	assert.False(t, ok, "RLIKE is not registered for this dialect")

	_, ok = d.KeywordToken("my_column")
	assert.False(t, ok)
}

func TestPrecedence(t *testing.T) {
	d := buildTestDialect()

	assert.Equal(t, PrecedenceOr, d.Precedence(token.OR))
	assert.Equal(t, PrecedenceMulDiv, d.Precedence(token.STAR))
	assert.Equal(t, PrecedenceCast, d.Precedence(token.DCOLON))
	assert.Equal(t, PrecedenceComparison, d.Precedence(ILIKE))
	assert.Equal(t, PrecedenceNone, d.Precedence(token.COMMA))

	assert.Greater(t, d.Precedence(token.STAR), d.Precedence(token.PLUS))
	assert.Greater(t, PrecedenceUnarySign, d.Precedence(token.STAR))
}

func TestReservedWords(t *testing.T) {
	d := buildTestDialect()

	assert.True(t, d.ReservedForTableAlias("WHERE"))
	assert.True(t, d.ReservedForTableAlias("limit"))
	assert.False(t, d.ReservedForTableAlias("value"))
	assert.False(t, d.ReservedForSelectAlias("where"), "separate list, not configured")
}

func TestQuoteChars(t *testing.T) {
	d := buildTestDialect()

	assert.True(t, d.IsQuoteChar('"'))
	assert.False(t, d.IsQuoteChar('`'))
	assert.Equal(t, []byte(`"`), d.QuoteChars())
}

func TestRegistry(t *testing.T) {
	d := buildTestDialect()
	Register(d)

	got, ok := Get("TestDialect")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = Get("no-such-dialect")
	assert.False(t, ok)

	assert.Contains(t, Names(), "testdialect")
}

func TestFeatures(t *testing.T) {
	d := buildTestDialect()

	f := d.Features()
	assert.True(t, f.SemiStructuredAccess)
	assert.True(t, f.TrailingCommas)
	assert.False(t, f.OuterJoinMarker)
	assert.False(t, f.AsofJoin)
}
