package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-labs/frostql/pkg/dialects/generic"
	"github.com/frostline-labs/frostql/pkg/dialects/snowflake"
	"github.com/frostline-labs/frostql/pkg/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := newLexer(src, snowflake.New(), false).lex()
	require.NoError(t, err)
	return toks
}

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestLexBasicTokens(t *testing.T) {
	toks := lexAll(t, "SELECT a, 1.5 FROM t")
	assert.Equal(t, []token.TokenType{
		token.SELECT, token.WS, token.IDENT, token.COMMA, token.WS,
		token.NUMBER, token.WS, token.FROM, token.WS, token.IDENT,
		token.EOF,
	}, types(toks))
	assert.Equal(t, "1.5", toks[5].Literal)
}

func TestLexKeywordKeepsCasing(t *testing.T) {
	toks := lexAll(t, "select")
	assert.Equal(t, token.SELECT, toks[0].Type)
	assert.Equal(t, "select", toks[0].Literal)
}

func TestLexLineComments(t *testing.T) {
	toks := lexAll(t, "-- one\nSELECT 1 // two")
	assert.Equal(t, token.COMMENT, toks[0].Type)
	assert.Equal(t, "-- one", toks[0].Literal)
	last := toks[len(toks)-2]
	assert.Equal(t, token.COMMENT, last.Type)
	assert.Equal(t, "// two", last.Literal)

	// the double-slash form is not a comment everywhere
	gtoks, err := newLexer("SELECT 1 // 2", generic.New(), false).lex()
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{
		token.SELECT, token.WS, token.NUMBER, token.WS, token.SLASH,
		token.SLASH, token.WS, token.NUMBER, token.EOF,
	}, types(gtoks))
}

func TestLexNestedBlockComment(t *testing.T) {
	toks := lexAll(t, "/* a /* b */ c */ SELECT 1")
	assert.Equal(t, token.COMMENT, toks[0].Type)
	assert.Equal(t, "/* a /* b */ c */", toks[0].Literal)

	_, err := newLexer("/* open", snowflake.New(), false).lex()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "unterminated block comment", lexErr.Msg)
}

func TestLexStringDoubling(t *testing.T) {
	toks := lexAll(t, "'it''s'")
	require.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "it's", toks[0].Literal)
	assert.Equal(t, token.SingleQuoted, toks[0].Style)
}

func TestLexStringEscapes(t *testing.T) {
	raw, err := newLexer(`'a\nb'`, snowflake.New(), false).lex()
	require.NoError(t, err)
	assert.Equal(t, `a\nb`, raw[0].Literal)

	cooked, err := newLexer(`'a\nb'`, snowflake.New(), true).lex()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", cooked[0].Literal)
}

func TestLexDollarString(t *testing.T) {
	toks := lexAll(t, "$$he said 'hi'$$")
	require.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "he said 'hi'", toks[0].Literal)
	assert.Equal(t, token.DollarQuoted, toks[0].Style)

	tagged := lexAll(t, "$tag$body$tag$")
	assert.Equal(t, "body", tagged[0].Literal)

	_, err := newLexer("$$abc$$", generic.New(), false).lex()
	require.Error(t, err)
}

func TestLexQuotedIdent(t *testing.T) {
	toks := lexAll(t, `"my ""col"""`)
	require.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, `my "col"`, toks[0].Literal)
	assert.Equal(t, byte('"'), toks[0].Quote)

	gtoks, err := newLexer("`col`", generic.New(), false).lex()
	require.NoError(t, err)
	assert.Equal(t, byte('`'), gtoks[0].Quote)
}

func TestLexStageReference(t *testing.T) {
	toks := lexAll(t, "@my_stage/path/file.csv")
	require.Equal(t, token.ATIDENT, toks[0].Type)
	assert.Equal(t, "@my_stage/path/file.csv", toks[0].Literal)

	_, err := newLexer("@s", generic.New(), false).lex()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexOperators(t *testing.T) {
	toks := lexAll(t, "a || b :: c := d => e <> f")
	var ops []token.TokenType
	for _, tok := range toks {
		if token.IsOperator(tok.Type) {
			ops = append(ops, tok.Type)
		}
	}
	assert.Equal(t, []token.TokenType{
		token.DPIPE, token.DCOLON, token.ASSIGN, token.ARROW, token.NE,
	}, ops)
}

func TestLexNumbers(t *testing.T) {
	for _, src := range []string{"0", "42", "3.14", "1e10", "2.5E-3"} {
		toks := lexAll(t, src)
		require.Equal(t, token.NUMBER, toks[0].Type, src)
		assert.Equal(t, src, toks[0].Literal)
	}
}

func TestLexPositions(t *testing.T) {
	toks := lexAll(t, "SELECT\n  a")
	ident := toks[len(toks)-2]
	require.Equal(t, token.IDENT, ident.Type)
	assert.Equal(t, 2, ident.Span.Start.Line)
	assert.Equal(t, 3, ident.Span.Start.Column)
}
