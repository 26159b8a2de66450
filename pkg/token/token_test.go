package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"select", SELECT},
		{"from", FROM},
		{"qualify", IDENT}, // dialect keyword, not builtin
		{"my_table", IDENT},
		{"create", CREATE},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LookupIdent(tt.input), "LookupIdent(%q)", tt.input)
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "||", DPIPE.String())
	assert.Equal(t, "::", DCOLON.String())
	assert.Equal(t, "EOF", EOF.String())
}

func TestRegisterDynamic(t *testing.T) {
	tok := Register("FROBNICATE")
	require.True(t, IsDynamic(tok))
	assert.Equal(t, "FROBNICATE", tok.String())

	got, ok := LookupDynamicKeyword("FROBNICATE")
	require.True(t, ok)
	assert.Equal(t, tok, got)

	assert.Equal(t, tok, Register("FROBNICATE"))

	_, ok = LookupDynamicKeyword("NO_SUCH_KEYWORD")
	assert.False(t, ok)
}

func TestClassification(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.True(t, IsKeyword(WITHIN))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(PLUS))

	assert.True(t, IsOperator(DPIPE))
	assert.True(t, IsOperator(ASSIGN))
	assert.False(t, IsOperator(SELECT))

	assert.True(t, IsTrivia(WS))
	assert.True(t, IsTrivia(COMMENT))
	assert.False(t, IsTrivia(IDENT))
}

func TestSpanContains(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 1, Column: 7, Offset: 6},
	}
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
	assert.True(t, s.IsValid())
}
