package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/dialects/generic"
	"github.com/frostline-labs/frostql/pkg/dialects/snowflake"
)

func TestErrorMessages(t *testing.T) {
	g := generic.New()
	sf := snowflake.New()
	cases := []struct {
		d    *dialect.Dialect
		sql  string
		want string
	}{
		{sf, "SELECT a:42", "Expected: variant object key name, found: 42"},
		{sf, "SELECT * ILIKE 42 FROM t", "Expected: ilike pattern, found: 42"},
		{sf, "SELECT * ILIKE '%id%' EXCLUDE col_z FROM data_table", "Expected: end of statement, found: EXCLUDE"},
		{sf, "CREATE TABLE IDENTIFIER('db1').IDENTIFIER('sc1').IDENTIFIER('tbl') (id INT)", "only one IDENTIFIER() part is allowed in an object name"},
		{sf, "SELECT * FROM IDENTIFIER('db1')..IDENTIFIER('tbl')", "only one IDENTIFIER() part is allowed in an object name"},
		{sf, "CREATE LOCAL GLOBAL TEMP TABLE t (a INT)", "Expected: an SQL statement, found: LOCAL"},
		{sf, "CREATE GLOBAL LOCAL TEMP TABLE t (a INT)", "Expected: an SQL statement, found: GLOBAL"},
		{sf, "CREATE TEMP TEMPORARY TABLE t (a INT)", "Expected: an object type after CREATE, found: TEMPORARY"},
		{sf, "CREATE TABLE my_table", "unexpected end of input"},
		{sf, "CREATE ICEBERG TABLE t (a INT)", "BASE_LOCATION is required for ICEBERG tables"},
		{sf, "CREATE TABLE t (a INT) LIKE u", "only one of a column list, LIKE, CLONE or AS query is allowed"},
		{sf, "SELECT * FROM (a b) c", "duplicate alias b"},
		{sf, "USE SCHEMA", "Expected: identifier, found: EOF"},
		{sf, "SELECT * FROM X.Y..", "Expected: identifier, found: ."},
		{sf, "SELECT * FROM X..Y..Z", "Expected: identifier, found: ."},
		{sf, "SELECT * FROM .X.Y", "Expected: identifier, found: ."},
		{g, "SELECT * FROM db..t", "Expected: identifier, found: ."},
		{sf, "DECLARE c1 CURSOR SELECT 1", "Expected: FOR, found: SELECT"},
		{sf, "SELECT 1 1", "Expected: end of statement, found: 1"},
		{sf, "SELECT a NOT 5", "Expected: IN, BETWEEN or LIKE after NOT, found: 5"},
		{sf, "ALTER SESSION SET", "expected at least one option"},
		{sf, "CREATE", "Expected: an object type after CREATE, found: EOF"},
		{sf, "FROB 1", "Expected: an SQL statement, found: FROB"},
		{sf, "SELECT", "Expected: an expression, found: EOF"},
		{sf, "SELECT CASE END", "Expected: an expression, found: END"},
		{g, "SELECT a, FROM t", "Expected: an expression, found: FROM"},
		{g, "SELECT a:b FROM t", "Expected: end of statement, found: :"},
	}
	for _, tc := range cases {
		_, err := Parse(tc.sql, tc.d)
		require.Error(t, err, tc.sql)
		assert.Equal(t, tc.want, err.Error(), tc.sql)
	}
}

func TestErrorKinds(t *testing.T) {
	sf := snowflake.New()

	_, err := Parse("SELECT a:42", sf)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "variant object key name", parseErr.Expected)
	assert.Equal(t, "42", parseErr.Found)

	_, err = Parse("CREATE TABLE my_table", sf)
	var gramErr *GrammarError
	require.ErrorAs(t, err, &gramErr)

	_, err = Parse("SELECT 'unterminated", sf)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestFoundQuotedIdentifier(t *testing.T) {
	sf := snowflake.New()
	_, err := Parse(`"%id"`, sf)
	require.Error(t, err)
	assert.Equal(t, `Expected: an SQL statement, found: "%id"`, err.Error())
}

func nestedParens(depth int) string {
	return "SELECT " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
}

func TestRecursionLimitDefault(t *testing.T) {
	d := generic.New()

	_, err := Parse(nestedParens(DefaultRecursionLimit-2), d)
	assert.NoError(t, err)

	_, err = Parse(nestedParens(DefaultRecursionLimit-1), d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecursionLimit))
}

func TestRecursionLimitOption(t *testing.T) {
	d := generic.New()

	_, err := Parse(nestedParens(23), d, WithRecursionLimit(25))
	assert.NoError(t, err)

	_, err = Parse(nestedParens(24), d, WithRecursionLimit(25))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecursionLimit))
}

func TestRecursionLimitSubqueries(t *testing.T) {
	d := generic.New()
	sql := "SELECT * FROM " + strings.Repeat("(SELECT * FROM ", 60) + "t" + strings.Repeat(")", 60)
	_, err := Parse(sql, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecursionLimit))
}

func TestDialectGating(t *testing.T) {
	g := generic.New()
	sf := snowflake.New()

	// feature-gated syntax parses only where the dialect enables it
	_, err := Parse("SELECT v:a FROM t", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT v:a FROM t", g)
	assert.Error(t, err)

	_, err = Parse("SELECT a = b (+) FROM t", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT a = b (+) FROM t", g)
	assert.Error(t, err)

	_, err = Parse("SELECT TOP 5 a FROM t", sf)
	assert.NoError(t, err)

	_, err = Parse("SELECT a FROM db..t", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT a FROM db..t", g)
	assert.Error(t, err)

	_, err = Parse("SELECT a, FROM t", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT a, FROM t", g)
	assert.Error(t, err)

	_, err = Parse("SELECT * FROM @s1", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT * FROM @s1", g)
	assert.Error(t, err)

	_, err = Parse("SELECT * FROM t AT(OFFSET => -60)", sf)
	assert.NoError(t, err)
	_, err = Parse("SELECT * FROM t AT(OFFSET => -60)", g)
	assert.Error(t, err)
}

func TestIlikeIsDialectScoped(t *testing.T) {
	// both dialects activate ILIKE, so it binds as an operator in each
	for _, d := range []*dialect.Dialect{generic.New(), snowflake.New()} {
		_, err := Parse("SELECT a ILIKE 'x%' FROM t", d)
		assert.NoError(t, err)
	}

	// RLIKE is only a keyword where registered; elsewhere it is a
	// plain identifier and lands in alias position
	stmts, err := Parse("SELECT a RLIKE FROM t", generic.New())
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}
