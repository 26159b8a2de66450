package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/dialects/generic"
	"github.com/frostline-labs/frostql/pkg/dialects/snowflake"
	"github.com/frostline-labs/frostql/pkg/render"
)

// roundTrip asserts that sql parses and renders back to itself.
func roundTrip(t *testing.T, d *dialect.Dialect, sql string) {
	t.Helper()
	stmts, err := Parse(sql, d)
	require.NoError(t, err, sql)
	require.Len(t, stmts, 1, sql)
	assert.Equal(t, sql, render.Statement(stmts[0]), sql)
}

// rewrites asserts that in parses and renders to the canonical form.
func rewrites(t *testing.T, d *dialect.Dialect, in, want string) {
	t.Helper()
	stmts, err := Parse(in, d)
	require.NoError(t, err, in)
	require.Len(t, stmts, 1, in)
	assert.Equal(t, want, render.Statement(stmts[0]), in)
}

func TestSelectRoundTrip(t *testing.T) {
	d := generic.New()
	for _, sql := range []string{
		"SELECT 1",
		"SELECT a, b FROM t",
		"SELECT a AS x FROM t",
		"SELECT DISTINCT a FROM t",
		"SELECT * FROM t WHERE a = 1 AND b <> 2",
		"SELECT a FROM t GROUP BY a HAVING COUNT(*) > 1",
		"SELECT * FROM t ORDER BY a DESC NULLS LAST, b",
		"SELECT * FROM t LIMIT 10 OFFSET 5",
		"SELECT * FROM t FETCH FIRST 5 ROWS ONLY",
		"SELECT t.* FROM t",
		"SELECT t.a, u.b FROM t, u",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"WITH RECURSIVE x (n) AS (SELECT 1) SELECT * FROM x",
		"SELECT 1 UNION ALL SELECT 2",
		"SELECT 1 UNION SELECT 2 UNION SELECT 3",
		"SELECT 1 EXCEPT SELECT 2",
		"SELECT 1 INTERSECT SELECT 2",
		"VALUES (1, 2), (3, 4)",
		"SELECT * FROM (SELECT a FROM t) AS sub",
		"SELECT * FROM t WHERE a IN (SELECT b FROM u)",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u)",
	} {
		roundTrip(t, d, sql)
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	d := generic.New()
	for _, sql := range []string{
		"SELECT 1 + 2 * 3",
		"SELECT (1 + 2) * 3",
		"SELECT -1",
		"SELECT NOT a",
		"SELECT a || b || 'x'",
		"SELECT a IS NULL, b IS NOT NULL, c IS TRUE",
		"SELECT a BETWEEN 1 AND 10",
		"SELECT a NOT BETWEEN 1 AND 10",
		"SELECT a IN (1, 2, 3)",
		"SELECT a NOT IN ('x', 'y')",
		"SELECT a LIKE 'x%'",
		"SELECT a NOT LIKE 'x%'",
		"SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END",
		"SELECT CASE a WHEN 1 THEN 'x' WHEN 2 THEN 'y' END",
		"SELECT CAST(a AS INT)",
		"SELECT a::NUMBER(10, 2)",
		"SELECT NULL, TRUE, FALSE",
		"SELECT ?",
		"SELECT :1",
		"SELECT :name",
		"SELECT f(a, b)",
		"SELECT f(x => 1, y => 2)",
		"SELECT COUNT(*)",
		"SELECT COUNT(DISTINCT a)",
		"SELECT (a, b)",
		"SELECT TRIM(x)",
		"SELECT TRIM(LEADING 'x' FROM y)",
		"SELECT TRIM(x, 'ab')",
		"SELECT EXTRACT(YEAR FROM d)",
		"SELECT EXTRACT(YEAR, d)",
		"SELECT POSITION('a' IN b)",
		"SELECT 'it''s'",
	} {
		roundTrip(t, d, sql)
	}
}

func TestWindowFunctionRoundTrip(t *testing.T) {
	d := generic.New()
	for _, sql := range []string{
		"SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) FROM t",
		"SELECT SUM(a) OVER (ORDER BY b ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		"SELECT SUM(a) OVER (ROWS 2 PRECEDING) FROM t",
		"SELECT LAG(a) OVER (ORDER BY b) FROM t",
		"SELECT FIRST_VALUE(a IGNORE NULLS) OVER (ORDER BY b) FROM t",
		"SELECT COUNT(*) FILTER (WHERE a > 0) FROM t",
		"SELECT LISTAGG(a, ',') WITHIN GROUP (ORDER BY a) FROM t",
	} {
		roundTrip(t, d, sql)
	}
}

func TestJoinRoundTrip(t *testing.T) {
	d := generic.New()
	for _, sql := range []string{
		"SELECT * FROM t1 JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 INNER JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 LEFT JOIN t2 USING(id)",
		"SELECT * FROM t1 LEFT OUTER JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 RIGHT JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 FULL OUTER JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 CROSS JOIN t2",
		"SELECT * FROM t1 NATURAL JOIN t2",
		"SELECT * FROM (t1 JOIN t2 ON t1.id = t2.id) AS j",
		"SELECT * FROM t1 AS a JOIN t2 AS b ON a.id = b.id",
		"SELECT * FROM LATERAL (SELECT 1) AS x",
		"SELECT * FROM f(1) AS x",
	} {
		roundTrip(t, d, sql)
	}
}

func TestSnowflakeRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"SELECT v:a FROM t",
		"SELECT v:a.b[0] FROM t",
		"SELECT v:a:b FROM t",
		"SELECT v:a['key'] FROM t",
		"SELECT v:a::STRING FROM t",
		"SELECT t1.a = t2.b (+) FROM t1, t2",
		"SELECT * ILIKE '%id%' FROM t",
		"SELECT * EXCLUDE a FROM t",
		"SELECT * EXCLUDE (a, b) FROM t",
		"SELECT * EXCEPT (a) FROM t",
		"SELECT * REPLACE (a + 1 AS a) FROM t",
		"SELECT * RENAME a AS b FROM t",
		"SELECT * RENAME (a AS b, c AS d) FROM t",
		"SELECT t.* EXCLUDE a FROM t",
		"SELECT TOP 5 a FROM t",
		"SELECT a FROM db..t",
		"SELECT a FROM t QUALIFY ROW_NUMBER() OVER (ORDER BY a) = 1",
		"SELECT a ILIKE 'x%' FROM t",
		"SELECT a RLIKE 'x.*' FROM t",
		"SELECT a NOT ILIKE 'x%' FROM t",
		"SELECT CONNECT_BY_ROOT a FROM t",
		"SELECT ARRAY_AGG(SELECT a FROM t)",
		"SELECT * FROM IDENTIFIER('t1')",
		"SELECT * FROM db1.IDENTIFIER('t1')",
		"SELECT * FROM @my_stage",
		"SELECT * FROM @my_stage/path AS s",
		"SELECT * FROM TABLE(f(1)) AS x",
		"SELECT * FROM t1 ASOF JOIN t2 MATCH_CONDITION (t1.ts >= t2.ts) ON t1.id = t2.id",
		"SELECT * FROM a JOIN b JOIN c ON b.x = c.x ON a.y = b.y",
	} {
		roundTrip(t, d, sql)
	}
}

func TestTimeTravelRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"SELECT * FROM tbl AT(TIMESTAMP => '2024-12-15 00:00:00')",
		"SELECT * FROM tbl BEFORE(TIMESTAMP => '2024-12-15 00:00:00')",
		"SELECT * FROM tbl AT(OFFSET => -60)",
		"SELECT * FROM tbl AT(STATEMENT => '8e5d0ca9-005e-44e6-b858-a8f5b37c5726')",
		"SELECT * FROM tbl BEFORE(STATEMENT => '8e5d0ca9-005e-44e6-b858-a8f5b37c5726')",
		"SELECT * FROM tbl AT(STREAM => 's1')",
		"SELECT a FROM db1.s1.tbl AT(OFFSET => -3600) AS t WHERE t.a > 0",
	} {
		roundTrip(t, d, sql)
	}
}

func TestPivotRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"SELECT * FROM quarterly_sales PIVOT(SUM(amount) FOR quarter IN ('2023_Q1', '2023_Q2')) ORDER BY empid",
		"SELECT * FROM quarterly_sales PIVOT(SUM(amount) FOR quarter IN ('2023_Q1', '2023_Q2') DEFAULT ON NULL (0)) ORDER BY empid",
		"SELECT * FROM quarterly_sales PIVOT(SUM(amount) FOR quarter IN (SELECT DISTINCT quarter FROM ad_campaign_types_by_quarter WHERE television = TRUE ORDER BY quarter))",
		"SELECT * FROM quarterly_sales PIVOT(SUM(amount) FOR quarter IN (ANY ORDER BY quarter))",
		"SELECT * FROM sales_data PIVOT(SUM(total_sales) FOR fis_quarter IN (ANY))",
		"SELECT * FROM quarterly_sales PIVOT(SUM(amount) FOR quarter IN ('2023_Q1')) AS p",
		"SELECT * FROM monthly_sales UNPIVOT(sales FOR month IN (jan, feb, mar, apr))",
		"SELECT * FROM monthly_sales UNPIVOT(sales FOR month IN (jan, feb)) AS u",
	} {
		roundTrip(t, d, sql)
	}
}

func TestTableSampleRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"SELECT * FROM testtable SAMPLE (10)",
		"SELECT * FROM testtable TABLESAMPLE (10)",
		"SELECT * FROM testtable AS t TABLESAMPLE BERNOULLI (10)",
		"SELECT * FROM testtable TABLESAMPLE ROW (10)",
		"SELECT * FROM testtable TABLESAMPLE ROW (10 ROWS)",
		"SELECT * FROM testtable TABLESAMPLE BLOCK (3) SEED (82)",
		"SELECT * FROM testtable TABLESAMPLE SYSTEM (3) REPEATABLE (82)",
		"SELECT id FROM mytable TABLESAMPLE (10) REPEATABLE (1)",
		"SELECT id FROM mytable SAMPLE (10) SEED (1)",
	} {
		roundTrip(t, d, sql)
	}
}

func TestImplicitAliasKeywords(t *testing.T) {
	sf := snowflake.New()

	// clause keywords double as aliases when nothing follows that
	// could continue their own clause
	rewrites(t, sf, "SELECT 1 LIMIT", "SELECT 1 AS LIMIT")
	rewrites(t, sf, "SELECT 1 OFFSET", "SELECT 1 AS OFFSET")
	rewrites(t, sf, "SELECT 1 FETCH", "SELECT 1 AS FETCH")
	rewrites(t, sf, "SELECT 1 EXCEPT", "SELECT 1 AS EXCEPT")
	rewrites(t, sf, "SELECT 1 CLUSTER", "SELECT 1 AS CLUSTER")
	rewrites(t, sf, "SELECT 1 SORT", "SELECT 1 AS SORT")
	rewrites(t, sf, "SELECT 1 RETURNING", "SELECT 1 AS RETURNING")
	rewrites(t, sf, "SELECT * FROM tbl LIMIT", "SELECT * FROM tbl AS LIMIT")
	rewrites(t, sf, "SELECT * FROM tbl OFFSET", "SELECT * FROM tbl AS OFFSET")
	rewrites(t, sf, "SELECT * FROM tbl PIVOT", "SELECT * FROM tbl AS PIVOT")
	rewrites(t, sf, "SELECT * FROM tbl SAMPLE", "SELECT * FROM tbl AS SAMPLE")
	rewrites(t, sf, "SELECT * FROM tbl WINDOW", "SELECT * FROM tbl AS WINDOW")

	// with a value after them they stay clauses
	for _, sql := range []string{
		"SELECT 1 LIMIT 1",
		"SELECT 1 LIMIT ''",
		"SELECT 1 LIMIT NULL",
		"SELECT 1 OFFSET 2",
		"SELECT 1 EXCEPT SELECT 2",
		"SELECT * FROM tbl LIMIT 1",
		"SELECT * FROM tbl OFFSET 5",
		"SELECT * FROM tbl FETCH FIRST 3 ROWS ONLY",
	} {
		roundTrip(t, sf, sql)
	}

	// in item position the same words are plain column references
	roundTrip(t, sf, "SELECT 1, LIMIT")
	roundTrip(t, sf, "SELECT 1, EXCEPT")
	roundTrip(t, sf, "SELECT LIMIT FROM t")
	roundTrip(t, sf, "SELECT OFFSET FROM t")
	rewrites(t, sf, "SELECT * FROM tbl END", "SELECT * FROM tbl AS END")

	// hard-reserved words never become aliases
	for _, sql := range []string{
		"SELECT 1 FROM",
		"SELECT 1 WHERE",
		"SELECT 1 UNION",
		"SELECT * FROM tbl WHERE",
		"SELECT * FROM tbl GROUP",
	} {
		_, err := Parse(sql, sf)
		assert.Error(t, err, sql)
	}
}

func TestNormalization(t *testing.T) {
	g := generic.New()
	sf := snowflake.New()
	cases := []struct {
		d        *dialect.Dialect
		in, want string
	}{
		{g, "select a from t", "SELECT a FROM t"},
		{g, "SELECT a b FROM t", "SELECT a AS b FROM t"},
		{g, "SELECT * FROM t x", "SELECT * FROM t AS x"},
		{g, "SELECT * FROM t FETCH NEXT 5 ROWS ONLY", "SELECT * FROM t FETCH FIRST 5 ROWS ONLY"},
		{g, "SELECT * FROM t FETCH FIRST 5 ROW ONLY", "SELECT * FROM t FETCH FIRST 5 ROWS ONLY"},
		{g, "SELECT * FROM t OFFSET 5 ROWS", "SELECT * FROM t OFFSET 5"},
		{g, "SELECT ALL a FROM t", "SELECT a FROM t"},
		{g, "SELECT * FROM ((t1))", "SELECT * FROM t1"},
		{g, "SELECT * FROM (t1 a)", "SELECT * FROM t1 AS a"},
		{sf, "SELECT a, b, FROM t", "SELECT a, b FROM t"},
		{sf, "SELECT $$abc$$", "SELECT 'abc'"},
		{sf, "LS @s1", "LIST @s1"},
		{sf, "RM @s1", "REMOVE @s1"},
	}
	for _, tc := range cases {
		rewrites(t, tc.d, tc.in, tc.want)
	}
}

func TestCreateTableRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"CREATE TABLE t (a INT)",
		"CREATE OR REPLACE TABLE t (a INT NOT NULL, b NUMBER(10, 2) DEFAULT 0)",
		"CREATE TABLE IF NOT EXISTS t (a INT PRIMARY KEY, b STRING UNIQUE)",
		"CREATE TEMPORARY TABLE t (a INT)",
		"CREATE LOCAL TEMPORARY TABLE t (a INT)",
		"CREATE TRANSIENT TABLE t (a INT)",
		"CREATE TABLE t (id INT IDENTITY(1, 1), c STRING COLLATE 'utf8')",
		"CREATE TABLE t (a INT COMMENT 'key', b STRING MASKING POLICY p USING (b))",
		"CREATE TABLE t LIKE u",
		"CREATE TABLE t CLONE u",
		"CREATE TABLE t AS SELECT * FROM u",
		"CREATE TABLE t (a INT) CLUSTER BY (a)",
		"CREATE TABLE t (a INT) CHANGE_TRACKING=TRUE DATA_RETENTION_TIME_IN_DAYS=7",
		"CREATE TABLE t (a INT) COPY GRANTS COMMENT='c'",
		"CREATE TABLE t (a INT) WITH ROW ACCESS POLICY p ON (a)",
		"CREATE TABLE t (a INT) WITH TAG (env='prod')",
		"CREATE TABLE t (a INT) ON COMMIT PRESERVE ROWS",
		"CREATE ICEBERG TABLE t (a INT) EXTERNAL_VOLUME='v' CATALOG='SNOWFLAKE' BASE_LOCATION='loc'",
	} {
		roundTrip(t, d, sql)
	}
}

func TestDDLRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"CREATE VIEW v AS SELECT 1",
		"CREATE OR REPLACE VIEW v (a COMMENT 'x') COMMENT='v' AS SELECT a FROM t",
		"CREATE VIEW IF NOT EXISTS db1.s1.v AS SELECT * FROM t",
		"CREATE DATABASE db1",
		"CREATE DATABASE IF NOT EXISTS db1",
		"CREATE SCHEMA s1 CLONE s2",
		"CREATE STAGE s1 URL='s3://bucket/path'",
		"CREATE OR REPLACE TEMPORARY STAGE s1 URL='s3://b' CREDENTIALS=(AWS_KEY_ID='k') FILE_FORMAT=(TYPE=CSV)",
		"CREATE STAGE s1 STORAGE_INTEGRATION=myint ENCRYPTION=(TYPE='AWS_SSE_KMS')",
		"DROP TABLE t1",
		"DROP TABLE IF EXISTS t1, t2",
		"DROP VIEW v1",
		"DROP STAGE s1",
		"ALTER TABLE t SWAP WITH u",
		"ALTER TABLE IF EXISTS t RENAME TO u",
		"ALTER TABLE t CLUSTER BY (a, b)",
		"ALTER TABLE t SUSPEND RECLUSTER",
		"ALTER TABLE t DROP CLUSTERING KEY",
		"ALTER SESSION SET QUERY_TAG='x' TIMEZONE='UTC'",
		"ALTER SESSION UNSET QUERY_TAG",
	} {
		roundTrip(t, d, sql)
	}
}

func TestCopyIntoRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"COPY INTO t FROM @stage1",
		"COPY INTO t FROM @stage1/path AS s",
		"COPY INTO db1.s1.t FROM 's3://bucket/data'",
		"COPY INTO t FROM (SELECT a FROM @stage1)",
		"COPY INTO t FROM @s FILES = ('a.csv', 'b.csv')",
		"COPY INTO t FROM @s PATTERN = '.*csv'",
		"COPY INTO t FROM @s FILE_FORMAT = (TYPE=CSV SKIP_HEADER=1)",
		"COPY INTO t FROM @s COPY_OPTIONS = (ON_ERROR=CONTINUE)",
		"COPY INTO t FROM @s VALIDATION_MODE = RETURN_ERRORS",
		"COPY INTO @s FROM t PARTITION BY a",
		"COPY INTO t FROM 's3://b' URL='s3://b' FILE_FORMAT = (TYPE=JSON)",
	} {
		roundTrip(t, d, sql)
	}
}

func TestScriptingRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"DECLARE x INT",
		"DECLARE x INT DEFAULT 1",
		"DECLARE x := 7",
		"DECLARE a INT; b STRING DEFAULT 'x'",
		"DECLARE c CURSOR FOR SELECT a FROM t",
		"DECLARE r RESULTSET",
		"DECLARE r RESULTSET := (SELECT 1)",
		"DECLARE e EXCEPTION",
		"DECLARE e EXCEPTION (-20002, 'bad state')",
		"BEGIN",
		"BEGIN SELECT 1; END",
		"BEGIN SELECT 1; SELECT 2; END",
		"BEGIN SELECT 1; EXCEPTION WHEN my_exc THEN SELECT 2; END",
		"BEGIN SELECT 1; EXCEPTION WHEN a OR b THEN RAISE; END",
		"RAISE",
		"RAISE my_exc",
	} {
		roundTrip(t, d, sql)
	}
}

func TestShowRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"SHOW TABLES",
		"SHOW TERSE SCHEMAS IN DATABASE db1",
		"SHOW EXTERNAL TABLES",
		"SHOW TABLES HISTORY LIKE '%x%' IN SCHEMA db1.s1",
		"SHOW OBJECTS IN ACCOUNT",
		"SHOW VIEWS IN db1",
		"SHOW DATABASES STARTS WITH 'a' LIMIT 10 FROM 'b'",
		"SHOW COLUMNS IN TABLE t",
	} {
		roundTrip(t, d, sql)
	}
}

func TestGrantRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"GRANT SELECT ON TABLE t TO ROLE r",
		"GRANT SELECT, INSERT ON t TO ROLE r WITH GRANT OPTION",
		"GRANT ALL PRIVILEGES ON ACCOUNT TO ROLE admin",
		"GRANT CREATE SCHEMA ON DATABASE db TO ROLE r",
		"GRANT ROLE r1 TO USER u1",
		"GRANT ROLE r1 TO ROLE r2",
		"GRANT DATABASE ROLE dr1 TO ROLE r1",
		"GRANT USAGE ON WAREHOUSE wh TO ROLE r",
		"REVOKE SELECT ON TABLE t FROM ROLE r",
		"REVOKE ROLE r1 FROM USER u1",
		"REVOKE MONITOR USAGE ON ACCOUNT FROM ROLE r",
		"GRANT ROLE IDENTIFIER('r1') TO USER IDENTIFIER('u1')",
		"GRANT ROLE IDENTIFIER('r1') TO ROLE r2",
		"REVOKE ROLE IDENTIFIER('r1') FROM USER IDENTIFIER('u1')",
	} {
		roundTrip(t, d, sql)
	}
}

func TestUseRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"USE my_db",
		"USE DATABASE db1",
		"USE SCHEMA db1.s1",
		"USE ROLE r1",
		"USE WAREHOUSE wh1",
		"USE SECONDARY ROLES ALL",
		"USE SECONDARY ROLES NONE",
		"USE SECONDARY ROLES r1, r2",
	} {
		roundTrip(t, d, sql)
	}
}

func TestStageStatementsRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		"LIST @stage1",
		"REMOVE @stage1/path",
		"REMOVE @stage1 PATTERN='.*csv'",
	} {
		roundTrip(t, d, sql)
	}
}

func TestMultipleStatements(t *testing.T) {
	d := snowflake.New()
	stmts, err := Parse("SELECT 1; SELECT 2;; USE ROLE r1", d)
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, "SELECT 1; SELECT 2; USE ROLE r1", render.Statements(stmts))
}

func TestParseExprStandalone(t *testing.T) {
	d := generic.New()
	e, err := ParseExpr("1 + 2 * 3", d)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 * 3", render.Expr(e))

	_, err = ParseExpr("1 + ", d)
	require.Error(t, err)

	_, err = ParseExpr("1 2", d)
	require.EqualError(t, err, "Expected: end of statement, found: 2")
}

func TestCommentsAreSkipped(t *testing.T) {
	d := snowflake.New()
	rewrites(t, d, "SELECT /* hint */ a -- trailing\nFROM t", "SELECT a FROM t")
}

func TestQuotedIdentifierRoundTrip(t *testing.T) {
	d := snowflake.New()
	for _, sql := range []string{
		`SELECT "my col" FROM "My Table"`,
		`SELECT "a""b" FROM t`,
		`SELECT a AS "Alias" FROM t`,
	} {
		roundTrip(t, d, sql)
	}
}
