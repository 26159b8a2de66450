package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frostline-labs/frostql/pkg/ast"
)

func col(parts ...string) *ast.ColumnRef {
	ids := make([]ast.Ident, len(parts))
	for i, p := range parts {
		ids[i] = ast.Ident{Value: p}
	}
	return &ast.ColumnRef{Parts: ids}
}

func num(v string) *ast.NumberLit { return &ast.NumberLit{Value: v} }

func str(v string) *ast.StringLit { return &ast.StringLit{Value: v} }

func name(parts ...string) ast.ObjectName {
	n := make(ast.ObjectName, len(parts))
	for i, p := range parts {
		n[i] = ast.ObjectNamePart{Ident: ast.Ident{Value: p}}
	}
	return n
}

func selectStar(from string) *ast.Query {
	return &ast.Query{Body: &ast.Select{
		Items: []ast.SelectItem{{Wildcard: true}},
		From:  []ast.TableRef{&ast.Table{Name: name(from)}},
	}}
}

func TestExprRendering(t *testing.T) {
	cases := []struct {
		expr ast.Expr
		want string
	}{
		{&ast.BinaryExpr{Left: num("1"), Op: "+", Right: num("2")}, "1 + 2"},
		{&ast.UnaryExpr{Op: "-", Operand: col("x")}, "-x"},
		{&ast.UnaryExpr{Op: "NOT", Operand: col("x")}, "NOT x"},
		{&ast.IsExpr{Expr: col("x"), Not: true, What: "NULL"}, "x IS NOT NULL"},
		{&ast.CastExpr{Expr: col("x"), Type: ast.DataType{Name: "INT"}, Double: true}, "x::INT"},
		{&ast.CastExpr{Expr: col("x"), Type: ast.DataType{Name: "VARCHAR", Args: []ast.Expr{num("10")}}}, "CAST(x AS VARCHAR(10))"},
		{&ast.BetweenExpr{Expr: col("x"), Low: num("1"), High: num("9")}, "x BETWEEN 1 AND 9"},
		{&ast.LikeExpr{Expr: col("x"), Op: "ILIKE", Pattern: str("a%")}, "x ILIKE 'a%'"},
		{&ast.InList{Expr: col("x"), Not: true, List: []ast.Expr{num("1"), num("2")}}, "x NOT IN (1, 2)"},
		{&ast.TupleExpr{Items: []ast.Expr{num("1"), num("2")}}, "(1, 2)"},
		{&ast.OuterJoinExpr{Expr: col("t", "a")}, "t.a (+)"},
		{&ast.ConnectByRoot{Expr: col("x")}, "CONNECT_BY_ROOT x"},
		{str("it's"), "'it''s'"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Expr(tc.expr))
	}
}

func TestPathAccessRendering(t *testing.T) {
	e := &ast.PathAccess{
		Root: col("v"),
		Steps: []ast.PathStep{
			{Kind: ast.PathColon, Key: ast.Ident{Value: "a"}},
			{Kind: ast.PathBracket, Index: num("0")},
			{Kind: ast.PathDot, Key: ast.Ident{Value: "b"}},
		},
	}
	assert.Equal(t, "v:a[0].b", Expr(e))
}

func TestFuncCallRendering(t *testing.T) {
	f := &ast.FuncCall{
		Name: name("count"),
		Args: []ast.FuncArg{{Value: &ast.Star{}}},
		Over: &ast.WindowSpec{
			PartitionBy: []ast.Expr{col("a")},
			OrderBy:     []ast.OrderByItem{{Expr: col("b"), Direction: "DESC"}},
		},
	}
	assert.Equal(t, "count(*) OVER (PARTITION BY a ORDER BY b DESC)", Expr(f))

	named := &ast.FuncCall{
		Name: name("f"),
		Args: []ast.FuncArg{{Name: ast.Ident{Value: "x"}, Value: num("1")}},
	}
	assert.Equal(t, "f(x => 1)", Expr(named))
}

func TestQueryRendering(t *testing.T) {
	q := selectStar("t")
	q.Body.(*ast.Select).Where = &ast.BinaryExpr{Left: col("a"), Op: "=", Right: num("1")}
	q.OrderBy = []ast.OrderByItem{{Expr: col("a"), Nulls: "FIRST"}}
	q.Limit = num("10")
	assert.Equal(t, "SELECT * FROM t WHERE a = 1 ORDER BY a NULLS FIRST LIMIT 10", Statement(q))
}

func TestFetchNormalization(t *testing.T) {
	q := selectStar("t")
	q.Fetch = &ast.Fetch{Quantity: num("5")}
	assert.Equal(t, "SELECT * FROM t FETCH FIRST 5 ROWS ONLY", Statement(q))

	q.Fetch = &ast.Fetch{}
	assert.Equal(t, "SELECT * FROM t FETCH FIRST ROWS ONLY", Statement(q))
}

func TestWildcardOptionsOrder(t *testing.T) {
	q := &ast.Query{Body: &ast.Select{
		Items: []ast.SelectItem{{
			Wildcard: true,
			Options: &ast.WildcardOptions{
				ILike:   str("a%"),
				Exclude: []ast.Ident{{Value: "b"}},
				Rename:  []ast.RenameItem{{From: ast.Ident{Value: "c"}, To: ast.Ident{Value: "d"}}},
			},
		}},
		From: []ast.TableRef{&ast.Table{Name: name("t")}},
	}}
	assert.Equal(t, "SELECT * ILIKE 'a%' EXCLUDE b RENAME c AS d FROM t", Statement(q))
}

func TestJoinRendering(t *testing.T) {
	j := &ast.Join{
		Left:  &ast.Table{Name: name("a")},
		Right: &ast.Table{Name: name("b")},
		Type:  "LEFT",
		Using: []ast.Ident{{Value: "id"}},
	}
	q := &ast.Query{Body: &ast.Select{
		Items: []ast.SelectItem{{Wildcard: true}},
		From:  []ast.TableRef{j},
	}}
	assert.Equal(t, "SELECT * FROM a LEFT JOIN b USING(id)", Statement(q))
}

func TestCreateTableRendering(t *testing.T) {
	retention := int64(5)
	comment := "c"
	s := &ast.CreateTable{
		OrReplace: true,
		Name:      name("t"),
		Columns: []ast.ColumnDef{
			{Name: ast.Ident{Value: "id"}, Type: ast.DataType{Name: "INT"}, Options: []ast.ColumnOption{&ast.NotNullOption{}}},
			{Name: ast.Ident{Value: "v"}, Type: ast.DataType{Name: "VARCHAR", Args: []ast.Expr{num("16")}}},
		},
		ClusterBy:               []ast.Expr{col("id")},
		DataRetentionTimeInDays: &retention,
		Comment:                 &comment,
	}
	assert.Equal(t,
		"CREATE OR REPLACE TABLE t (id INT NOT NULL, v VARCHAR(16)) CLUSTER BY (id) DATA_RETENTION_TIME_IN_DAYS=5 COMMENT='c'",
		Statement(s))
}

func TestCreateStageRendering(t *testing.T) {
	url := "s3://bucket/path"
	s := &ast.CreateStage{
		Name:   name("st"),
		Params: &ast.StageParams{URL: &url},
		FileFormat: []ast.KeyValueOption{
			{Key: "TYPE", Kind: ast.OptEnum, Value: "CSV"},
		},
	}
	assert.Equal(t, "CREATE STAGE st URL='s3://bucket/path' FILE_FORMAT=(TYPE=CSV)", Statement(s))
}

func TestCopyIntoRendering(t *testing.T) {
	pattern := ".*\\.csv"
	s := &ast.CopyInto{
		Target:  ast.CopyTarget{Name: name("t")},
		From:    &ast.CopyTarget{Name: ast.ObjectName{{Ident: ast.Ident{Value: "@st"}}}},
		Pattern: &pattern,
		FileFormat: []ast.KeyValueOption{
			{Key: "TYPE", Kind: ast.OptEnum, Value: "CSV"},
		},
	}
	assert.Equal(t, "COPY INTO t FROM @st PATTERN = '.*\\.csv' FILE_FORMAT = (TYPE=CSV)", Statement(s))
}

func TestUseSecondaryRoles(t *testing.T) {
	assert.Equal(t, "USE SECONDARY ROLES ALL", Statement(&ast.Use{Secondary: "ALL"}))
	assert.Equal(t, "USE SECONDARY ROLES r1, r2", Statement(&ast.Use{
		Secondary: "LIST",
		Roles:     []ast.Ident{{Value: "r1"}, {Value: "r2"}},
	}))
}

func TestStatementsJoined(t *testing.T) {
	out := Statements([]ast.Statement{selectStar("a"), selectStar("b")})
	assert.Equal(t, "SELECT * FROM a; SELECT * FROM b", out)
}

func TestIdentQuoting(t *testing.T) {
	q := &ast.Query{Body: &ast.Select{
		Items: []ast.SelectItem{{Expr: &ast.ColumnRef{Parts: []ast.Ident{{Value: `we"ird`, Quote: '"'}}}}},
	}}
	assert.Equal(t, `SELECT "we""ird"`, Statement(q))
}
