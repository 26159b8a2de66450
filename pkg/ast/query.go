package ast

// Query is a full query: optional WITH prefix, a body, and trailing
// ordering clauses. Queries appear as statements, subqueries, CTE
// bodies, and view definitions.
type Query struct {
	With    *With
	Body    SetExpr
	OrderBy []OrderByItem
	Limit   Expr
	Offset  Expr
	Fetch   *Fetch
}

// With is the WITH [RECURSIVE] cte, ... prefix.
type With struct {
	Recursive bool
	CTEs      []CTE
}

// CTE is one common table expression.
type CTE struct {
	Name    Ident
	Columns []Ident
	Query   *Query
}

// Fetch is the FETCH clause. All accepted spellings normalize to
// FETCH FIRST n ROWS ONLY; a nil Quantity means no count was given.
type Fetch struct {
	Quantity Expr
}

// OrderByItem is one ORDER BY element.
type OrderByItem struct {
	Expr      Expr
	Direction string // "", "ASC", "DESC"
	Nulls     string // "", "FIRST", "LAST"
}

// SetOp combines two query bodies with UNION, EXCEPT, or INTERSECT.
type SetOp struct {
	Op         string
	Quantifier string // "", "ALL", "DISTINCT"
	Left       SetExpr
	Right      SetExpr
}

// NestedQuery is a parenthesized query used as a set operand.
type NestedQuery struct {
	Query *Query
}

// Values is a VALUES row list.
type Values struct {
	Rows [][]Expr
}

// Select is the SELECT core.
type Select struct {
	Distinct bool
	Top      Expr
	Items    []SelectItem
	From     []TableRef
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	Qualify  Expr
}

// SelectItem is one projection item. Exactly one of the following
// holds: Expr (with optional Alias), or Wildcard with an optional
// qualifier (Qualifier for name.*, QualExpr for expr.*).
type SelectItem struct {
	Expr      Expr
	Alias     Ident
	Wildcard  bool
	Qualifier ObjectName
	QualExpr  Expr
	Options   *WildcardOptions
}

// WildcardOptions are the modifiers accepted after * in projection,
// rendered in the fixed order ILIKE, EXCLUDE, EXCEPT, REPLACE, RENAME.
type WildcardOptions struct {
	ILike         *StringLit
	Exclude       []Ident
	ExcludeParens bool
	Except        []Ident
	Replace       []ReplaceItem
	Rename        []RenameItem
	RenameParens  bool
}

// ReplaceItem is one expr AS col element of * REPLACE (...).
type ReplaceItem struct {
	Expr  Expr
	Alias Ident
}

// RenameItem is one col AS alias element of * RENAME.
type RenameItem struct {
	From Ident
	To   Ident
}

// Table is a named table reference, including @stage references and
// IDENTIFIER(...) names.
type Table struct {
	Name  ObjectName
	At    *TimeTravel
	Alias Ident
}

// TimeTravel is an AT(...) or BEFORE(...) clause on a table. Kind is
// AT or BEFORE; Spec is the selector keyword (TIMESTAMP, OFFSET,
// STATEMENT, STREAM) and Arg its value.
type TimeTravel struct {
	Kind string
	Spec string
	Arg  Expr
}

// Derived is a parenthesized subquery in FROM.
type Derived struct {
	Lateral bool
	Query   *Query
	Alias   Ident
}

// TableFunc is a table function reference. Wrapped marks the
// TABLE(f(...)) spelling.
type TableFunc struct {
	Lateral bool
	Wrapped bool
	Call    *FuncCall
	Alias   Ident
}

// Join combines two table references. Type is the canonical join
// keyword prefix: "", INNER, LEFT, LEFT OUTER, RIGHT, RIGHT OUTER,
// FULL, FULL OUTER, CROSS, or ASOF.
type Join struct {
	Left    TableRef
	Right   TableRef
	Type    string
	Natural bool
	Match   Expr // ASOF MATCH_CONDITION body
	On      Expr
	Using   []Ident
}

// NestedJoin is a parenthesized join kept in the tree. Redundant
// parentheses around a single factor are dropped at parse time.
type NestedJoin struct {
	Inner TableRef
	Alias Ident
}

// Pivot wraps a table reference in PIVOT(agg FOR col IN (...)).
// Exactly one of In, InQuery, or Any describes the IN list.
type Pivot struct {
	Rel      TableRef
	Agg      *FuncCall
	For      Ident
	In       []Expr
	InQuery  *Query
	Any      bool
	AnyOrder []OrderByItem
	Default  Expr // DEFAULT ON NULL (expr)
	Alias    Ident
}

// Unpivot wraps a table reference in UNPIVOT(value FOR name IN (cols)).
type Unpivot struct {
	Rel   TableRef
	Value Ident
	For   Ident
	In    []Ident
	Alias Ident
}

// TableSample is a SAMPLE or TABLESAMPLE clause on a table reference.
// Keyword preserves the spelling used in the input. Method is empty,
// BERNOULLI, ROW, BLOCK, or SYSTEM; SeedKind is empty, SEED, or
// REPEATABLE.
type TableSample struct {
	Rel      TableRef
	Keyword  string
	Method   string
	Quantity Expr
	Rows     bool
	SeedKind string
	Seed     Expr
}

func (*Query) stmtNode() {}

func (*Select) setExprNode()      {}
func (*SetOp) setExprNode()       {}
func (*NestedQuery) setExprNode() {}
func (*Values) setExprNode()      {}

func (*Table) tableRefNode()       {}
func (*Derived) tableRefNode()     {}
func (*TableFunc) tableRefNode()   {}
func (*Join) tableRefNode()        {}
func (*NestedJoin) tableRefNode()  {}
func (*Pivot) tableRefNode()       {}
func (*Unpivot) tableRefNode()     {}
func (*TableSample) tableRefNode() {}
