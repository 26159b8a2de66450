package ast

// NumberLit is a numeric literal, kept as written.
type NumberLit struct {
	Value string
}

// StringLit is a string literal. Dollar-quoted input is canonicalized
// to this form at parse time; Value holds the body without delimiters.
type StringLit struct {
	Value string
}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	Value bool
}

// NullLit is the NULL literal.
type NullLit struct{}

// Placeholder is a bind parameter: "?" or ":1".
type Placeholder struct {
	Value string
}

// ColumnRef is a possibly compound column reference (a, a.b, a.b.c).
type ColumnRef struct {
	Parts []Ident
}

// Star is the bare * used as a function argument (COUNT(*)).
type Star struct{}

// UnaryExpr is a prefix operator application: -x, +x, NOT x.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

// IsExpr is IS [NOT] NULL | TRUE | FALSE.
type IsExpr struct {
	Expr Expr
	Not  bool
	What string
}

// InList is expr [NOT] IN (e1, e2, ...).
type InList struct {
	Expr Expr
	Not  bool
	List []Expr
}

// InSubquery is expr [NOT] IN (SELECT ...).
type InSubquery struct {
	Expr  Expr
	Not   bool
	Query *Query
}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

// LikeExpr is expr [NOT] LIKE|ILIKE|RLIKE pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Op      string
	Pattern Expr
}

// CastExpr is CAST(x AS T) or x::T. Double records the :: spelling;
// both render in the form they were written.
type CastExpr struct {
	Expr   Expr
	Type   DataType
	Double bool
}

// FuncCall is a function invocation with the full trailing-clause set.
type FuncCall struct {
	Name     ObjectName
	Distinct bool
	Args     []FuncArg
	// SubqueryArg holds the unparenthesized subquery argument form
	// f(SELECT ...). Mutually exclusive with Args.
	SubqueryArg   *Query
	NullTreatment string // "", "IGNORE NULLS", "RESPECT NULLS"
	Filter        Expr
	WithinGroup   []OrderByItem
	Over          *WindowSpec
}

// FuncArg is one function argument, named when Name is non-empty
// (name => value).
type FuncArg struct {
	Name  Ident
	Value Expr
}

// WindowSpec is the parenthesized body of an OVER clause.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderByItem
	Frame       *WindowFrame
}

// WindowFrame is ROWS|RANGE|GROUPS frame bounds.
type WindowFrame struct {
	Units string
	Start FrameBound
	End   *FrameBound
}

// FrameBound is one window frame endpoint. Expr is set only for the
// "<n> PRECEDING" and "<n> FOLLOWING" kinds.
type FrameBound struct {
	Kind string // "UNBOUNDED PRECEDING", "CURRENT ROW", "PRECEDING", "FOLLOWING", "UNBOUNDED FOLLOWING"
	Expr Expr
}

// CaseExpr is CASE [operand] WHEN ... [ELSE ...] END.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
}

// WhenClause is one WHEN cond THEN result arm.
type WhenClause struct {
	Cond   Expr
	Result Expr
}

// ExistsExpr is EXISTS (query).
type ExistsExpr struct {
	Query *Query
}

// Subquery is a parenthesized scalar subquery.
type Subquery struct {
	Query *Query
}

// ParenExpr is a parenthesized expression, preserved as written.
type ParenExpr struct {
	Expr Expr
}

// TupleExpr is a parenthesized expression list (a, b, c).
type TupleExpr struct {
	Items []Expr
}

// PathStepKind distinguishes the three semi-structured access forms.
type PathStepKind int

// Path step kinds.
const (
	PathColon   PathStepKind = iota // :key
	PathDot                         // .key
	PathBracket                     // [index]
)

// PathAccess is semi-structured access rooted at an expression, with
// colon, dot, and bracket steps freely mixed.
type PathAccess struct {
	Root  Expr
	Steps []PathStep
}

// PathStep is one step of a PathAccess. Key is set for colon and dot
// steps, Index for bracket steps.
type PathStep struct {
	Kind  PathStepKind
	Key   Ident
	Index Expr
}

// OuterJoinExpr is the legacy outer join marker: col (+).
type OuterJoinExpr struct {
	Expr Expr
}

// ConnectByRoot is the CONNECT_BY_ROOT prefix operator.
type ConnectByRoot struct {
	Expr Expr
}

// TrimExpr covers all three TRIM spellings.
type TrimExpr struct {
	Expr  Expr
	Where string // "BOTH", "LEADING", "TRAILING", or ""
	Trim  Expr   // TRIM(BOTH 'x' FROM expr) removal set
	Chars []Expr // TRIM(expr, 'a', 'b') comma form
}

// ExtractExpr is EXTRACT(field FROM x) or EXTRACT(field, x).
type ExtractExpr struct {
	Field Ident
	Comma bool
	Expr  Expr
}

// PositionExpr is POSITION(substr IN str).
type PositionExpr struct {
	Substr Expr
	Str    Expr
}

func (*NumberLit) exprNode()     {}
func (*StringLit) exprNode()     {}
func (*BoolLit) exprNode()       {}
func (*NullLit) exprNode()       {}
func (*Placeholder) exprNode()   {}
func (*ColumnRef) exprNode()     {}
func (*Star) exprNode()          {}
func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*IsExpr) exprNode()        {}
func (*InList) exprNode()        {}
func (*InSubquery) exprNode()    {}
func (*BetweenExpr) exprNode()   {}
func (*LikeExpr) exprNode()      {}
func (*CastExpr) exprNode()      {}
func (*FuncCall) exprNode()      {}
func (*CaseExpr) exprNode()      {}
func (*ExistsExpr) exprNode()    {}
func (*Subquery) exprNode()      {}
func (*ParenExpr) exprNode()     {}
func (*TupleExpr) exprNode()     {}
func (*PathAccess) exprNode()    {}
func (*OuterJoinExpr) exprNode() {}
func (*ConnectByRoot) exprNode() {}
func (*TrimExpr) exprNode()      {}
func (*ExtractExpr) exprNode()   {}
func (*PositionExpr) exprNode()  {}
