// Package ast defines the syntax tree produced by the parser.
//
// Nodes are pure data: no positions, no behavior. Two parses of the
// same text produce deeply equal trees, and the render package maps
// every tree back to exactly one canonical SQL string.
package ast

// Statement is implemented by all top-level statement nodes.
type Statement interface {
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	exprNode()
}

// TableRef is implemented by all FROM clause items.
type TableRef interface {
	tableRefNode()
}

// SetExpr is implemented by query body nodes (select cores, set
// operations, parenthesized queries, VALUES lists).
type SetExpr interface {
	setExprNode()
}

// Ident is an identifier with its original quoting.
// Quote is zero for bare identifiers.
type Ident struct {
	Value string
	Quote byte
}

// IsEmpty returns true for the zero identifier. Empty parts appear in
// object names written with consecutive dots (db..tbl).
func (i Ident) IsEmpty() bool {
	return i.Value == "" && i.Quote == 0
}

// ObjectName is a possibly qualified name such as db.schema.tbl.
// A nil ObjectName means the name is absent.
type ObjectName []ObjectNamePart

// ObjectNamePart is one dotted segment of an ObjectName. Either a
// plain identifier, or an IDENTIFIER(...) call when Func is set.
type ObjectNamePart struct {
	Ident Ident
	Func  *IdentifierFunc
}

// IdentifierFunc is the IDENTIFIER(arg) name form, where arg is a
// string literal or a session variable reference.
type IdentifierFunc struct {
	Arg Expr
}
