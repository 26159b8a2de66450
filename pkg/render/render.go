// Package render turns syntax trees back into SQL text.
//
// Rendering is deterministic: every tree has exactly one canonical
// string, independent of the clause order or spelling variants the
// parser accepted. parse(render(parse(x))) is the identity.
package render

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/ast"
)

// Statement renders a single statement.
func Statement(s ast.Statement) string {
	p := &printer{}
	p.statement(s)
	return p.String()
}

// Statements renders a statement list joined by "; ".
func Statements(stmts []ast.Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = Statement(s)
	}
	return strings.Join(parts, "; ")
}

// Expr renders a single expression.
func Expr(e ast.Expr) string {
	p := &printer{}
	p.expr(e)
	return p.String()
}

// printer accumulates output. All render methods hang off it so the
// one strings.Builder is threaded everywhere.
type printer struct {
	sb strings.Builder
}

func (p *printer) String() string {
	return p.sb.String()
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) writef(parts ...string) {
	for _, s := range parts {
		p.sb.WriteString(s)
	}
}

// ident renders an identifier with its original quoting.
func (p *printer) ident(id ast.Ident) {
	if id.Quote == 0 {
		p.write(id.Value)
		return
	}
	q := string(id.Quote)
	p.writef(q, strings.ReplaceAll(id.Value, q, q+q), q)
}

// objectName renders a dotted name. Empty parts reproduce the
// double-dot form.
func (p *printer) objectName(name ast.ObjectName) {
	for i, part := range name {
		if i > 0 {
			p.write(".")
		}
		p.namePart(part)
	}
}

// namePart renders one name part, plain or IDENTIFIER(...).
func (p *printer) namePart(part ast.ObjectNamePart) {
	if part.Func != nil {
		p.write("IDENTIFIER(")
		p.expr(part.Func.Arg)
		p.write(")")
		return
	}
	if !part.Ident.IsEmpty() {
		p.ident(part.Ident)
	}
}

// stringLit renders a single-quoted string, doubling embedded quotes.
func (p *printer) stringLit(v string) {
	p.writef("'", strings.ReplaceAll(v, "'", "''"), "'")
}

func (p *printer) identList(ids []ast.Ident) {
	for i, id := range ids {
		if i > 0 {
			p.write(", ")
		}
		p.ident(id)
	}
}

func (p *printer) exprList(exprs []ast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
}

// keyValueOptions renders a space-separated KEY=value list.
func (p *printer) keyValueOptions(opts []ast.KeyValueOption) {
	for i, o := range opts {
		if i > 0 {
			p.write(" ")
		}
		p.write(o.Key)
		p.write("=")
		if o.Kind == ast.OptString {
			p.stringLit(o.Value)
		} else {
			p.write(o.Value)
		}
	}
}

func (p *printer) tags(tags []ast.Tag) {
	for i, t := range tags {
		if i > 0 {
			p.write(", ")
		}
		p.writef(t.Name, "=")
		p.stringLit(t.Value)
	}
}
