package render

import "github.com/frostline-labs/frostql/pkg/ast"

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.NumberLit:
		p.write(e.Value)
	case *ast.StringLit:
		p.stringLit(e.Value)
	case *ast.BoolLit:
		if e.Value {
			p.write("TRUE")
		} else {
			p.write("FALSE")
		}
	case *ast.NullLit:
		p.write("NULL")
	case *ast.Placeholder:
		p.write(e.Value)
	case *ast.ColumnRef:
		for i, part := range e.Parts {
			if i > 0 {
				p.write(".")
			}
			p.ident(part)
		}
	case *ast.Star:
		p.write("*")
	case *ast.UnaryExpr:
		p.write(e.Op)
		if e.Op == "NOT" {
			p.write(" ")
		}
		p.expr(e.Operand)
	case *ast.BinaryExpr:
		p.expr(e.Left)
		p.writef(" ", e.Op, " ")
		p.expr(e.Right)
	case *ast.IsExpr:
		p.expr(e.Expr)
		p.write(" IS ")
		if e.Not {
			p.write("NOT ")
		}
		p.write(e.What)
	case *ast.InList:
		p.expr(e.Expr)
		if e.Not {
			p.write(" NOT")
		}
		p.write(" IN (")
		p.exprList(e.List)
		p.write(")")
	case *ast.InSubquery:
		p.expr(e.Expr)
		if e.Not {
			p.write(" NOT")
		}
		p.write(" IN (")
		p.query(e.Query)
		p.write(")")
	case *ast.BetweenExpr:
		p.expr(e.Expr)
		if e.Not {
			p.write(" NOT")
		}
		p.write(" BETWEEN ")
		p.expr(e.Low)
		p.write(" AND ")
		p.expr(e.High)
	case *ast.LikeExpr:
		p.expr(e.Expr)
		if e.Not {
			p.write(" NOT")
		}
		p.writef(" ", e.Op, " ")
		p.expr(e.Pattern)
	case *ast.CastExpr:
		if e.Double {
			p.expr(e.Expr)
			p.write("::")
			p.dataType(e.Type)
		} else {
			p.write("CAST(")
			p.expr(e.Expr)
			p.write(" AS ")
			p.dataType(e.Type)
			p.write(")")
		}
	case *ast.FuncCall:
		p.funcCall(e)
	case *ast.CaseExpr:
		p.write("CASE")
		if e.Operand != nil {
			p.write(" ")
			p.expr(e.Operand)
		}
		for _, w := range e.Whens {
			p.write(" WHEN ")
			p.expr(w.Cond)
			p.write(" THEN ")
			p.expr(w.Result)
		}
		if e.Else != nil {
			p.write(" ELSE ")
			p.expr(e.Else)
		}
		p.write(" END")
	case *ast.ExistsExpr:
		p.write("EXISTS (")
		p.query(e.Query)
		p.write(")")
	case *ast.Subquery:
		p.write("(")
		p.query(e.Query)
		p.write(")")
	case *ast.ParenExpr:
		p.write("(")
		p.expr(e.Expr)
		p.write(")")
	case *ast.TupleExpr:
		p.write("(")
		p.exprList(e.Items)
		p.write(")")
	case *ast.PathAccess:
		p.expr(e.Root)
		for _, step := range e.Steps {
			switch step.Kind {
			case ast.PathColon:
				p.write(":")
				p.ident(step.Key)
			case ast.PathDot:
				p.write(".")
				p.ident(step.Key)
			case ast.PathBracket:
				p.write("[")
				p.expr(step.Index)
				p.write("]")
			}
		}
	case *ast.OuterJoinExpr:
		p.expr(e.Expr)
		p.write(" (+)")
	case *ast.ConnectByRoot:
		p.write("CONNECT_BY_ROOT ")
		p.expr(e.Expr)
	case *ast.TrimExpr:
		p.trim(e)
	case *ast.ExtractExpr:
		p.write("EXTRACT(")
		p.ident(e.Field)
		if e.Comma {
			p.write(", ")
		} else {
			p.write(" FROM ")
		}
		p.expr(e.Expr)
		p.write(")")
	case *ast.PositionExpr:
		p.write("POSITION(")
		p.expr(e.Substr)
		p.write(" IN ")
		p.expr(e.Str)
		p.write(")")
	}
}

func (p *printer) dataType(t ast.DataType) {
	p.write(t.Name)
	if len(t.Args) > 0 {
		p.write("(")
		p.exprList(t.Args)
		p.write(")")
	}
}

func (p *printer) funcCall(f *ast.FuncCall) {
	p.objectName(f.Name)
	p.write("(")
	if f.SubqueryArg != nil {
		p.query(f.SubqueryArg)
	} else {
		if f.Distinct {
			p.write("DISTINCT ")
		}
		for i, arg := range f.Args {
			if i > 0 {
				p.write(", ")
			}
			if !arg.Name.IsEmpty() {
				p.ident(arg.Name)
				p.write(" => ")
			}
			p.expr(arg.Value)
		}
		if f.NullTreatment != "" {
			p.writef(" ", f.NullTreatment)
		}
	}
	p.write(")")
	if f.Filter != nil {
		p.write(" FILTER (WHERE ")
		p.expr(f.Filter)
		p.write(")")
	}
	if len(f.WithinGroup) > 0 {
		p.write(" WITHIN GROUP (ORDER BY ")
		p.orderByItems(f.WithinGroup)
		p.write(")")
	}
	if f.Over != nil {
		p.write(" OVER (")
		p.windowSpec(f.Over)
		p.write(")")
	}
}

func (p *printer) windowSpec(w *ast.WindowSpec) {
	first := true
	if len(w.PartitionBy) > 0 {
		p.write("PARTITION BY ")
		p.exprList(w.PartitionBy)
		first = false
	}
	if len(w.OrderBy) > 0 {
		if !first {
			p.write(" ")
		}
		p.write("ORDER BY ")
		p.orderByItems(w.OrderBy)
		first = false
	}
	if w.Frame != nil {
		if !first {
			p.write(" ")
		}
		p.writef(w.Frame.Units, " ")
		if w.Frame.End != nil {
			p.write("BETWEEN ")
			p.frameBound(w.Frame.Start)
			p.write(" AND ")
			p.frameBound(*w.Frame.End)
		} else {
			p.frameBound(w.Frame.Start)
		}
	}
}

func (p *printer) frameBound(b ast.FrameBound) {
	if b.Expr != nil {
		p.expr(b.Expr)
		p.writef(" ", b.Kind)
		return
	}
	p.write(b.Kind)
}

func (p *printer) trim(e *ast.TrimExpr) {
	p.write("TRIM(")
	switch {
	case e.Where != "":
		p.writef(e.Where, " ")
		if e.Trim != nil {
			p.expr(e.Trim)
			p.write(" ")
		}
		p.write("FROM ")
		p.expr(e.Expr)
	default:
		p.expr(e.Expr)
		for _, c := range e.Chars {
			p.write(", ")
			p.expr(c)
		}
	}
	p.write(")")
}

func (p *printer) orderByItems(items []ast.OrderByItem) {
	for i, it := range items {
		if i > 0 {
			p.write(", ")
		}
		p.expr(it.Expr)
		if it.Direction != "" {
			p.writef(" ", it.Direction)
		}
		if it.Nulls != "" {
			p.writef(" NULLS ", it.Nulls)
		}
	}
}
