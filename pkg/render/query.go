package render

import "github.com/frostline-labs/frostql/pkg/ast"

func (p *printer) query(q *ast.Query) {
	if q.With != nil {
		p.write("WITH ")
		if q.With.Recursive {
			p.write("RECURSIVE ")
		}
		for i, cte := range q.With.CTEs {
			if i > 0 {
				p.write(", ")
			}
			p.ident(cte.Name)
			if len(cte.Columns) > 0 {
				p.write(" (")
				p.identList(cte.Columns)
				p.write(")")
			}
			p.write(" AS (")
			p.query(cte.Query)
			p.write(")")
		}
		p.write(" ")
	}
	p.setExpr(q.Body)
	if len(q.OrderBy) > 0 {
		p.write(" ORDER BY ")
		p.orderByItems(q.OrderBy)
	}
	if q.Limit != nil {
		p.write(" LIMIT ")
		p.expr(q.Limit)
	}
	if q.Offset != nil {
		p.write(" OFFSET ")
		p.expr(q.Offset)
	}
	if q.Fetch != nil {
		p.write(" FETCH FIRST ")
		if q.Fetch.Quantity != nil {
			p.expr(q.Fetch.Quantity)
			p.write(" ")
		}
		p.write("ROWS ONLY")
	}
}

func (p *printer) setExpr(body ast.SetExpr) {
	switch body := body.(type) {
	case *ast.Select:
		p.selectCore(body)
	case *ast.SetOp:
		p.setExpr(body.Left)
		p.writef(" ", body.Op)
		if body.Quantifier != "" {
			p.writef(" ", body.Quantifier)
		}
		p.write(" ")
		p.setExpr(body.Right)
	case *ast.NestedQuery:
		p.write("(")
		p.query(body.Query)
		p.write(")")
	case *ast.Values:
		p.write("VALUES ")
		for i, row := range body.Rows {
			if i > 0 {
				p.write(", ")
			}
			p.write("(")
			p.exprList(row)
			p.write(")")
		}
	}
}

func (p *printer) selectCore(s *ast.Select) {
	p.write("SELECT ")
	if s.Distinct {
		p.write("DISTINCT ")
	}
	if s.Top != nil {
		p.write("TOP ")
		p.expr(s.Top)
		p.write(" ")
	}
	for i, item := range s.Items {
		if i > 0 {
			p.write(", ")
		}
		p.selectItem(item)
	}
	if len(s.From) > 0 {
		p.write(" FROM ")
		for i, ref := range s.From {
			if i > 0 {
				p.write(", ")
			}
			p.tableRef(ref)
		}
	}
	if s.Where != nil {
		p.write(" WHERE ")
		p.expr(s.Where)
	}
	if len(s.GroupBy) > 0 {
		p.write(" GROUP BY ")
		p.exprList(s.GroupBy)
	}
	if s.Having != nil {
		p.write(" HAVING ")
		p.expr(s.Having)
	}
	if s.Qualify != nil {
		p.write(" QUALIFY ")
		p.expr(s.Qualify)
	}
}

func (p *printer) selectItem(item ast.SelectItem) {
	if item.Wildcard {
		switch {
		case item.QualExpr != nil:
			p.expr(item.QualExpr)
			p.write(".*")
		case len(item.Qualifier) > 0:
			p.objectName(item.Qualifier)
			p.write(".*")
		default:
			p.write("*")
		}
		if item.Options != nil {
			p.wildcardOptions(item.Options)
		}
		return
	}
	p.expr(item.Expr)
	if !item.Alias.IsEmpty() {
		p.write(" AS ")
		p.ident(item.Alias)
	}
}

func (p *printer) wildcardOptions(o *ast.WildcardOptions) {
	if o.ILike != nil {
		p.write(" ILIKE ")
		p.stringLit(o.ILike.Value)
	}
	if len(o.Exclude) > 0 {
		p.write(" EXCLUDE ")
		if o.ExcludeParens {
			p.write("(")
			p.identList(o.Exclude)
			p.write(")")
		} else {
			p.identList(o.Exclude)
		}
	}
	if len(o.Except) > 0 {
		p.write(" EXCEPT (")
		p.identList(o.Except)
		p.write(")")
	}
	if len(o.Replace) > 0 {
		p.write(" REPLACE (")
		for i, r := range o.Replace {
			if i > 0 {
				p.write(", ")
			}
			p.expr(r.Expr)
			p.write(" AS ")
			p.ident(r.Alias)
		}
		p.write(")")
	}
	if len(o.Rename) > 0 {
		p.write(" RENAME ")
		if o.RenameParens {
			p.write("(")
		}
		for i, r := range o.Rename {
			if i > 0 {
				p.write(", ")
			}
			p.ident(r.From)
			p.write(" AS ")
			p.ident(r.To)
		}
		if o.RenameParens {
			p.write(")")
		}
	}
}

func (p *printer) tableRef(ref ast.TableRef) {
	switch ref := ref.(type) {
	case *ast.Table:
		p.objectName(ref.Name)
		if ref.At != nil {
			p.writef(" ", ref.At.Kind, "(", ref.At.Spec, " => ")
			p.expr(ref.At.Arg)
			p.write(")")
		}
		p.alias(ref.Alias)
	case *ast.Derived:
		if ref.Lateral {
			p.write("LATERAL ")
		}
		p.write("(")
		p.query(ref.Query)
		p.write(")")
		p.alias(ref.Alias)
	case *ast.TableFunc:
		if ref.Lateral {
			p.write("LATERAL ")
		}
		if ref.Wrapped {
			p.write("TABLE(")
			p.funcCall(ref.Call)
			p.write(")")
		} else {
			p.funcCall(ref.Call)
		}
		p.alias(ref.Alias)
	case *ast.Join:
		p.tableRef(ref.Left)
		p.write(" ")
		if ref.Natural {
			p.write("NATURAL ")
		}
		if ref.Type != "" {
			p.writef(ref.Type, " ")
		}
		p.write("JOIN ")
		p.tableRef(ref.Right)
		if ref.Match != nil {
			p.write(" MATCH_CONDITION (")
			p.expr(ref.Match)
			p.write(")")
		}
		if ref.On != nil {
			p.write(" ON ")
			p.expr(ref.On)
		}
		if len(ref.Using) > 0 {
			p.write(" USING(")
			p.identList(ref.Using)
			p.write(")")
		}
	case *ast.NestedJoin:
		p.write("(")
		p.tableRef(ref.Inner)
		p.write(")")
		p.alias(ref.Alias)
	case *ast.Pivot:
		p.tableRef(ref.Rel)
		p.write(" PIVOT(")
		p.funcCall(ref.Agg)
		p.write(" FOR ")
		p.ident(ref.For)
		p.write(" IN (")
		switch {
		case ref.Any:
			p.write("ANY")
			if len(ref.AnyOrder) > 0 {
				p.write(" ORDER BY ")
				p.orderByItems(ref.AnyOrder)
			}
		case ref.InQuery != nil:
			p.query(ref.InQuery)
		default:
			p.exprList(ref.In)
		}
		p.write(")")
		if ref.Default != nil {
			p.write(" DEFAULT ON NULL (")
			p.expr(ref.Default)
			p.write(")")
		}
		p.write(")")
		p.alias(ref.Alias)
	case *ast.Unpivot:
		p.tableRef(ref.Rel)
		p.write(" UNPIVOT(")
		p.ident(ref.Value)
		p.write(" FOR ")
		p.ident(ref.For)
		p.write(" IN (")
		p.identList(ref.In)
		p.write("))")
		p.alias(ref.Alias)
	case *ast.TableSample:
		p.tableRef(ref.Rel)
		p.writef(" ", ref.Keyword)
		if ref.Method != "" {
			p.writef(" ", ref.Method)
		}
		p.write(" (")
		p.expr(ref.Quantity)
		if ref.Rows {
			p.write(" ROWS")
		}
		p.write(")")
		if ref.SeedKind != "" {
			p.writef(" ", ref.SeedKind, " (")
			p.expr(ref.Seed)
			p.write(")")
		}
	}
}

func (p *printer) alias(a ast.Ident) {
	if !a.IsEmpty() {
		p.write(" AS ")
		p.ident(a)
	}
}
