package parser

import (
	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

// parseTableRef parses one FROM item: a table factor plus any chain
// of joins hanging off it.
func (p *parser) parseTableRef() (ast.TableRef, error) {
	factor, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	return p.parseJoins(factor)
}

func (p *parser) atJoinKeyword() bool {
	switch p.cur().Type {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL,
		token.CROSS, token.NATURAL:
		return true
	}
	return p.check(dialect.ASOF) && p.d.Features().AsofJoin
}

func (p *parser) parseJoins(left ast.TableRef) (ast.TableRef, error) {
	for p.atJoinKeyword() {
		natural := p.match(token.NATURAL)
		joinType := ""
		switch p.cur().Type {
		case token.INNER:
			p.advance()
			joinType = "INNER"
		case token.LEFT, token.RIGHT, token.FULL:
			joinType = tokWord(p.advance())
			if p.check(token.OUTER) {
				p.advance()
				joinType += " OUTER"
			}
		case token.CROSS:
			p.advance()
			joinType = "CROSS"
		default:
			if p.check(dialect.ASOF) {
				p.advance()
				joinType = "ASOF"
			}
		}
		if _, err := p.expect(token.JOIN, "JOIN"); err != nil {
			return nil, err
		}

		right, err := p.parseTableFactor()
		if err != nil {
			return nil, err
		}

		// two pending ON clauses: let the inner join bind its own
		// constraint first
		if p.d.Features().NestedJoinsWithoutParens && !natural &&
			joinType != "CROSS" && p.atJoinKeyword() {
			if err := p.enterNested(); err != nil {
				return nil, err
			}
			right, err = p.parseJoins(right)
			p.exitNested()
			if err != nil {
				return nil, err
			}
		}

		join := &ast.Join{Left: left, Right: right, Type: joinType, Natural: natural}
		if joinType == "ASOF" && p.checkWord("MATCH_CONDITION") {
			p.advance()
			if _, err := p.expect(token.LPAREN, "("); err != nil {
				return nil, err
			}
			cond, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			join.Match = cond
		}
		switch {
		case p.match(token.ON):
			cond, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			join.On = cond
		case p.match(token.USING):
			if _, err := p.expect(token.LPAREN, "("); err != nil {
				return nil, err
			}
			cols, err := p.parseIdentList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			join.Using = cols
		}
		left = join
	}
	return left, nil
}

// parseTableFactor parses one table factor plus any PIVOT, UNPIVOT,
// or sampling clauses applied to it.
func (p *parser) parseTableFactor() (ast.TableRef, error) {
	ref, err := p.parseBaseTableFactor()
	if err != nil {
		return nil, err
	}
	return p.parseTableOps(ref)
}

// parseTableOps wraps a factor in any trailing PIVOT, UNPIVOT, or
// SAMPLE/TABLESAMPLE clauses. A sample clause ends the chain.
func (p *parser) parseTableOps(ref ast.TableRef) (ast.TableRef, error) {
	for {
		var err error
		switch {
		case p.checkWord("PIVOT") && p.peek().Type == token.LPAREN:
			ref, err = p.parsePivot(ref)
		case p.checkWord("UNPIVOT") && p.peek().Type == token.LPAREN:
			ref, err = p.parseUnpivot(ref)
		case p.atSampleClause():
			return p.parseTableSample(ref)
		default:
			return ref, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) atSampleClause() bool {
	if !p.checkWord("SAMPLE", "TABLESAMPLE") {
		return false
	}
	if p.peek().Type == token.LPAREN {
		return true
	}
	switch tokWord(p.peek()) {
	case "BERNOULLI", "ROW", "BLOCK", "SYSTEM":
		return true
	}
	return false
}

func (p *parser) parseBaseTableFactor() (ast.TableRef, error) {
	switch {
	case p.check(token.LATERAL):
		p.advance()
		if p.check(token.LPAREN) {
			if err := p.enterNested(); err != nil {
				return nil, err
			}
			p.advance()
			q, err := p.parseQuery()
			if err != nil {
				p.exitNested()
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				p.exitNested()
				return nil, err
			}
			p.exitNested()
			alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
			if err != nil {
				return nil, err
			}
			return &ast.Derived{Lateral: true, Query: q, Alias: alias}, nil
		}
		tf, err := p.parseTableFuncFactor(false)
		if err != nil {
			return nil, err
		}
		tf.Lateral = true
		return tf, nil

	case p.check(token.LPAREN):
		return p.parseParenTableFactor()

	case p.check(token.ATIDENT):
		tok := p.advance()
		alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
		if err != nil {
			return nil, err
		}
		return &ast.Table{
			Name:  ast.ObjectName{{Ident: ast.Ident{Value: tok.Literal}}},
			Alias: alias,
		}, nil

	case p.check(token.TABLE) && p.peek().Type == token.LPAREN:
		p.advance()
		p.advance()
		tf, err := p.parseTableFuncFactor(true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
		if err != nil {
			return nil, err
		}
		tf.Alias = alias
		return tf, nil
	}

	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if p.check(token.LPAREN) {
		call, err := p.parseFuncCall(name)
		if err != nil {
			return nil, err
		}
		fc, ok := call.(*ast.FuncCall)
		if !ok {
			return nil, p.expected("a table function")
		}
		alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
		if err != nil {
			return nil, err
		}
		return &ast.TableFunc{Call: fc, Alias: alias}, nil
	}
	var at *ast.TimeTravel
	if p.d.Features().TimeTravel && p.checkWord("AT", "BEFORE") &&
		p.peek().Type == token.LPAREN {
		at, err = p.parseTimeTravel()
		if err != nil {
			return nil, err
		}
	}
	alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
	if err != nil {
		return nil, err
	}
	return &ast.Table{Name: name, At: at, Alias: alias}, nil
}

// parseTimeTravel parses AT(spec => value) or BEFORE(spec => value).
func (p *parser) parseTimeTravel() (*ast.TimeTravel, error) {
	kind := tokWord(p.advance())
	p.advance() // (
	spec, err := p.expectWord("TIMESTAMP, OFFSET, STATEMENT or STREAM",
		"TIMESTAMP", "OFFSET", "STATEMENT", "STREAM")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW, "=>"); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.TimeTravel{Kind: kind, Spec: spec, Arg: arg}, nil
}

// parsePivot parses PIVOT(agg FOR col IN (...)) with the optional
// DEFAULT ON NULL clause and trailing alias. The caller has checked
// the PIVOT word and the opening paren.
func (p *parser) parsePivot(rel ast.TableRef) (ast.TableRef, error) {
	p.advance() // PIVOT
	p.advance() // (
	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	agg, ok := e.(*ast.FuncCall)
	if !ok {
		return nil, p.expected("an aggregate function")
	}
	if _, err := p.expect(token.FOR, "FOR"); err != nil {
		return nil, err
	}
	forCol, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "IN"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	pv := &ast.Pivot{Rel: rel, Agg: agg, For: forCol}
	switch {
	case p.matchWord("ANY"):
		pv.Any = true
		if p.match(token.ORDER) {
			if _, err := p.expect(token.BY, "BY"); err != nil {
				return nil, err
			}
			pv.AnyOrder, err = p.parseOrderByItems()
			if err != nil {
				return nil, err
			}
		}
	case p.check(token.SELECT) || p.check(token.WITH):
		pv.InQuery, err = p.parseQuery()
		if err != nil {
			return nil, err
		}
	default:
		pv.In, err = p.parseExprList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if p.matchWord("DEFAULT") {
		if _, err := p.expect(token.ON, "ON"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.NULL, "NULL"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		pv.Default, err = p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	pv.Alias, err = p.parseOptionalAlias(p.d.ReservedForTableAlias)
	if err != nil {
		return nil, err
	}
	return pv, nil
}

// parseUnpivot parses UNPIVOT(value FOR name IN (cols)).
func (p *parser) parseUnpivot(rel ast.TableRef) (ast.TableRef, error) {
	p.advance() // UNPIVOT
	p.advance() // (
	value, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FOR, "FOR"); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "IN"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cols, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	up := &ast.Unpivot{Rel: rel, Value: value, For: name, In: cols}
	up.Alias, err = p.parseOptionalAlias(p.d.ReservedForTableAlias)
	if err != nil {
		return nil, err
	}
	return up, nil
}

// parseTableSample parses SAMPLE/TABLESAMPLE with an optional method,
// row-count marker, and SEED/REPEATABLE clause.
func (p *parser) parseTableSample(rel ast.TableRef) (ast.TableRef, error) {
	ts := &ast.TableSample{Rel: rel, Keyword: tokWord(p.advance())}
	if p.checkWord("BERNOULLI", "ROW", "BLOCK", "SYSTEM") {
		ts.Method = tokWord(p.advance())
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	q, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	ts.Quantity = q
	if p.match(token.ROWS) {
		ts.Rows = true
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if p.checkWord("SEED", "REPEATABLE") {
		ts.SeedKind = tokWord(p.advance())
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		ts.Seed, err = p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// parseTableFuncFactor parses name(args). wrapped marks the
// TABLE(...) spelling; the caller consumes the outer parens there.
func (p *parser) parseTableFuncFactor(wrapped bool) (*ast.TableFunc, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if !p.check(token.LPAREN) {
		return nil, p.expected("(")
	}
	call, err := p.parseFuncCall(name)
	if err != nil {
		return nil, err
	}
	fc := call.(*ast.FuncCall)
	tf := &ast.TableFunc{Wrapped: wrapped, Call: fc}
	if !wrapped {
		alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
		if err != nil {
			return nil, err
		}
		tf.Alias = alias
	}
	return tf, nil
}

// parseParenTableFactor disambiguates derived tables from
// parenthesized joins, collapsing redundant parens around a single
// factor as it goes.
func (p *parser) parseParenTableFactor() (ast.TableRef, error) {
	if err := p.enterNested(); err != nil {
		return nil, err
	}
	defer p.exitNested()
	p.advance() // (

	if p.check(token.SELECT) || p.check(token.WITH) || p.check(token.VALUES) {
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
		if err != nil {
			return nil, err
		}
		return &ast.Derived{Query: q, Alias: alias}, nil
	}

	if p.check(token.LPAREN) {
		// could be a doubly wrapped subquery or a nested join; try
		// the query interpretation first and roll back on failure
		mark := p.save()
		if q, err := p.parseQuery(); err == nil {
			if _, err := p.expect(token.RPAREN, ")"); err == nil {
				alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
				if err != nil {
					return nil, err
				}
				return &ast.Derived{Query: q, Alias: alias}, nil
			}
		}
		p.restore(mark)
	}

	inner, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	alias, err := p.parseOptionalAlias(p.d.ReservedForTableAlias)
	if err != nil {
		return nil, err
	}

	if join, ok := inner.(*ast.Join); ok {
		return &ast.NestedJoin{Inner: join, Alias: alias}, nil
	}
	if alias.IsEmpty() {
		return inner, nil
	}
	if existing := tableAlias(inner); !existing.IsEmpty() {
		return nil, &GrammarError{Msg: "duplicate alias " + existing.Value}
	}
	setTableAlias(inner, alias)
	return inner, nil
}

func tableAlias(ref ast.TableRef) ast.Ident {
	switch ref := ref.(type) {
	case *ast.Table:
		return ref.Alias
	case *ast.Derived:
		return ref.Alias
	case *ast.TableFunc:
		return ref.Alias
	case *ast.NestedJoin:
		return ref.Alias
	case *ast.Pivot:
		return ref.Alias
	case *ast.Unpivot:
		return ref.Alias
	default:
		return ast.Ident{}
	}
}

func setTableAlias(ref ast.TableRef, alias ast.Ident) {
	switch ref := ref.(type) {
	case *ast.Table:
		ref.Alias = alias
	case *ast.Derived:
		ref.Alias = alias
	case *ast.TableFunc:
		ref.Alias = alias
	case *ast.NestedJoin:
		ref.Alias = alias
	case *ast.Pivot:
		ref.Alias = alias
	case *ast.Unpivot:
		ref.Alias = alias
	}
}
