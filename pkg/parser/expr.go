package parser

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

// parseExpr is the precedence-climbing core. minPrec is the binding
// power of the enclosing operator; the loop extends left while the
// next operator binds tighter.
func (p *parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		if p.d.Features().OuterJoinMarker && p.isOuterJoinMarker() && isColumnLike(left) {
			p.advance()
			p.advance()
			p.advance()
			left = &ast.OuterJoinExpr{Expr: left}
			continue
		}

		t := p.cur().Type
		prec := p.d.Precedence(t)
		if prec == dialect.PrecedenceNone || prec <= minPrec {
			return left, nil
		}
		if t == token.COLON || t == token.LBRACKET {
			if !p.d.Features().SemiStructuredAccess {
				return left, nil
			}
			left, err = p.parsePathAccess(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		if t == token.DOT {
			// dots inside names are consumed by the prefix parser;
			// dot path steps ride on parsePathAccess
			return left, nil
		}
		left, err = p.parseInfix(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) isOuterJoinMarker() bool {
	return p.check(token.LPAREN) &&
		p.peek().Type == token.PLUS &&
		p.peekAt(2).Type == token.RPAREN
}

func isColumnLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ColumnRef, *ast.PathAccess:
		return true
	default:
		return false
	}
}

func (p *parser) parseInfix(left ast.Expr, prec int) (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.AND, token.OR:
		p.advance()
		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Left: left, Op: strings.ToUpper(tok.Literal), Right: right}, nil

	case token.IS:
		p.advance()
		not := p.match(token.NOT)
		what, err := p.expectWord("NULL, TRUE or FALSE", "NULL", "TRUE", "FALSE")
		if err != nil {
			return nil, err
		}
		return &ast.IsExpr{Expr: left, Not: not, What: what}, nil

	case token.NOT:
		p.advance()
		switch {
		case p.check(token.IN):
			return p.parseIn(left, true)
		case p.check(token.BETWEEN):
			return p.parseBetween(left, true)
		case p.check(token.LIKE) || p.check(dialect.ILIKE) || p.check(dialect.RLIKE):
			return p.parseLike(left, true)
		}
		return nil, p.expected("IN, BETWEEN or LIKE after NOT")

	case token.IN:
		return p.parseIn(left, false)

	case token.BETWEEN:
		return p.parseBetween(left, false)

	case token.LIKE:
		return p.parseLike(left, false)

	case token.DCOLON:
		p.advance()
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Expr: left, Type: typ, Double: true}, nil
	}

	if p.check(dialect.ILIKE) || p.check(dialect.RLIKE) {
		return p.parseLike(left, false)
	}

	// plain binary operator
	p.advance()
	right, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: tok.Literal, Right: right}, nil
}

func (p *parser) parseIn(left ast.Expr, not bool) (ast.Expr, error) {
	p.advance() // IN
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	if p.check(token.SELECT) || p.check(token.WITH) {
		if err := p.enterNested(); err != nil {
			return nil, err
		}
		q, err := p.parseQuery()
		p.exitNested()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.InSubquery{Expr: left, Not: not, Query: q}, nil
	}
	list, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.InList{Expr: left, Not: not, List: list}, nil
}

func (p *parser) parseBetween(left ast.Expr, not bool) (ast.Expr, error) {
	p.advance() // BETWEEN
	low, err := p.parseExpr(dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AND, "AND"); err != nil {
		return nil, err
	}
	high, err := p.parseExpr(dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Expr: left, Not: not, Low: low, High: high}, nil
}

func (p *parser) parseLike(left ast.Expr, not bool) (ast.Expr, error) {
	op := strings.ToUpper(p.advance().Literal)
	pattern, err := p.parseExpr(dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	return &ast.LikeExpr{Expr: left, Not: not, Op: op, Pattern: pattern}, nil
}

// parsePathAccess chains colon, dot, and bracket steps onto base.
// Steps may mix freely and a bracket key is a full expression.
func (p *parser) parsePathAccess(base ast.Expr) (ast.Expr, error) {
	path := &ast.PathAccess{Root: base}
	for {
		switch p.cur().Type {
		case token.COLON:
			p.advance()
			key, err := p.parsePathKey()
			if err != nil {
				return nil, err
			}
			path.Steps = append(path.Steps, ast.PathStep{Kind: ast.PathColon, Key: key})
		case token.DOT:
			if p.peek().Type == token.STAR {
				return path, nil
			}
			p.advance()
			key, err := p.parsePathKey()
			if err != nil {
				return nil, err
			}
			path.Steps = append(path.Steps, ast.PathStep{Kind: ast.PathDot, Key: key})
		case token.LBRACKET:
			if err := p.enterNested(); err != nil {
				return nil, err
			}
			p.advance()
			idx, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				p.exitNested()
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "]"); err != nil {
				p.exitNested()
				return nil, err
			}
			p.exitNested()
			path.Steps = append(path.Steps, ast.PathStep{Kind: ast.PathBracket, Index: idx})
		default:
			return path, nil
		}
	}
}

func (p *parser) parsePathKey() (ast.Ident, error) {
	tok := p.cur()
	if !isIdentLike(tok) {
		return ast.Ident{}, p.expected("variant object key name")
	}
	p.advance()
	return ast.Ident{Value: tok.Literal, Quote: tok.Quote}, nil
}

func (p *parser) parsePrefix() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return &ast.NumberLit{Value: tok.Literal}, nil
	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Literal}, nil
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true}, nil
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{}, nil
	case token.NULL:
		p.advance()
		return &ast.NullLit{}, nil
	case token.PLACEHOLDER:
		p.advance()
		return &ast.Placeholder{Value: "?"}, nil
	case token.COLON:
		// numeric or named placeholder in prefix position
		next := p.peek()
		if next.Type == token.NUMBER || (next.Type == token.IDENT && next.Quote == 0) {
			p.advance()
			p.advance()
			return &ast.Placeholder{Value: ":" + next.Literal}, nil
		}
		return nil, p.expected("an expression")
	case token.PLUS, token.MINUS:
		p.advance()
		operand, err := p.parseExpr(dialect.PrecedenceUnarySign)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: tok.Literal, Operand: operand}, nil
	case token.NOT:
		p.advance()
		operand, err := p.parseExpr(dialect.PrecedenceUnaryNot)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: "NOT", Operand: operand}, nil
	case token.CASE:
		return p.parseCase()
	case token.CAST:
		return p.parseCast()
	case token.EXISTS:
		return p.parseExists()
	case token.LPAREN:
		return p.parseParen()
	}

	switch {
	case p.checkWord("TRIM") && p.peek().Type == token.LPAREN:
		return p.parseTrim()
	case p.checkWord("EXTRACT") && p.peek().Type == token.LPAREN:
		return p.parseExtract()
	case p.checkWord("POSITION") && p.peek().Type == token.LPAREN:
		return p.parsePosition()
	case p.d.Features().ConnectByRoot && p.checkWord("CONNECT_BY_ROOT"):
		p.advance()
		operand, err := p.parseExpr(dialect.PrecedenceUnarySign)
		if err != nil {
			return nil, err
		}
		return &ast.ConnectByRoot{Expr: operand}, nil
	}

	if tok.Type == token.IDENT || token.IsDynamic(tok.Type) {
		return p.parseCompound()
	}
	if token.IsKeyword(tok.Type) && (p.peek().Type == token.LPAREN || identKeyword(tok.Type)) {
		return p.parseCompound()
	}
	return nil, p.expected("an expression")
}

// identKeyword lists the clause keywords that double as plain column
// identifiers when nothing of their own clause follows, as in
// SELECT 1, LIMIT.
func identKeyword(t token.TokenType) bool {
	switch t {
	case token.LIMIT, token.OFFSET, token.FETCH, token.EXCEPT,
		token.TOP, token.VIEW:
		return true
	}
	return false
}

// parseCompound parses a dotted reference and, when a parenthesis
// follows, a function call. Dots stop before a trailing wildcard so
// qualified * stays with the projection grammar.
func (p *parser) parseCompound() (ast.Expr, error) {
	first := p.advance()
	parts := []ast.Ident{{Value: first.Literal, Quote: first.Quote}}
	for p.check(token.DOT) && isIdentLike(p.peek()) {
		p.advance()
		next := p.advance()
		parts = append(parts, ast.Ident{Value: next.Literal, Quote: next.Quote})
	}

	if p.check(token.LPAREN) {
		name := make(ast.ObjectName, len(parts))
		for i, id := range parts {
			name[i] = ast.ObjectNamePart{Ident: id}
		}
		return p.parseFuncCall(name)
	}
	return &ast.ColumnRef{Parts: parts}, nil
}

func (p *parser) parseFuncCall(name ast.ObjectName) (ast.Expr, error) {
	p.advance() // (
	call := &ast.FuncCall{Name: name}

	if p.d.Features().SingleSubqueryFuncArg && (p.check(token.SELECT) || p.check(token.WITH)) {
		if err := p.enterNested(); err != nil {
			return nil, err
		}
		q, err := p.parseQuery()
		p.exitNested()
		if err != nil {
			return nil, err
		}
		call.SubqueryArg = q
	} else {
		if p.match(token.DISTINCT) {
			call.Distinct = true
		}
		if !p.check(token.RPAREN) {
			for {
				arg, err := p.parseFuncArg()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		if p.checkWord("IGNORE", "RESPECT") && p.peek().Type == token.NULLS {
			kw := tokWord(p.advance())
			p.advance()
			call.NullTreatment = kw + " NULLS"
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}

	if p.check(token.FILTER) {
		p.advance()
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.WHERE, "WHERE"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		call.Filter = cond
	}
	if p.check(token.WITHIN) {
		p.advance()
		if _, err := p.expect(token.GROUP, "GROUP"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ORDER, "ORDER"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.BY, "BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		call.WithinGroup = items
	}
	if p.check(token.OVER) {
		p.advance()
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		spec, err := p.parseWindowSpec()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		call.Over = spec
	}
	return call, nil
}

func (p *parser) parseFuncArg() (ast.FuncArg, error) {
	if p.check(token.STAR) {
		p.advance()
		return ast.FuncArg{Value: &ast.Star{}}, nil
	}
	if isIdentLike(p.cur()) && p.peek().Type == token.ARROW {
		name := p.advance()
		p.advance()
		value, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return ast.FuncArg{}, err
		}
		return ast.FuncArg{
			Name:  ast.Ident{Value: name.Literal, Quote: name.Quote},
			Value: value,
		}, nil
	}
	value, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return ast.FuncArg{}, err
	}
	return ast.FuncArg{Value: value}, nil
}

func (p *parser) parseWindowSpec() (*ast.WindowSpec, error) {
	spec := &ast.WindowSpec{}
	if p.check(token.PARTITION) {
		p.advance()
		if _, err := p.expect(token.BY, "BY"); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		spec.PartitionBy = exprs
	}
	if p.check(token.ORDER) {
		p.advance()
		if _, err := p.expect(token.BY, "BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		spec.OrderBy = items
	}
	if p.check(token.ROWS) || p.check(token.RANGE) || p.checkWord("GROUPS") {
		units := tokWord(p.advance())
		frame := &ast.WindowFrame{Units: units}
		if p.check(token.BETWEEN) {
			p.advance()
			start, err := p.parseFrameBound()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.AND, "AND"); err != nil {
				return nil, err
			}
			end, err := p.parseFrameBound()
			if err != nil {
				return nil, err
			}
			frame.Start = start
			frame.End = &end
		} else {
			start, err := p.parseFrameBound()
			if err != nil {
				return nil, err
			}
			frame.Start = start
		}
		spec.Frame = frame
	}
	return spec, nil
}

func (p *parser) parseFrameBound() (ast.FrameBound, error) {
	switch {
	case p.check(token.UNBOUNDED):
		p.advance()
		kw, err := p.expectWord("PRECEDING or FOLLOWING", "PRECEDING", "FOLLOWING")
		if err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: "UNBOUNDED " + kw}, nil
	case p.check(token.CURRENT):
		p.advance()
		if _, err := p.expect(token.ROW, "ROW"); err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: "CURRENT ROW"}, nil
	default:
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return ast.FrameBound{}, err
		}
		kw, err := p.expectWord("PRECEDING or FOLLOWING", "PRECEDING", "FOLLOWING")
		if err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: kw, Expr: e}, nil
	}
}

func (p *parser) parseCase() (ast.Expr, error) {
	p.advance() // CASE
	expr := &ast.CaseExpr{}
	if !p.check(token.WHEN) {
		operand, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		expr.Operand = operand
	}
	for p.match(token.WHEN) {
		cond, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN, "THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		expr.Whens = append(expr.Whens, ast.WhenClause{Cond: cond, Result: result})
	}
	if len(expr.Whens) == 0 {
		return nil, p.expected("WHEN")
	}
	if p.match(token.ELSE) {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		expr.Else = e
	}
	if _, err := p.expect(token.END, "END"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseCast() (ast.Expr, error) {
	p.advance() // CAST
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AS, "AS"); err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.CastExpr{Expr: e, Type: typ}, nil
}

func (p *parser) parseExists() (ast.Expr, error) {
	p.advance() // EXISTS
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	if err := p.enterNested(); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	p.exitNested()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.ExistsExpr{Query: q}, nil
}

// parseParen handles subqueries, grouped expressions, and tuples.
func (p *parser) parseParen() (ast.Expr, error) {
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
		return &ast.Subquery{Query: q}, nil
	}

	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	if p.check(token.COMMA) {
		items := []ast.Expr{e}
		for p.match(token.COMMA) {
			next, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			items = append(items, next)
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.TupleExpr{Items: items}, nil
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.ParenExpr{Expr: e}, nil
}

func (p *parser) parseTrim() (ast.Expr, error) {
	p.advance() // TRIM
	p.advance() // (
	trim := &ast.TrimExpr{}

	if p.checkWord("BOTH", "LEADING", "TRAILING") {
		trim.Where = tokWord(p.advance())
		if !p.check(token.FROM) {
			chars, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			trim.Trim = chars
		}
		if _, err := p.expect(token.FROM, "FROM"); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		trim.Expr = e
	} else {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if p.match(token.FROM) {
			// TRIM('x' FROM expr)
			trim.Trim = e
			from, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			trim.Where = "BOTH"
			trim.Expr = from
		} else {
			trim.Expr = e
			for p.match(token.COMMA) {
				c, err := p.parseExpr(dialect.PrecedenceNone)
				if err != nil {
					return nil, err
				}
				trim.Chars = append(trim.Chars, c)
			}
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return trim, nil
}

func (p *parser) parseExtract() (ast.Expr, error) {
	p.advance() // EXTRACT
	p.advance() // (
	field, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	ext := &ast.ExtractExpr{Field: field}
	switch {
	case p.match(token.COMMA):
		ext.Comma = true
	case p.match(token.FROM):
	default:
		return nil, p.expected("FROM")
	}
	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return nil, err
	}
	ext.Expr = e
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return ext, nil
}

// parsePosition handles POSITION(x IN y); without IN it falls back to
// an ordinary function call.
func (p *parser) parsePosition() (ast.Expr, error) {
	name := p.advance() // POSITION
	p.advance()         // (
	first, err := p.parseExpr(dialect.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	if p.match(token.IN) {
		str, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.PositionExpr{Substr: first, Str: str}, nil
	}
	call := &ast.FuncCall{
		Name: ast.ObjectName{{Ident: ast.Ident{Value: name.Literal}}},
		Args: []ast.FuncArg{{Value: first}},
	}
	for p.match(token.COMMA) {
		arg, err := p.parseFuncArg()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *parser) parseDataType() (ast.DataType, error) {
	tok := p.cur()
	if !isIdentLike(tok) {
		return ast.DataType{}, p.expected("a data type name")
	}
	p.advance()
	typ := ast.DataType{Name: strings.ToUpper(tok.Literal)}
	if p.match(token.LPAREN) {
		args, err := p.parseExprList()
		if err != nil {
			return ast.DataType{}, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return ast.DataType{}, err
		}
		typ.Args = args
	}
	return typ, nil
}

func (p *parser) parseExprList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.match(token.COMMA) {
			return exprs, nil
		}
	}
}

func (p *parser) parseOrderByItems() ([]ast.OrderByItem, error) {
	var items []ast.OrderByItem
	for {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		item := ast.OrderByItem{Expr: e}
		if p.check(token.ASC) || p.check(token.DESC) {
			item.Direction = tokWord(p.advance())
		}
		if p.match(token.NULLS) {
			kw, err := p.expectWord("FIRST or LAST", "FIRST", "LAST")
			if err != nil {
				return nil, err
			}
			item.Nulls = kw
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items, nil
		}
	}
}
