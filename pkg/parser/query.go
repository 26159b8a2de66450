package parser

import (
	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

// parseQuery parses a full query: optional WITH, a set-expression
// body, and the trailing ordering clauses.
func (p *parser) parseQuery() (*ast.Query, error) {
	q := &ast.Query{}
	if p.check(token.WITH) {
		with, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		q.With = with
	}

	body, err := p.parseSetExpr()
	if err != nil {
		return nil, err
	}
	q.Body = body

	for {
		switch {
		case p.check(token.ORDER) && q.OrderBy == nil:
			p.advance()
			if _, err := p.expect(token.BY, "BY"); err != nil {
				return nil, err
			}
			items, err := p.parseOrderByItems()
			if err != nil {
				return nil, err
			}
			q.OrderBy = items
		case p.check(token.LIMIT) && q.Limit == nil:
			p.advance()
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			q.Limit = e
		case p.check(token.OFFSET) && q.Offset == nil:
			p.advance()
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			q.Offset = e
			if p.check(token.ROW) || p.check(token.ROWS) {
				p.advance()
			}
		case p.check(token.FETCH) && q.Fetch == nil:
			f, err := p.parseFetch()
			if err != nil {
				return nil, err
			}
			q.Fetch = f
		default:
			return q, nil
		}
	}
}

func (p *parser) parseWith() (*ast.With, error) {
	p.advance() // WITH
	with := &ast.With{Recursive: p.match(token.RECURSIVE)}
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		cte := ast.CTE{Name: name}
		if p.match(token.LPAREN) {
			cols, err := p.parseIdentList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			cte.Columns = cols
		}
		if _, err := p.expect(token.AS, "AS"); err != nil {
			return nil, err
		}
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
		cte.Query = q
		with.CTEs = append(with.CTEs, cte)
		if !p.match(token.COMMA) {
			return with, nil
		}
	}
}

// parseFetch normalizes all FETCH spellings to FETCH FIRST n ROWS ONLY.
func (p *parser) parseFetch() (*ast.Fetch, error) {
	p.advance() // FETCH
	if p.check(token.FIRST) || p.check(token.NEXT) {
		p.advance()
	}
	f := &ast.Fetch{}
	if !p.check(token.ROW) && !p.check(token.ROWS) && !p.check(token.ONLY) {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		f.Quantity = e
	}
	if p.check(token.ROW) || p.check(token.ROWS) {
		p.advance()
	}
	if _, err := p.expect(token.ONLY, "ONLY"); err != nil {
		return nil, err
	}
	return f, nil
}

// parseSetExpr parses set operations left to right, INTERSECT binding
// tighter than UNION and EXCEPT.
func (p *parser) parseSetExpr() (ast.SetExpr, error) {
	left, err := p.parseSetTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.UNION) || p.isSetExcept() {
		op := tokWord(p.advance())
		quant := ""
		if p.check(token.ALL) || p.check(token.DISTINCT) {
			quant = tokWord(p.advance())
		}
		right, err := p.parseSetTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.SetOp{Op: op, Quantifier: quant, Left: left, Right: right}
	}
	return left, nil
}

// isSetExcept distinguishes the EXCEPT set operator from the wildcard
// EXCEPT modifier, which only ever follows a star.
func (p *parser) isSetExcept() bool {
	return p.check(token.EXCEPT)
}

func (p *parser) parseSetTerm() (ast.SetExpr, error) {
	left, err := p.parseSetPrimary()
	if err != nil {
		return nil, err
	}
	for p.check(token.INTERSECT) {
		op := tokWord(p.advance())
		quant := ""
		if p.check(token.ALL) || p.check(token.DISTINCT) {
			quant = tokWord(p.advance())
		}
		right, err := p.parseSetPrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.SetOp{Op: op, Quantifier: quant, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseSetPrimary() (ast.SetExpr, error) {
	switch p.cur().Type {
	case token.SELECT:
		return p.parseSelectCore()
	case token.VALUES:
		return p.parseValues()
	case token.LPAREN:
		if err := p.enterNested(); err != nil {
			return nil, err
		}
		defer p.exitNested()
		p.advance()
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.NestedQuery{Query: q}, nil
	default:
		return nil, p.expected("SELECT, VALUES, or a subquery")
	}
}

func (p *parser) parseValues() (ast.SetExpr, error) {
	p.advance() // VALUES
	values := &ast.Values{}
	for {
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		row, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		values.Rows = append(values.Rows, row)
		if !p.match(token.COMMA) {
			return values, nil
		}
	}
}

func (p *parser) parseSelectCore() (*ast.Select, error) {
	p.advance() // SELECT
	sel := &ast.Select{}
	if p.check(token.DISTINCT) {
		p.advance()
		sel.Distinct = true
	} else {
		p.match(token.ALL)
	}
	if p.d.Features().TopN && p.check(token.TOP) {
		p.advance()
		n, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		sel.Top = n
	}

	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		sel.Items = append(sel.Items, item)
		if !p.match(token.COMMA) {
			break
		}
		if p.d.Features().TrailingCommas && p.atProjectionEnd() {
			break
		}
	}

	if p.match(token.FROM) {
		for {
			ref, err := p.parseTableRef()
			if err != nil {
				return nil, err
			}
			sel.From = append(sel.From, ref)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if p.match(token.WHERE) {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		sel.Where = e
	}
	if p.check(token.GROUP) {
		p.advance()
		if _, err := p.expect(token.BY, "BY"); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		sel.GroupBy = exprs
	}
	if p.match(token.HAVING) {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		sel.Having = e
	}
	if p.check(dialect.QUALIFY) {
		p.advance()
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		sel.Qualify = e
	}
	return sel, nil
}

// atProjectionEnd reports whether the projection list has ended after
// a trailing comma. LIMIT, OFFSET, FETCH and EXCEPT are absent: after
// a comma those words are projection identifiers, not clause openers.
func (p *parser) atProjectionEnd() bool {
	switch p.cur().Type {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER,
		token.UNION, token.INTERSECT, token.SEMICOLON, token.EOF,
		token.RPAREN:
		return true
	}
	return p.check(dialect.QUALIFY)
}

func (p *parser) parseSelectItem() (ast.SelectItem, error) {
	if p.check(token.STAR) {
		p.advance()
		opts, err := p.parseWildcardOptions()
		if err != nil {
			return ast.SelectItem{}, err
		}
		return ast.SelectItem{Wildcard: true, Options: opts}, nil
	}

	e, err := p.parseExpr(dialect.PrecedenceNone)
	if err != nil {
		return ast.SelectItem{}, err
	}

	if p.check(token.DOT) && p.peek().Type == token.STAR {
		p.advance()
		p.advance()
		item := ast.SelectItem{Wildcard: true}
		if ref, ok := e.(*ast.ColumnRef); ok {
			qual := make(ast.ObjectName, len(ref.Parts))
			for i, id := range ref.Parts {
				qual[i] = ast.ObjectNamePart{Ident: id}
			}
			item.Qualifier = qual
		} else {
			item.QualExpr = e
		}
		opts, err := p.parseWildcardOptions()
		if err != nil {
			return ast.SelectItem{}, err
		}
		item.Options = opts
		return item, nil
	}

	item := ast.SelectItem{Expr: e}
	alias, err := p.parseOptionalAlias(p.d.ReservedForSelectAlias)
	if err != nil {
		return ast.SelectItem{}, err
	}
	item.Alias = alias
	return item, nil
}

// parseOptionalAlias accepts [AS] ident. A bare word is only taken as
// an alias when the dialect does not reserve it for this position and
// the word does not open its own clause here.
func (p *parser) parseOptionalAlias(reserved func(string) bool) (ast.Ident, error) {
	if p.match(token.AS) {
		return p.parseIdent()
	}
	tok := p.cur()
	if tok.Type == token.IDENT && tok.Quote != 0 {
		p.advance()
		return ast.Ident{Value: tok.Literal, Quote: tok.Quote}, nil
	}
	if w := tokWord(tok); w != "" && !reserved(w) && p.bareAliasAllowed(w) {
		p.advance()
		return ast.Ident{Value: tok.Literal, Quote: tok.Quote}, nil
	}
	return ast.Ident{}, nil
}

// bareAliasAllowed resolves the words that are clause openers and
// implicit aliases both. LIMIT, OFFSET, FETCH and EXCEPT stay clause
// keywords while their clause can still follow; the table operators
// stay operators when their argument list follows.
func (p *parser) bareAliasAllowed(w string) bool {
	switch w {
	case "LIMIT", "OFFSET", "FETCH", "EXCEPT":
		switch p.peek().Type {
		case token.EOF, token.SEMICOLON, token.RPAREN, token.COMMA:
			return true
		}
		return false
	case "PIVOT", "UNPIVOT":
		return p.peek().Type != token.LPAREN
	case "SAMPLE", "TABLESAMPLE":
		return !p.atSampleClause()
	}
	return true
}

// parseWildcardOptions parses the star modifiers in their one fixed
// order: EXCLUDE, EXCEPT, REPLACE, RENAME. Out-of-order modifiers fail
// at the clause that follows, which is the policy. ILIKE stands alone
// and combines with none of the others.
func (p *parser) parseWildcardOptions() (*ast.WildcardOptions, error) {
	opts := &ast.WildcardOptions{}
	present := false

	if p.check(dialect.ILIKE) {
		p.advance()
		if !p.check(token.STRING) || p.cur().Style != token.SingleQuoted {
			return nil, p.expected("ilike pattern")
		}
		opts.ILike = &ast.StringLit{Value: p.advance().Literal}
		return opts, nil
	}
	if p.check(dialect.EXCLUDE) {
		p.advance()
		if p.match(token.LPAREN) {
			cols, err := p.parseIdentList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			opts.Exclude = cols
			opts.ExcludeParens = true
		} else {
			col, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts.Exclude = []ast.Ident{col}
		}
		present = true
	}
	if p.check(token.EXCEPT) && p.peek().Type == token.LPAREN {
		p.advance()
		p.advance()
		cols, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		opts.Except = cols
		present = true
	}
	if p.check(token.REPLACE) && p.peek().Type == token.LPAREN {
		p.advance()
		p.advance()
		for {
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.AS, "AS"); err != nil {
				return nil, err
			}
			alias, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts.Replace = append(opts.Replace, ast.ReplaceItem{Expr: e, Alias: alias})
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		present = true
	}
	if p.check(dialect.RENAME) {
		p.advance()
		parens := p.match(token.LPAREN)
		opts.RenameParens = parens
		for {
			from, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.AS, "AS"); err != nil {
				return nil, err
			}
			to, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts.Rename = append(opts.Rename, ast.RenameItem{From: from, To: to})
			if !parens || !p.match(token.COMMA) {
				break
			}
		}
		if parens {
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
		}
		present = true
	}

	if !present {
		return nil, nil
	}
	return opts, nil
}

func (p *parser) parseIdentList() ([]ast.Ident, error) {
	var ids []ast.Ident
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if !p.match(token.COMMA) {
			return ids, nil
		}
	}
}
