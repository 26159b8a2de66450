package parser

import (
	"strings"

	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

func (p *parser) parseCopyInto() (ast.Statement, error) {
	p.advance() // COPY
	if _, err := p.expect(token.INTO, "INTO"); err != nil {
		return nil, err
	}
	target, err := p.parseCopyTarget()
	if err != nil {
		return nil, err
	}
	ci := &ast.CopyInto{Target: target}

	if p.match(token.FROM) {
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
			ci.FromQuery = q
		} else {
			src, err := p.parseCopyTarget()
			if err != nil {
				return nil, err
			}
			ci.From = &src
		}
		if p.match(token.AS) {
			alias, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			ci.FromAlias = alias
		}
	}

	for {
		switch {
		case p.checkWord("URL", "STORAGE_INTEGRATION", "ENDPOINT", "CREDENTIALS", "ENCRYPTION"):
			if ci.StageParams == nil {
				ci.StageParams = &ast.StageParams{}
			}
			if err := p.parseStageParam(ci.StageParams); err != nil {
				return nil, err
			}
		case p.checkWord("FILES"):
			p.advance()
			if _, err := p.expect(token.EQ, "="); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.LPAREN, "("); err != nil {
				return nil, err
			}
			for {
				f, err := p.expect(token.STRING, "a file name")
				if err != nil {
					return nil, err
				}
				ci.Files = append(ci.Files, f.Literal)
				if !p.match(token.COMMA) {
					break
				}
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
		case p.checkWord("PATTERN"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ci.Pattern = v
		case p.checkWord("FILE_FORMAT"):
			opts, err := p.parseEqOptionGroup()
			if err != nil {
				return nil, err
			}
			ci.FileFormat = opts
		case p.checkWord("COPY_OPTIONS"):
			opts, err := p.parseEqOptionGroup()
			if err != nil {
				return nil, err
			}
			ci.CopyOptions = opts
		case p.checkWord("VALIDATION_MODE"):
			p.advance()
			if _, err := p.expect(token.EQ, "="); err != nil {
				return nil, err
			}
			mode, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			upper := strings.ToUpper(mode.Value)
			ci.ValidationMode = &upper
		case p.check(token.PARTITION):
			p.advance()
			if _, err := p.expect(token.BY, "BY"); err != nil {
				return nil, err
			}
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return nil, err
			}
			ci.PartitionBy = e
		default:
			return ci, nil
		}
	}
}

func (p *parser) parseCopyTarget() (ast.CopyTarget, error) {
	switch p.cur().Type {
	case token.ATIDENT:
		tok := p.advance()
		return ast.CopyTarget{Name: ast.ObjectName{{Ident: ast.Ident{Value: tok.Literal}}}}, nil
	case token.STRING:
		tok := p.advance()
		return ast.CopyTarget{Location: &tok.Literal}, nil
	default:
		name, err := p.parseObjectName()
		if err != nil {
			return ast.CopyTarget{}, err
		}
		return ast.CopyTarget{Name: name}, nil
	}
}

func (p *parser) parseDeclare() (ast.Statement, error) {
	p.advance() // DECLARE
	decl := &ast.Declare{}
	for {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decl.Decls = append(decl.Decls, d)
		if !p.check(token.SEMICOLON) {
			return decl, nil
		}
		// a semicolon ends the block unless another declaration follows
		if !isIdentLike(p.peek()) || p.isStatementStart(p.peek()) {
			return decl, nil
		}
		p.advance()
	}
}

func (p *parser) isStatementStart(tok token.Token) bool {
	switch tok.Type {
	case token.SELECT, token.WITH, token.VALUES, token.CREATE, token.DROP,
		token.ALTER, token.COPY, token.DECLARE, token.BEGIN, token.SHOW,
		token.GRANT, token.REVOKE, token.USE:
		return true
	}
	switch tokWord(tok) {
	case "RAISE", "LIST", "LS", "REMOVE", "RM":
		return true
	}
	return false
}

func (p *parser) parseDeclaration() (ast.Declaration, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.Declaration{}, err
	}
	d := ast.Declaration{Name: name}

	switch {
	case p.matchWord("CURSOR"):
		d.Kind = ast.DeclCursor
		if _, err := p.expect(token.FOR, "FOR"); err != nil {
			return ast.Declaration{}, err
		}
		if p.check(token.SELECT) || p.check(token.WITH) || p.check(token.LPAREN) {
			q, err := p.parseQuery()
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Query = q
		} else {
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Expr = e
		}

	case p.matchWord("RESULTSET"):
		d.Kind = ast.DeclResultSet
		kw, ok := p.matchAssignKeyword()
		if ok {
			d.AssignKw = kw
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Expr = e
		}

	case p.matchWord("EXCEPTION"):
		d.Kind = ast.DeclException
		if p.match(token.LPAREN) {
			code := ""
			if p.match(token.MINUS) {
				code = "-"
			}
			n, err := p.expect(token.NUMBER, "an exception code")
			if err != nil {
				return ast.Declaration{}, err
			}
			code += n.Literal
			if _, err := p.expect(token.COMMA, ","); err != nil {
				return ast.Declaration{}, err
			}
			msg, err := p.expect(token.STRING, "an exception message")
			if err != nil {
				return ast.Declaration{}, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return ast.Declaration{}, err
			}
			d.ExcCode = code
			d.ExcMessage = msg.Literal
		}

	default:
		d.Kind = ast.DeclVariable
		if kw, ok := p.matchAssignKeyword(); ok {
			d.AssignKw = kw
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Expr = e
			break
		}
		if isIdentLike(p.cur()) {
			typ, err := p.parseDataType()
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Type = &typ
		}
		if kw, ok := p.matchAssignKeyword(); ok {
			d.AssignKw = kw
			e, err := p.parseExpr(dialect.PrecedenceNone)
			if err != nil {
				return ast.Declaration{}, err
			}
			d.Expr = e
		}
	}
	return d, nil
}

func (p *parser) matchAssignKeyword() (string, bool) {
	if p.match(token.ASSIGN) {
		return ":=", true
	}
	if p.matchWord("DEFAULT") {
		return "DEFAULT", true
	}
	return "", false
}

func (p *parser) parseBeginBlock() (ast.Statement, error) {
	p.advance() // BEGIN
	block := &ast.BeginBlock{}
	for {
		switch {
		case p.check(token.END):
			p.advance()
			block.HasEnd = true
			return block, nil
		case p.check(token.EOF) || p.check(token.SEMICOLON):
			return block, nil
		case p.checkWord("EXCEPTION"):
			p.advance()
			if err := p.parseExceptionClauses(block); err != nil {
				return nil, err
			}
		default:
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, s)
			if !p.match(token.SEMICOLON) && !p.check(token.END) && !p.check(token.EOF) {
				return nil, p.expected(";")
			}
		}
	}
}

func (p *parser) parseExceptionClauses(block *ast.BeginBlock) error {
	for p.check(token.WHEN) {
		p.advance()
		clause := ast.ExceptionClause{}
		for {
			name, err := p.parseIdent()
			if err != nil {
				return err
			}
			clause.Names = append(clause.Names, name)
			if !p.match(token.OR) {
				break
			}
		}
		if _, err := p.expect(token.THEN, "THEN"); err != nil {
			return err
		}
		for !p.check(token.WHEN) && !p.check(token.END) && !p.check(token.EOF) {
			s, err := p.parseStatement()
			if err != nil {
				return err
			}
			clause.Statements = append(clause.Statements, s)
			if !p.match(token.SEMICOLON) {
				break
			}
		}
		block.Exceptions = append(block.Exceptions, clause)
	}
	return nil
}

func (p *parser) parseRaise() (ast.Statement, error) {
	p.advance() // RAISE
	r := &ast.Raise{}
	if isIdentLike(p.cur()) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		r.Name = name
	}
	return r, nil
}

func (p *parser) parseShow() (ast.Statement, error) {
	p.advance() // SHOW
	show := &ast.Show{Terse: p.matchWord("TERSE")}

	switch {
	case p.matchWord("DATABASES"):
		show.Kind = "DATABASES"
	case p.matchWord("SCHEMAS"):
		show.Kind = "SCHEMAS"
	case p.matchWord("OBJECTS"):
		show.Kind = "OBJECTS"
	case p.matchWord("TABLES"):
		show.Kind = "TABLES"
	case p.matchWord("EXTERNAL"):
		if _, err := p.expectWord("TABLES", "TABLES"); err != nil {
			return nil, err
		}
		show.Kind = "EXTERNAL TABLES"
	case p.matchWord("VIEWS"):
		show.Kind = "VIEWS"
	case p.matchWord("COLUMNS"):
		show.Kind = "COLUMNS"
	case p.matchWord("STAGES"):
		show.Kind = "STAGES"
	case p.matchWord("ROLES"):
		show.Kind = "ROLES"
	default:
		return nil, p.expected("an object kind after SHOW")
	}

	show.History = p.matchWord("HISTORY")

	if p.match(token.LIKE) {
		pat, err := p.expect(token.STRING, "a pattern")
		if err != nil {
			return nil, err
		}
		show.Like = &pat.Literal
	}
	if p.match(token.IN) {
		in := &ast.ShowIn{}
		switch {
		case p.matchWord("ACCOUNT"):
			in.Scope = "ACCOUNT"
		case p.matchWord("DATABASE"):
			in.Scope = "DATABASE"
		case p.matchWord("SCHEMA"):
			in.Scope = "SCHEMA"
		case p.match(token.TABLE):
			in.Scope = "TABLE"
		}
		if isIdentLike(p.cur()) {
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			in.Name = name
		}
		show.In = in
	}
	if p.checkWord("STARTS") {
		p.advance()
		if _, err := p.expect(token.WITH, "WITH"); err != nil {
			return nil, err
		}
		s, err := p.expect(token.STRING, "a prefix string")
		if err != nil {
			return nil, err
		}
		show.StartsWith = &s.Literal
	}
	if p.match(token.LIMIT) {
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		show.Limit = e
		if p.match(token.FROM) {
			s, err := p.expect(token.STRING, "a cursor string")
			if err != nil {
				return nil, err
			}
			show.LimitFrom = &s.Literal
		}
	}
	return show, nil
}

func (p *parser) parseGrant() (ast.Statement, error) {
	p.advance() // GRANT
	g := &ast.Grant{}
	kind, role, privs, err := p.parseGrantSource()
	if err != nil {
		return nil, err
	}
	g.Kind, g.Role, g.Privileges = kind, role, privs

	if p.match(token.ON) {
		if p.matchWord("ACCOUNT") {
			g.OnAccount = true
		} else {
			g.ObjectKind = p.matchObjectKind()
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			g.ObjectName = name
		}
	}
	if _, err := p.expect(token.TO, "TO"); err != nil {
		return nil, err
	}
	switch {
	case p.checkWord("ROLE") && isIdentLike(p.peek()):
		p.advance()
		g.ToKind = "ROLE"
	case p.checkWord("USER") && isIdentLike(p.peek()):
		p.advance()
		g.ToKind = "USER"
	}
	grantee, err := p.parseObjectNamePart()
	if err != nil {
		return nil, err
	}
	g.Grantee = grantee
	if p.check(token.WITH) {
		p.advance()
		if _, err := p.expect(token.GRANT, "GRANT"); err != nil {
			return nil, err
		}
		if _, err := p.expectWord("OPTION", "OPTION"); err != nil {
			return nil, err
		}
		g.GrantOpt = true
	}
	return g, nil
}

func (p *parser) parseRevoke() (ast.Statement, error) {
	p.advance() // REVOKE
	r := &ast.Revoke{}
	kind, role, privs, err := p.parseGrantSource()
	if err != nil {
		return nil, err
	}
	r.Kind, r.Role, r.Privileges = kind, role, privs

	if p.match(token.ON) {
		if p.matchWord("ACCOUNT") {
			r.OnAccount = true
		} else {
			r.ObjectKind = p.matchObjectKind()
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			r.ObjectName = name
		}
	}
	if _, err := p.expect(token.FROM, "FROM"); err != nil {
		return nil, err
	}
	switch {
	case p.checkWord("ROLE") && isIdentLike(p.peek()):
		p.advance()
		r.FromKind = "ROLE"
	case p.checkWord("USER") && isIdentLike(p.peek()):
		p.advance()
		r.FromKind = "USER"
	}
	grantee, err := p.parseObjectNamePart()
	if err != nil {
		return nil, err
	}
	r.Grantee = grantee
	return r, nil
}

// parseGrantSource parses either a role grant (ROLE r, DATABASE
// ROLE r) or a privilege list. Role names may be dynamic
// IDENTIFIER(...) parts.
func (p *parser) parseGrantSource() (string, ast.ObjectNamePart, []ast.Privilege, error) {
	if p.checkWord("ROLE") && isIdentLike(p.peek()) {
		p.advance()
		role, err := p.parseObjectNamePart()
		if err != nil {
			return "", ast.ObjectNamePart{}, nil, err
		}
		return "ROLE", role, nil, nil
	}
	if p.checkWord("DATABASE") && tokWord(p.peek()) == "ROLE" {
		p.advance()
		p.advance()
		role, err := p.parseObjectNamePart()
		if err != nil {
			return "", ast.ObjectNamePart{}, nil, err
		}
		return "DATABASE ROLE", role, nil, nil
	}

	var privs []ast.Privilege
	for {
		var words []string
		for isIdentLike(p.cur()) && !p.check(token.ON) && !p.check(token.TO) && !p.check(token.FROM) {
			words = append(words, tokWord(p.advance()))
		}
		if len(words) == 0 {
			return "", ast.ObjectNamePart{}, nil, p.expected("a privilege")
		}
		privs = append(privs, ast.Privilege{Words: words})
		if !p.match(token.COMMA) {
			return "", ast.ObjectNamePart{}, privs, nil
		}
	}
}

func (p *parser) matchObjectKind() string {
	switch {
	case p.match(token.TABLE):
		return "TABLE"
	case p.match(token.VIEW):
		return "VIEW"
	case p.matchWord("SCHEMA"):
		return "SCHEMA"
	case p.checkWord("DATABASE") && isIdentLike(p.peek()):
		p.advance()
		return "DATABASE"
	case p.checkWord("WAREHOUSE") && isIdentLike(p.peek()):
		p.advance()
		return "WAREHOUSE"
	case p.checkWord("STAGE") && isIdentLike(p.peek()):
		p.advance()
		return "STAGE"
	case p.checkWord("INTEGRATION") && isIdentLike(p.peek()):
		p.advance()
		return "INTEGRATION"
	}
	return ""
}

func (p *parser) parseUse() (ast.Statement, error) {
	p.advance() // USE
	use := &ast.Use{}

	if p.checkWord("SECONDARY") {
		p.advance()
		if _, err := p.expectWord("ROLES", "ROLES", "ROLE"); err != nil {
			return nil, err
		}
		switch {
		case p.match(token.ALL):
			use.Secondary = "ALL"
		case p.matchWord("NONE"):
			use.Secondary = "NONE"
		default:
			roles, err := p.parseIdentList()
			if err != nil {
				return nil, err
			}
			use.Secondary = "ROLES"
			use.Roles = roles
		}
		return use, nil
	}

	switch {
	case p.checkWord("DATABASE") && isIdentLike(p.peek()):
		p.advance()
		use.Kind = "DATABASE"
	case p.checkWord("SCHEMA") && isIdentLike(p.peek()):
		p.advance()
		use.Kind = "SCHEMA"
	case p.checkWord("ROLE") && isIdentLike(p.peek()):
		p.advance()
		use.Kind = "ROLE"
	case p.checkWord("WAREHOUSE") && isIdentLike(p.peek()):
		p.advance()
		use.Kind = "WAREHOUSE"
	case p.checkWord("DATABASE", "SCHEMA", "ROLE", "WAREHOUSE"):
		// the kind keyword alone still needs a name
		p.advance()
		return nil, p.expected("identifier")
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	use.Name = name
	return use, nil
}

func (p *parser) parseList() (ast.Statement, error) {
	p.advance() // LIST or LS
	loc, err := p.expect(token.ATIDENT, "a stage reference")
	if err != nil {
		return nil, err
	}
	return &ast.List{Location: loc.Literal}, nil
}

func (p *parser) parseRemove() (ast.Statement, error) {
	p.advance() // REMOVE or RM
	loc, err := p.expect(token.ATIDENT, "a stage reference")
	if err != nil {
		return nil, err
	}
	rm := &ast.Remove{Location: loc.Literal}
	if p.checkWord("PATTERN") {
		v, err := p.parseEqString()
		if err != nil {
			return nil, err
		}
		rm.Pattern = v
	}
	return rm, nil
}
