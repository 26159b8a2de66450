package parser

import (
	"strconv"
	"strings"

	"github.com/frostline-labs/frostql/pkg/ast"
	"github.com/frostline-labs/frostql/pkg/dialect"
	"github.com/frostline-labs/frostql/pkg/token"
)

func (p *parser) parseCreate() (ast.Statement, error) {
	p.advance() // CREATE
	orReplace := false
	if p.check(token.OR) {
		p.advance()
		if _, err := p.expect(token.REPLACE, "REPLACE"); err != nil {
			return nil, err
		}
		orReplace = true
	}

	scope, kind := "", ""
	scopeAsWritten := ""
	iceberg := false
	for {
		switch {
		case p.checkWord("LOCAL", "GLOBAL"):
			if scope != "" {
				return nil, &ParseError{Expected: "an SQL statement", Found: scopeAsWritten}
			}
			scopeAsWritten = p.cur().Literal
			scope = tokWord(p.advance())
			continue
		case p.checkWord("TEMP", "TEMPORARY", "VOLATILE", "TRANSIENT"):
			if kind != "" {
				return nil, p.expected("an object type after CREATE")
			}
			kind = tokWord(p.advance())
			continue
		case p.checkWord("ICEBERG"):
			if iceberg {
				return nil, p.expected("an object type after CREATE")
			}
			iceberg = true
			p.advance()
			continue
		}
		break
	}

	switch {
	case p.check(token.TABLE):
		p.advance()
		return p.parseCreateTable(orReplace, scope, kind, iceberg)
	case p.check(token.VIEW):
		if scope != "" || kind != "" || iceberg {
			return nil, p.expected("TABLE")
		}
		p.advance()
		return p.parseCreateView(orReplace)
	case p.checkWord("DATABASE"):
		p.advance()
		return p.parseCreateNamespace(orReplace, true)
	case p.checkWord("SCHEMA"):
		p.advance()
		return p.parseCreateNamespace(orReplace, false)
	case p.checkWord("STAGE"):
		p.advance()
		return p.parseCreateStage(orReplace, kind == "TEMPORARY" || kind == "TEMP")
	}
	return nil, p.expected("an object type after CREATE")
}

func (p *parser) parseIfNotExists() (bool, error) {
	if !p.check(token.IF) {
		return false, nil
	}
	p.advance()
	if _, err := p.expect(token.NOT, "NOT"); err != nil {
		return false, err
	}
	if _, err := p.expect(token.EXISTS, "EXISTS"); err != nil {
		return false, err
	}
	return true, nil
}

func (p *parser) parseCreateTable(orReplace bool, scope, kind string, iceberg bool) (ast.Statement, error) {
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	ct := &ast.CreateTable{
		OrReplace:   orReplace,
		Scope:       scope,
		Kind:        kind,
		Iceberg:     iceberg,
		IfNotExists: ifNotExists,
		Name:        name,
	}

	sources := 0
	for {
		switch {
		case p.check(token.LPAREN) && ct.Columns == nil:
			p.advance()
			cols, err := p.parseColumnDefs()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			ct.Columns = cols
			sources++

		case p.check(token.LIKE) && ct.Like == nil:
			p.advance()
			src, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			ct.Like = src
			sources++

		case p.checkWord("CLONE") && ct.Clone == nil:
			p.advance()
			src, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			ct.Clone = src
			sources++

		case p.check(token.AS) && ct.Query == nil:
			p.advance()
			q, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			ct.Query = q
			sources++

		case p.checkWord("CLUSTER"):
			p.advance()
			if _, err := p.expect(token.BY, "BY"); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.LPAREN, "("); err != nil {
				return nil, err
			}
			exprs, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			ct.ClusterBy = exprs

		case p.checkWord("ENABLE_SCHEMA_EVOLUTION"):
			v, err := p.parseEqBool()
			if err != nil {
				return nil, err
			}
			ct.EnableSchemaEvolution = v

		case p.checkWord("CHANGE_TRACKING"):
			v, err := p.parseEqBool()
			if err != nil {
				return nil, err
			}
			ct.ChangeTracking = v

		case p.checkWord("DATA_RETENTION_TIME_IN_DAYS"):
			v, err := p.parseEqInt()
			if err != nil {
				return nil, err
			}
			ct.DataRetentionTimeInDays = v

		case p.checkWord("MAX_DATA_EXTENSION_TIME_IN_DAYS"):
			v, err := p.parseEqInt()
			if err != nil {
				return nil, err
			}
			ct.MaxDataExtensionTimeInDays = v

		case p.checkWord("DEFAULT_DDL_COLLATION"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.DefaultDDLCollation = v

		case p.check(token.COPY):
			p.advance()
			if _, err := p.expectWord("GRANTS", "GRANTS"); err != nil {
				return nil, err
			}
			ct.CopyGrants = true

		case p.checkWord("COMMENT"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.Comment = v

		case p.check(token.WITH) || p.checkWord("AGGREGATION", "TAG") || p.check(token.ROW):
			hadWith := p.match(token.WITH)
			switch {
			case p.matchWord("AGGREGATION"):
				if _, err := p.expectWord("POLICY", "POLICY"); err != nil {
					return nil, err
				}
				policy, err := p.parseObjectName()
				if err != nil {
					return nil, err
				}
				ct.AggregationPolicy = policy
			case p.match(token.ROW):
				if _, err := p.expectWord("ACCESS", "ACCESS"); err != nil {
					return nil, err
				}
				if _, err := p.expectWord("POLICY", "POLICY"); err != nil {
					return nil, err
				}
				policy, err := p.parseRowAccessPolicy()
				if err != nil {
					return nil, err
				}
				ct.RowAccessPolicy = policy
			case p.matchWord("TAG"):
				tags, err := p.parseTagList()
				if err != nil {
					return nil, err
				}
				ct.Tags = tags
			default:
				if hadWith {
					return nil, p.expected("AGGREGATION POLICY, ROW ACCESS POLICY or TAG")
				}
				return nil, p.expected("a CREATE TABLE clause")
			}

		case p.check(token.ON):
			p.advance()
			if _, err := p.expectWord("COMMIT", "COMMIT"); err != nil {
				return nil, err
			}
			oc, err := p.parseOnCommit()
			if err != nil {
				return nil, err
			}
			ct.OnCommit = oc

		case p.checkWord("EXTERNAL_VOLUME"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.ExternalVolume = v

		case p.checkWord("CATALOG"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.Catalog = v

		case p.checkWord("BASE_LOCATION"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.BaseLocation = v

		case p.checkWord("CATALOG_SYNC"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			ct.CatalogSync = v

		case p.checkWord("STORAGE_SERIALIZATION_POLICY"):
			p.advance()
			if _, err := p.expect(token.EQ, "="); err != nil {
				return nil, err
			}
			v, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			upper := strings.ToUpper(v.Value)
			ct.StorageSerializationPolicy = &upper

		default:
			if ct.Iceberg && ct.BaseLocation == nil {
				return nil, &GrammarError{Msg: "BASE_LOCATION is required for ICEBERG tables"}
			}
			if sources == 0 {
				return nil, &GrammarError{Msg: "unexpected end of input"}
			}
			if sources > 1 {
				return nil, &GrammarError{Msg: "only one of a column list, LIKE, CLONE or AS query is allowed"}
			}
			return ct, nil
		}
	}
}

func (p *parser) parseRowAccessPolicy() (*ast.RowAccessPolicy, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ON, "ON"); err != nil {
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
	return &ast.RowAccessPolicy{Name: name, Columns: cols}, nil
}

func (p *parser) parseTagList() ([]ast.Tag, error) {
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var tags []ast.Tag
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ, "="); err != nil {
			return nil, err
		}
		val, err := p.expect(token.STRING, "a string literal")
		if err != nil {
			return nil, err
		}
		tags = append(tags, ast.Tag{Name: name.Value, Value: val.Literal})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return tags, nil
}

func (p *parser) parseOnCommit() (string, error) {
	switch {
	case p.matchWord("PRESERVE"):
		if _, err := p.expect(token.ROWS, "ROWS"); err != nil {
			return "", err
		}
		return "PRESERVE ROWS", nil
	case p.matchWord("DELETE"):
		if _, err := p.expect(token.ROWS, "ROWS"); err != nil {
			return "", err
		}
		return "DELETE ROWS", nil
	case p.match(token.DROP):
		return "DROP", nil
	}
	return "", p.expected("PRESERVE, DELETE or DROP")
}

func (p *parser) parseEqBool() (*bool, error) {
	p.advance() // option word
	if _, err := p.expect(token.EQ, "="); err != nil {
		return nil, err
	}
	switch {
	case p.match(token.TRUE):
		v := true
		return &v, nil
	case p.match(token.FALSE):
		v := false
		return &v, nil
	}
	return nil, p.expected("TRUE or FALSE")
}

func (p *parser) parseEqInt() (*int64, error) {
	p.advance()
	if _, err := p.expect(token.EQ, "="); err != nil {
		return nil, err
	}
	tok, err := p.expect(token.NUMBER, "a number")
	if err != nil {
		return nil, err
	}
	n, perr := strconv.ParseInt(tok.Literal, 10, 64)
	if perr != nil {
		return nil, &ParseError{Expected: "an integer", Found: tok.Literal, Pos: tok.Pos()}
	}
	return &n, nil
}

func (p *parser) parseEqString() (*string, error) {
	p.advance()
	if _, err := p.expect(token.EQ, "="); err != nil {
		return nil, err
	}
	tok, err := p.expect(token.STRING, "a string literal")
	if err != nil {
		return nil, err
	}
	return &tok.Literal, nil
}

func (p *parser) parseColumnDefs() ([]ast.ColumnDef, error) {
	var cols []ast.ColumnDef
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		opts, err := p.parseColumnOptions()
		if err != nil {
			return nil, err
		}
		cols = append(cols, ast.ColumnDef{Name: name, Type: typ, Options: opts})
		if !p.match(token.COMMA) {
			return cols, nil
		}
	}
}

func (p *parser) parseColumnOptions() ([]ast.ColumnOption, error) {
	var opts []ast.ColumnOption
	for {
		opt, err := p.parseColumnOption()
		if err != nil {
			return nil, err
		}
		if opt == nil {
			return opts, nil
		}
		opts = append(opts, opt)
	}
}

func (p *parser) parseColumnOption() (ast.ColumnOption, error) {
	switch {
	case p.check(token.NOT):
		p.advance()
		if _, err := p.expect(token.NULL, "NULL"); err != nil {
			return nil, err
		}
		return &ast.NotNullOption{}, nil

	case p.match(token.NULL):
		return &ast.NullOption{}, nil

	case p.matchWord("COLLATE"):
		tok, err := p.expect(token.STRING, "a collation string")
		if err != nil {
			return nil, err
		}
		return &ast.CollateOption{Collation: tok.Literal}, nil

	case p.matchWord("DEFAULT"):
		e, err := p.parseExpr(dialect.PrecedenceNone)
		if err != nil {
			return nil, err
		}
		return &ast.DefaultOption{Expr: e}, nil

	case p.checkWord("AUTOINCREMENT", "IDENTITY"):
		return p.parseIdentityOption()

	case p.matchWord("UNIQUE"):
		return &ast.UniqueOption{}, nil

	case p.checkWord("PRIMARY"):
		p.advance()
		if _, err := p.expectWord("KEY", "KEY"); err != nil {
			return nil, err
		}
		return &ast.PrimaryKeyOption{}, nil

	case p.checkWord("COMMENT"):
		p.advance()
		tok, err := p.expect(token.STRING, "a comment string")
		if err != nil {
			return nil, err
		}
		return &ast.CommentOption{Value: tok.Literal}, nil

	case p.check(token.WITH) || p.checkWord("MASKING", "PROJECTION", "TAG"):
		hadWith := p.match(token.WITH)
		switch {
		case p.matchWord("MASKING"):
			if _, err := p.expectWord("POLICY", "POLICY"); err != nil {
				return nil, err
			}
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			opt := &ast.PolicyOption{Kind: "MASKING POLICY", Name: name}
			if p.match(token.USING) {
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
				opt.Using = cols
			}
			return opt, nil
		case p.matchWord("PROJECTION"):
			if _, err := p.expectWord("POLICY", "POLICY"); err != nil {
				return nil, err
			}
			name, err := p.parseObjectName()
			if err != nil {
				return nil, err
			}
			return &ast.PolicyOption{Kind: "PROJECTION POLICY", Name: name}, nil
		case p.matchWord("TAG"):
			tags, err := p.parseTagList()
			if err != nil {
				return nil, err
			}
			return &ast.TagsOption{Tags: tags}, nil
		default:
			if hadWith {
				return nil, p.expected("MASKING POLICY, PROJECTION POLICY or TAG")
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (p *parser) parseIdentityOption() (ast.ColumnOption, error) {
	opt := &ast.IdentityOption{Keyword: tokWord(p.advance())}
	if p.match(token.LPAREN) {
		seed, err := p.expect(token.NUMBER, "a number")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA, ","); err != nil {
			return nil, err
		}
		step, err := p.expect(token.NUMBER, "a number")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		opt.Seed = &ast.NumberLit{Value: seed.Literal}
		opt.Step = &ast.NumberLit{Value: step.Literal}
	}
	if p.check(token.ORDER) {
		p.advance()
		opt.Order = "ORDER"
	} else if p.matchWord("NOORDER") {
		opt.Order = "NOORDER"
	}
	return opt, nil
}

func (p *parser) parseCreateView(orReplace bool) (ast.Statement, error) {
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	cv := &ast.CreateView{OrReplace: orReplace, IfNotExists: ifNotExists, Name: name}

	if p.match(token.LPAREN) {
		for {
			col, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			opts, err := p.parseColumnOptions()
			if err != nil {
				return nil, err
			}
			cv.Columns = append(cv.Columns, ast.ViewColumn{Name: col, Options: opts})
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	}
	if p.check(token.WITH) && p.peek().Type == token.LPAREN {
		p.advance()
		p.advance()
		opts, err := p.parseKeyValueOptions()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		cv.Options = opts
	}
	if p.checkWord("COMMENT") {
		v, err := p.parseEqString()
		if err != nil {
			return nil, err
		}
		cv.Comment = v
	}
	if _, err := p.expect(token.AS, "AS"); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	cv.Query = q
	return cv, nil
}

func (p *parser) parseCreateNamespace(orReplace, database bool) (ast.Statement, error) {
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	var clone ast.ObjectName
	if p.matchWord("CLONE") {
		clone, err = p.parseObjectName()
		if err != nil {
			return nil, err
		}
	}
	if database {
		return &ast.CreateDatabase{OrReplace: orReplace, IfNotExists: ifNotExists, Name: name, Clone: clone}, nil
	}
	return &ast.CreateSchema{OrReplace: orReplace, IfNotExists: ifNotExists, Name: name, Clone: clone}, nil
}

func (p *parser) parseCreateStage(orReplace, temporary bool) (ast.Statement, error) {
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	cs := &ast.CreateStage{OrReplace: orReplace, Temporary: temporary, IfNotExists: ifNotExists, Name: name}

	for {
		switch {
		case p.checkWord("URL", "STORAGE_INTEGRATION", "ENDPOINT", "CREDENTIALS", "ENCRYPTION"):
			if cs.Params == nil {
				cs.Params = &ast.StageParams{}
			}
			if err := p.parseStageParam(cs.Params); err != nil {
				return nil, err
			}
		case p.checkWord("DIRECTORY"):
			opts, err := p.parseEqOptionGroup()
			if err != nil {
				return nil, err
			}
			cs.Directory = opts
		case p.checkWord("FILE_FORMAT"):
			opts, err := p.parseEqOptionGroup()
			if err != nil {
				return nil, err
			}
			cs.FileFormat = opts
		case p.checkWord("COPY_OPTIONS"):
			opts, err := p.parseEqOptionGroup()
			if err != nil {
				return nil, err
			}
			cs.CopyOptions = opts
		case p.checkWord("COMMENT"):
			v, err := p.parseEqString()
			if err != nil {
				return nil, err
			}
			cs.Comment = v
		default:
			return cs, nil
		}
	}
}

func (p *parser) parseStageParam(sp *ast.StageParams) error {
	switch {
	case p.checkWord("URL"):
		v, err := p.parseEqString()
		if err != nil {
			return err
		}
		sp.URL = v
	case p.checkWord("STORAGE_INTEGRATION"):
		p.advance()
		if _, err := p.expect(token.EQ, "="); err != nil {
			return err
		}
		id, err := p.parseIdent()
		if err != nil {
			return err
		}
		sp.StorageIntegration = &id.Value
	case p.checkWord("ENDPOINT"):
		v, err := p.parseEqString()
		if err != nil {
			return err
		}
		sp.Endpoint = v
	case p.checkWord("CREDENTIALS"):
		opts, err := p.parseEqOptionGroup()
		if err != nil {
			return err
		}
		sp.Credentials = opts
	case p.checkWord("ENCRYPTION"):
		opts, err := p.parseEqOptionGroup()
		if err != nil {
			return err
		}
		sp.Encryption = opts
	}
	return nil
}

// parseEqOptionGroup parses NAME = (key=value ...).
func (p *parser) parseEqOptionGroup() ([]ast.KeyValueOption, error) {
	p.advance() // group name
	if _, err := p.expect(token.EQ, "="); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	opts, err := p.parseKeyValueOptions()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return opts, nil
}

// parseKeyValueOptions parses key=value pairs until a closer,
// accepting either spaces or commas between pairs.
func (p *parser) parseKeyValueOptions() ([]ast.KeyValueOption, error) {
	var opts []ast.KeyValueOption
	for {
		if p.check(token.RPAREN) || p.check(token.EOF) || p.check(token.SEMICOLON) {
			return opts, nil
		}
		key, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ, "="); err != nil {
			return nil, err
		}
		opt := ast.KeyValueOption{Key: strings.ToUpper(key.Value)}
		tok := p.cur()
		switch {
		case tok.Type == token.STRING:
			p.advance()
			opt.Kind = ast.OptString
			opt.Value = tok.Literal
		case tok.Type == token.NUMBER:
			p.advance()
			opt.Kind = ast.OptNumber
			opt.Value = tok.Literal
		case tok.Type == token.TRUE || tok.Type == token.FALSE:
			p.advance()
			opt.Kind = ast.OptBool
			opt.Value = tokWord(tok)
		case isIdentLike(tok):
			p.advance()
			opt.Kind = ast.OptEnum
			opt.Value = strings.ToUpper(tok.Literal)
		default:
			return nil, p.expected("an option value")
		}
		opts = append(opts, opt)
		p.match(token.COMMA)
	}
}

func (p *parser) parseDrop() (ast.Statement, error) {
	p.advance() // DROP
	kind := ""
	switch {
	case p.match(token.TABLE):
		kind = "TABLE"
	case p.match(token.VIEW):
		kind = "VIEW"
	case p.matchWord("STAGE"):
		kind = "STAGE"
	case p.matchWord("DATABASE"):
		kind = "DATABASE"
	case p.matchWord("SCHEMA"):
		kind = "SCHEMA"
	default:
		return nil, p.expected("an object type after DROP")
	}
	drop := &ast.Drop{Kind: kind}
	if p.check(token.IF) {
		p.advance()
		if _, err := p.expect(token.EXISTS, "EXISTS"); err != nil {
			return nil, err
		}
		drop.IfExists = true
	}
	for {
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		drop.Names = append(drop.Names, name)
		if !p.match(token.COMMA) {
			return drop, nil
		}
	}
}

func (p *parser) parseAlter() (ast.Statement, error) {
	p.advance() // ALTER
	switch {
	case p.match(token.TABLE):
		return p.parseAlterTable()
	case p.matchWord("SESSION"):
		return p.parseAlterSession()
	}
	return nil, p.expected("TABLE or SESSION after ALTER")
}

func (p *parser) parseAlterTable() (ast.Statement, error) {
	at := &ast.AlterTable{}
	if p.check(token.IF) {
		p.advance()
		if _, err := p.expect(token.EXISTS, "EXISTS"); err != nil {
			return nil, err
		}
		at.IfExists = true
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	at.Name = name

	switch {
	case p.matchWord("SWAP"):
		if _, err := p.expect(token.WITH, "WITH"); err != nil {
			return nil, err
		}
		target, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		at.Op = &ast.SwapWith{Name: target}
	case p.matchWord("RENAME"):
		if _, err := p.expect(token.TO, "TO"); err != nil {
			return nil, err
		}
		target, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		at.Op = &ast.RenameTo{Name: target}
	case p.matchWord("CLUSTER"):
		if _, err := p.expect(token.BY, "BY"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN, "("); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		at.Op = &ast.ClusterByOp{Exprs: exprs}
	case p.matchWord("SUSPEND"):
		if _, err := p.expectWord("RECLUSTER", "RECLUSTER"); err != nil {
			return nil, err
		}
		at.Op = &ast.SuspendRecluster{}
	case p.matchWord("RESUME"):
		if _, err := p.expectWord("RECLUSTER", "RECLUSTER"); err != nil {
			return nil, err
		}
		at.Op = &ast.ResumeRecluster{}
	case p.match(token.DROP):
		if _, err := p.expectWord("CLUSTERING", "CLUSTERING"); err != nil {
			return nil, err
		}
		if _, err := p.expectWord("KEY", "KEY"); err != nil {
			return nil, err
		}
		at.Op = &ast.DropClusteringKey{}
	default:
		return nil, p.expected("an ALTER TABLE operation")
	}
	return at, nil
}

func (p *parser) parseAlterSession() (ast.Statement, error) {
	as := &ast.AlterSession{}
	switch {
	case p.match(token.SET):
		as.Set = true
		opts, err := p.parseKeyValueOptions()
		if err != nil {
			return nil, err
		}
		if len(opts) == 0 {
			return nil, &GrammarError{Msg: "expected at least one option"}
		}
		as.Options = opts
	case p.matchWord("UNSET"):
		ids, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		as.Unset = ids
	default:
		return nil, p.expected("SET or UNSET")
	}
	return as, nil
}
