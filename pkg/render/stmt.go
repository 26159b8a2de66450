package render

import "github.com/frostline-labs/frostql/pkg/ast"

func (p *printer) statement(s ast.Statement) {
	switch s := s.(type) {
	case *ast.Query:
		p.query(s)
	case *ast.CreateTable:
		p.createTable(s)
	case *ast.CreateView:
		p.createView(s)
	case *ast.CreateDatabase:
		p.createNamespace("DATABASE", s.OrReplace, s.IfNotExists, s.Name, s.Clone)
	case *ast.CreateSchema:
		p.createNamespace("SCHEMA", s.OrReplace, s.IfNotExists, s.Name, s.Clone)
	case *ast.CreateStage:
		p.createStage(s)
	case *ast.Drop:
		p.drop(s)
	case *ast.AlterTable:
		p.alterTable(s)
	case *ast.AlterSession:
		p.alterSession(s)
	case *ast.CopyInto:
		p.copyInto(s)
	case *ast.Declare:
		p.declare(s)
	case *ast.BeginBlock:
		p.beginBlock(s)
	case *ast.Raise:
		p.write("RAISE")
		if !s.Name.IsEmpty() {
			p.write(" ")
			p.ident(s.Name)
		}
	case *ast.Show:
		p.show(s)
	case *ast.Grant:
		p.grant(s)
	case *ast.Revoke:
		p.revoke(s)
	case *ast.Use:
		p.use(s)
	case *ast.List:
		p.writef("LIST ", s.Location)
	case *ast.Remove:
		p.writef("REMOVE ", s.Location)
		if s.Pattern != nil {
			p.write(" PATTERN=")
			p.stringLit(*s.Pattern)
		}
	}
}

func (p *printer) copyInto(s *ast.CopyInto) {
	p.write("COPY INTO ")
	p.copyTarget(&s.Target)
	if s.FromQuery != nil {
		p.write(" FROM (")
		p.query(s.FromQuery)
		p.write(")")
	} else if s.From != nil {
		p.write(" FROM ")
		p.copyTarget(s.From)
	}
	if !s.FromAlias.IsEmpty() {
		p.write(" AS ")
		p.ident(s.FromAlias)
	}
	if s.StageParams != nil {
		p.write(" ")
		p.stageParams(s.StageParams)
	}
	if len(s.Files) > 0 {
		p.write(" FILES = (")
		for i, f := range s.Files {
			if i > 0 {
				p.write(", ")
			}
			p.stringLit(f)
		}
		p.write(")")
	}
	if s.Pattern != nil {
		p.write(" PATTERN = ")
		p.stringLit(*s.Pattern)
	}
	if len(s.FileFormat) > 0 {
		p.write(" FILE_FORMAT = (")
		p.keyValueOptions(s.FileFormat)
		p.write(")")
	}
	if len(s.CopyOptions) > 0 {
		p.write(" COPY_OPTIONS = (")
		p.keyValueOptions(s.CopyOptions)
		p.write(")")
	}
	if s.ValidationMode != nil {
		p.writef(" VALIDATION_MODE = ", *s.ValidationMode)
	}
	if s.PartitionBy != nil {
		p.write(" PARTITION BY ")
		p.expr(s.PartitionBy)
	}
}

func (p *printer) copyTarget(t *ast.CopyTarget) {
	if t.Location != nil {
		p.stringLit(*t.Location)
		return
	}
	p.objectName(t.Name)
}

func (p *printer) declare(s *ast.Declare) {
	p.write("DECLARE ")
	for i, d := range s.Decls {
		if i > 0 {
			p.write("; ")
		}
		p.declaration(d)
	}
}

func (p *printer) declaration(d ast.Declaration) {
	p.ident(d.Name)
	switch d.Kind {
	case ast.DeclCursor:
		p.write(" CURSOR FOR ")
		if d.Query != nil {
			p.query(d.Query)
		} else {
			p.expr(d.Expr)
		}
	case ast.DeclResultSet:
		p.write(" RESULTSET")
		if d.Expr != nil {
			p.writef(" ", d.AssignKw, " ")
			p.expr(d.Expr)
		}
	case ast.DeclException:
		p.write(" EXCEPTION")
		if d.ExcCode != "" {
			p.writef(" (", d.ExcCode, ", ")
			p.stringLit(d.ExcMessage)
			p.write(")")
		}
	default:
		if d.Type != nil {
			p.write(" ")
			p.dataType(*d.Type)
		}
		if d.Expr != nil {
			p.writef(" ", d.AssignKw, " ")
			p.expr(d.Expr)
		}
	}
}

func (p *printer) beginBlock(s *ast.BeginBlock) {
	p.write("BEGIN")
	for _, stmt := range s.Statements {
		p.write(" ")
		p.statement(stmt)
		p.write(";")
	}
	for _, exc := range s.Exceptions {
		p.write(" EXCEPTION WHEN ")
		for i, name := range exc.Names {
			if i > 0 {
				p.write(" OR ")
			}
			p.ident(name)
		}
		p.write(" THEN")
		for _, stmt := range exc.Statements {
			p.write(" ")
			p.statement(stmt)
			p.write(";")
		}
	}
	if s.HasEnd {
		p.write(" END")
	}
}

func (p *printer) show(s *ast.Show) {
	p.write("SHOW ")
	if s.Terse {
		p.write("TERSE ")
	}
	p.write(s.Kind)
	if s.History {
		p.write(" HISTORY")
	}
	if s.Like != nil {
		p.write(" LIKE ")
		p.stringLit(*s.Like)
	}
	if s.In != nil {
		p.write(" IN")
		if s.In.Scope != "" {
			p.writef(" ", s.In.Scope)
		}
		if len(s.In.Name) > 0 {
			p.write(" ")
			p.objectName(s.In.Name)
		}
	}
	if s.StartsWith != nil {
		p.write(" STARTS WITH ")
		p.stringLit(*s.StartsWith)
	}
	if s.Limit != nil {
		p.write(" LIMIT ")
		p.expr(s.Limit)
		if s.LimitFrom != nil {
			p.write(" FROM ")
			p.stringLit(*s.LimitFrom)
		}
	}
}

func (p *printer) grant(s *ast.Grant) {
	p.write("GRANT ")
	p.grantSource(s.Kind, s.Role, s.Privileges)
	if s.OnAccount || s.ObjectKind != "" || len(s.ObjectName) > 0 {
		p.write(" ON ")
		if s.OnAccount {
			p.write("ACCOUNT")
		} else {
			if s.ObjectKind != "" {
				p.writef(s.ObjectKind, " ")
			}
			p.objectName(s.ObjectName)
		}
	}
	p.write(" TO ")
	if s.ToKind != "" {
		p.writef(s.ToKind, " ")
	}
	p.namePart(s.Grantee)
	if s.GrantOpt {
		p.write(" WITH GRANT OPTION")
	}
}

func (p *printer) revoke(s *ast.Revoke) {
	p.write("REVOKE ")
	p.grantSource(s.Kind, s.Role, s.Privileges)
	if s.OnAccount || s.ObjectKind != "" || len(s.ObjectName) > 0 {
		p.write(" ON ")
		if s.OnAccount {
			p.write("ACCOUNT")
		} else {
			if s.ObjectKind != "" {
				p.writef(s.ObjectKind, " ")
			}
			p.objectName(s.ObjectName)
		}
	}
	p.write(" FROM ")
	if s.FromKind != "" {
		p.writef(s.FromKind, " ")
	}
	p.namePart(s.Grantee)
}

func (p *printer) grantSource(kind string, role ast.ObjectNamePart, privs []ast.Privilege) {
	if kind != "" {
		p.writef(kind, " ")
		p.namePart(role)
		return
	}
	for i, priv := range privs {
		if i > 0 {
			p.write(", ")
		}
		for j, w := range priv.Words {
			if j > 0 {
				p.write(" ")
			}
			p.write(w)
		}
	}
}

func (p *printer) use(s *ast.Use) {
	p.write("USE")
	if s.Secondary != "" {
		p.write(" SECONDARY ROLES")
		switch s.Secondary {
		case "ALL", "NONE":
			p.writef(" ", s.Secondary)
		default:
			p.write(" ")
			p.identList(s.Roles)
		}
		return
	}
	if s.Kind != "" {
		p.writef(" ", s.Kind)
	}
	p.write(" ")
	p.objectName(s.Name)
}
