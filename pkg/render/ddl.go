package render

import (
	"strconv"

	"github.com/frostline-labs/frostql/pkg/ast"
)

func (p *printer) createTable(s *ast.CreateTable) {
	p.write("CREATE ")
	if s.OrReplace {
		p.write("OR REPLACE ")
	}
	if s.Scope != "" {
		p.writef(s.Scope, " ")
	}
	if s.Kind != "" {
		p.writef(s.Kind, " ")
	}
	if s.Iceberg {
		p.write("ICEBERG ")
	}
	p.write("TABLE ")
	if s.IfNotExists {
		p.write("IF NOT EXISTS ")
	}
	p.objectName(s.Name)

	switch {
	case len(s.Columns) > 0:
		p.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				p.write(", ")
			}
			p.columnDef(col)
		}
		p.write(")")
	case len(s.Like) > 0:
		p.write(" LIKE ")
		p.objectName(s.Like)
	case len(s.Clone) > 0:
		p.write(" CLONE ")
		p.objectName(s.Clone)
	}

	if len(s.ClusterBy) > 0 {
		p.write(" CLUSTER BY (")
		p.exprList(s.ClusterBy)
		p.write(")")
	}
	if s.EnableSchemaEvolution != nil {
		p.writef(" ENABLE_SCHEMA_EVOLUTION=", boolWord(*s.EnableSchemaEvolution))
	}
	if s.ChangeTracking != nil {
		p.writef(" CHANGE_TRACKING=", boolWord(*s.ChangeTracking))
	}
	if s.DataRetentionTimeInDays != nil {
		p.writef(" DATA_RETENTION_TIME_IN_DAYS=", strconv.FormatInt(*s.DataRetentionTimeInDays, 10))
	}
	if s.MaxDataExtensionTimeInDays != nil {
		p.writef(" MAX_DATA_EXTENSION_TIME_IN_DAYS=", strconv.FormatInt(*s.MaxDataExtensionTimeInDays, 10))
	}
	if s.DefaultDDLCollation != nil {
		p.write(" DEFAULT_DDL_COLLATION=")
		p.stringLit(*s.DefaultDDLCollation)
	}
	if s.CopyGrants {
		p.write(" COPY GRANTS")
	}
	if s.Comment != nil {
		p.write(" COMMENT=")
		p.stringLit(*s.Comment)
	}
	if len(s.AggregationPolicy) > 0 {
		p.write(" WITH AGGREGATION POLICY ")
		p.objectName(s.AggregationPolicy)
	}
	if s.RowAccessPolicy != nil {
		p.write(" WITH ROW ACCESS POLICY ")
		p.objectName(s.RowAccessPolicy.Name)
		p.write(" ON (")
		p.identList(s.RowAccessPolicy.Columns)
		p.write(")")
	}
	if len(s.Tags) > 0 {
		p.write(" WITH TAG (")
		p.tags(s.Tags)
		p.write(")")
	}
	if s.OnCommit != "" {
		p.writef(" ON COMMIT ", s.OnCommit)
	}
	if s.ExternalVolume != nil {
		p.write(" EXTERNAL_VOLUME=")
		p.stringLit(*s.ExternalVolume)
	}
	if s.Catalog != nil {
		p.write(" CATALOG=")
		p.stringLit(*s.Catalog)
	}
	if s.BaseLocation != nil {
		p.write(" BASE_LOCATION=")
		p.stringLit(*s.BaseLocation)
	}
	if s.CatalogSync != nil {
		p.write(" CATALOG_SYNC=")
		p.stringLit(*s.CatalogSync)
	}
	if s.StorageSerializationPolicy != nil {
		p.writef(" STORAGE_SERIALIZATION_POLICY=", *s.StorageSerializationPolicy)
	}
	if s.Query != nil {
		p.write(" AS ")
		p.query(s.Query)
	}
}

func (p *printer) columnDef(col ast.ColumnDef) {
	p.ident(col.Name)
	p.write(" ")
	p.dataType(col.Type)
	for _, opt := range col.Options {
		p.write(" ")
		p.columnOption(opt)
	}
}

func (p *printer) columnOption(opt ast.ColumnOption) {
	switch opt := opt.(type) {
	case *ast.NotNullOption:
		p.write("NOT NULL")
	case *ast.NullOption:
		p.write("NULL")
	case *ast.CollateOption:
		p.write("COLLATE ")
		p.stringLit(opt.Collation)
	case *ast.DefaultOption:
		p.write("DEFAULT ")
		p.expr(opt.Expr)
	case *ast.IdentityOption:
		p.write(opt.Keyword)
		if opt.Seed != nil {
			p.writef("(", opt.Seed.Value, ", ", opt.Step.Value, ")")
		}
		if opt.Order != "" {
			p.writef(" ", opt.Order)
		}
	case *ast.UniqueOption:
		p.write("UNIQUE")
	case *ast.PrimaryKeyOption:
		p.write("PRIMARY KEY")
	case *ast.CommentOption:
		p.write("COMMENT ")
		p.stringLit(opt.Value)
	case *ast.PolicyOption:
		p.writef(opt.Kind, " ")
		p.objectName(opt.Name)
		if len(opt.Using) > 0 {
			p.write(" USING (")
			p.identList(opt.Using)
			p.write(")")
		}
	case *ast.TagsOption:
		p.write("WITH TAG (")
		p.tags(opt.Tags)
		p.write(")")
	}
}

func (p *printer) createView(s *ast.CreateView) {
	p.write("CREATE ")
	if s.OrReplace {
		p.write("OR REPLACE ")
	}
	p.write("VIEW ")
	if s.IfNotExists {
		p.write("IF NOT EXISTS ")
	}
	p.objectName(s.Name)
	if len(s.Columns) > 0 {
		p.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				p.write(", ")
			}
			p.ident(col.Name)
			for _, opt := range col.Options {
				p.write(" ")
				p.columnOption(opt)
			}
		}
		p.write(")")
	}
	if len(s.Options) > 0 {
		p.write(" WITH (")
		p.keyValueOptions(s.Options)
		p.write(")")
	}
	if s.Comment != nil {
		p.write(" COMMENT=")
		p.stringLit(*s.Comment)
	}
	p.write(" AS ")
	p.query(s.Query)
}

func (p *printer) createNamespace(kind string, orReplace, ifNotExists bool, name, clone ast.ObjectName) {
	p.write("CREATE ")
	if orReplace {
		p.write("OR REPLACE ")
	}
	p.writef(kind, " ")
	if ifNotExists {
		p.write("IF NOT EXISTS ")
	}
	p.objectName(name)
	if len(clone) > 0 {
		p.write(" CLONE ")
		p.objectName(clone)
	}
}

func (p *printer) createStage(s *ast.CreateStage) {
	p.write("CREATE ")
	if s.OrReplace {
		p.write("OR REPLACE ")
	}
	if s.Temporary {
		p.write("TEMPORARY ")
	}
	p.write("STAGE ")
	if s.IfNotExists {
		p.write("IF NOT EXISTS ")
	}
	p.objectName(s.Name)
	if s.Params != nil {
		p.write(" ")
		p.stageParams(s.Params)
	}
	if len(s.Directory) > 0 {
		p.write(" DIRECTORY=(")
		p.keyValueOptions(s.Directory)
		p.write(")")
	}
	if len(s.FileFormat) > 0 {
		p.write(" FILE_FORMAT=(")
		p.keyValueOptions(s.FileFormat)
		p.write(")")
	}
	if len(s.CopyOptions) > 0 {
		p.write(" COPY_OPTIONS=(")
		p.keyValueOptions(s.CopyOptions)
		p.write(")")
	}
	if s.Comment != nil {
		p.write(" COMMENT=")
		p.stringLit(*s.Comment)
	}
}

func (p *printer) stageParams(sp *ast.StageParams) {
	first := true
	sep := func() {
		if !first {
			p.write(" ")
		}
		first = false
	}
	if sp.URL != nil {
		sep()
		p.write("URL=")
		p.stringLit(*sp.URL)
	}
	if sp.StorageIntegration != nil {
		sep()
		p.writef("STORAGE_INTEGRATION=", *sp.StorageIntegration)
	}
	if sp.Endpoint != nil {
		sep()
		p.write("ENDPOINT=")
		p.stringLit(*sp.Endpoint)
	}
	if len(sp.Credentials) > 0 {
		sep()
		p.write("CREDENTIALS=(")
		p.keyValueOptions(sp.Credentials)
		p.write(")")
	}
	if len(sp.Encryption) > 0 {
		sep()
		p.write("ENCRYPTION=(")
		p.keyValueOptions(sp.Encryption)
		p.write(")")
	}
}

func (p *printer) drop(s *ast.Drop) {
	p.writef("DROP ", s.Kind, " ")
	if s.IfExists {
		p.write("IF EXISTS ")
	}
	for i, name := range s.Names {
		if i > 0 {
			p.write(", ")
		}
		p.objectName(name)
	}
}

func (p *printer) alterTable(s *ast.AlterTable) {
	p.write("ALTER TABLE ")
	if s.IfExists {
		p.write("IF EXISTS ")
	}
	p.objectName(s.Name)
	p.write(" ")
	switch op := s.Op.(type) {
	case *ast.SwapWith:
		p.write("SWAP WITH ")
		p.objectName(op.Name)
	case *ast.RenameTo:
		p.write("RENAME TO ")
		p.objectName(op.Name)
	case *ast.ClusterByOp:
		p.write("CLUSTER BY (")
		p.exprList(op.Exprs)
		p.write(")")
	case *ast.SuspendRecluster:
		p.write("SUSPEND RECLUSTER")
	case *ast.ResumeRecluster:
		p.write("RESUME RECLUSTER")
	case *ast.DropClusteringKey:
		p.write("DROP CLUSTERING KEY")
	}
}

func (p *printer) alterSession(s *ast.AlterSession) {
	p.write("ALTER SESSION ")
	if s.Set {
		p.write("SET ")
		p.keyValueOptions(s.Options)
		return
	}
	p.write("UNSET ")
	p.identList(s.Unset)
}

func boolWord(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
