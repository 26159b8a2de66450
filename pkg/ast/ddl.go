package ast

// CreateTable is the CREATE TABLE statement with the warehouse option
// set. Exactly one schema source is set: Columns, Like, Clone, or
// Query. Trailing options are accepted in any input order and carry
// no ordering here; rendering uses a fixed canonical order.
type CreateTable struct {
	OrReplace   bool
	Scope       string // "", "LOCAL", "GLOBAL"
	Kind        string // "", "TEMP", "TEMPORARY", "VOLATILE", "TRANSIENT"
	Iceberg     bool
	IfNotExists bool
	Name        ObjectName

	Columns []ColumnDef
	Like    ObjectName
	Clone   ObjectName
	Query   *Query

	ClusterBy                  []Expr
	EnableSchemaEvolution      *bool
	ChangeTracking             *bool
	DataRetentionTimeInDays    *int64
	MaxDataExtensionTimeInDays *int64
	DefaultDDLCollation        *string
	CopyGrants                 bool
	Comment                    *string
	AggregationPolicy          ObjectName
	RowAccessPolicy            *RowAccessPolicy
	Tags                       []Tag
	OnCommit                   string // "", "PRESERVE ROWS", "DELETE ROWS", "DROP"

	ExternalVolume             *string
	Catalog                    *string
	BaseLocation               *string
	CatalogSync                *string
	StorageSerializationPolicy *string
}

// RowAccessPolicy is [WITH] ROW ACCESS POLICY name ON (cols).
type RowAccessPolicy struct {
	Name    ObjectName
	Columns []Ident
}

// ColumnDef is one column of a CREATE TABLE column list.
type ColumnDef struct {
	Name    Ident
	Type    DataType
	Options []ColumnOption
}

// ColumnOption is implemented by all column-level options.
type ColumnOption interface {
	colOptNode()
}

// NotNullOption is NOT NULL.
type NotNullOption struct{}

// NullOption is an explicit NULL.
type NullOption struct{}

// CollateOption is COLLATE 'spec'.
type CollateOption struct {
	Collation string
}

// DefaultOption is DEFAULT expr.
type DefaultOption struct {
	Expr Expr
}

// IdentityOption is AUTOINCREMENT or IDENTITY, with an optional
// (seed, step) parameter pair and optional ORDER/NOORDER.
type IdentityOption struct {
	Keyword string // "AUTOINCREMENT" or "IDENTITY"
	Seed    *NumberLit
	Step    *NumberLit
	Order   string // "", "ORDER", "NOORDER"
}

// UniqueOption is UNIQUE.
type UniqueOption struct{}

// PrimaryKeyOption is PRIMARY KEY.
type PrimaryKeyOption struct{}

// CommentOption is COMMENT 'text'.
type CommentOption struct {
	Value string
}

// PolicyOption is [WITH] MASKING POLICY name [USING (cols)] or
// [WITH] PROJECTION POLICY name.
type PolicyOption struct {
	Kind  string // "MASKING POLICY" or "PROJECTION POLICY"
	Name  ObjectName
	Using []Ident
}

// TagsOption is [WITH] TAG (name='value', ...). Renders WITH TAG.
type TagsOption struct {
	Tags []Tag
}

func (*NotNullOption) colOptNode()    {}
func (*NullOption) colOptNode()       {}
func (*CollateOption) colOptNode()    {}
func (*DefaultOption) colOptNode()    {}
func (*IdentityOption) colOptNode()   {}
func (*UniqueOption) colOptNode()     {}
func (*PrimaryKeyOption) colOptNode() {}
func (*CommentOption) colOptNode()    {}
func (*PolicyOption) colOptNode()     {}
func (*TagsOption) colOptNode()       {}

// CreateView is CREATE [OR REPLACE] VIEW.
type CreateView struct {
	OrReplace   bool
	IfNotExists bool
	Name        ObjectName
	Columns     []ViewColumn
	Options     []KeyValueOption // WITH (...) list
	Comment     *string
	Query       *Query
}

// ViewColumn is one element of a view column list, with the
// space-separated per-column options Snowflake allows there.
type ViewColumn struct {
	Name    Ident
	Options []ColumnOption
}

// CreateDatabase is CREATE DATABASE, with optional CLONE source.
type CreateDatabase struct {
	OrReplace   bool
	IfNotExists bool
	Name        ObjectName
	Clone       ObjectName
}

// CreateSchema is CREATE SCHEMA, with optional CLONE source.
type CreateSchema struct {
	OrReplace   bool
	IfNotExists bool
	Name        ObjectName
	Clone       ObjectName
}

// CreateStage is CREATE STAGE.
type CreateStage struct {
	OrReplace   bool
	Temporary   bool
	IfNotExists bool
	Name        ObjectName
	Params      *StageParams
	Directory   []KeyValueOption
	FileFormat  []KeyValueOption
	CopyOptions []KeyValueOption
	Comment     *string
}

// StageParams groups the external stage parameters.
type StageParams struct {
	URL                *string
	StorageIntegration *string
	Endpoint           *string
	Credentials        []KeyValueOption
	Encryption         []KeyValueOption
}

// Drop is DROP <kind> [IF EXISTS] name, ...
type Drop struct {
	Kind     string // "TABLE", "VIEW", "STAGE", "DATABASE", "SCHEMA"
	IfExists bool
	Names    []ObjectName
}

// AlterTable is ALTER TABLE name <operation>.
type AlterTable struct {
	Name     ObjectName
	IfExists bool
	Op       AlterTableOp
}

// AlterTableOp is implemented by ALTER TABLE operations.
type AlterTableOp interface {
	alterOpNode()
}

// SwapWith is SWAP WITH name.
type SwapWith struct {
	Name ObjectName
}

// RenameTo is RENAME TO name.
type RenameTo struct {
	Name ObjectName
}

// ClusterByOp is CLUSTER BY (exprs).
type ClusterByOp struct {
	Exprs []Expr
}

// SuspendRecluster is SUSPEND RECLUSTER.
type SuspendRecluster struct{}

// ResumeRecluster is RESUME RECLUSTER.
type ResumeRecluster struct{}

// DropClusteringKey is DROP CLUSTERING KEY.
type DropClusteringKey struct{}

func (*SwapWith) alterOpNode()          {}
func (*RenameTo) alterOpNode()          {}
func (*ClusterByOp) alterOpNode()       {}
func (*SuspendRecluster) alterOpNode()  {}
func (*ResumeRecluster) alterOpNode()   {}
func (*DropClusteringKey) alterOpNode() {}

// AlterSession is ALTER SESSION SET k=v ... or UNSET k, ...
type AlterSession struct {
	Set     bool
	Options []KeyValueOption
	Unset   []Ident
}

func (*CreateTable) stmtNode()    {}
func (*CreateView) stmtNode()     {}
func (*CreateDatabase) stmtNode() {}
func (*CreateSchema) stmtNode()   {}
func (*CreateStage) stmtNode()    {}
func (*Drop) stmtNode()           {}
func (*AlterTable) stmtNode()     {}
func (*AlterSession) stmtNode()   {}
