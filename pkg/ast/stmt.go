package ast

// CopyTarget is one side of COPY INTO: a table name, an @stage
// reference (carried in Name), or a quoted external location.
type CopyTarget struct {
	Name     ObjectName
	Location *string
}

// CopyInto is the COPY INTO statement. Trailing options are accepted
// in any order; rendering uses a fixed canonical order.
type CopyInto struct {
	Target         CopyTarget
	From           *CopyTarget
	FromQuery      *Query
	FromAlias      Ident
	StageParams    *StageParams
	Files          []string
	Pattern        *string
	FileFormat     []KeyValueOption
	CopyOptions    []KeyValueOption
	ValidationMode *string
	PartitionBy    Expr
}

// DeclKind classifies one DECLARE entry.
type DeclKind int

// Declaration kinds.
const (
	DeclVariable DeclKind = iota
	DeclCursor
	DeclResultSet
	DeclException
)

// Declare is the DECLARE statement: a semicolon-separated list of
// declarations.
type Declare struct {
	Decls []Declaration
}

// Declaration is one DECLARE entry. Fields by kind:
//   - DeclVariable: optional Type, optional Expr with AssignKw
//   - DeclCursor: Query or Expr after FOR
//   - DeclResultSet: optional Expr with AssignKw
//   - DeclException: optional (ExcCode, ExcMessage) pair
type Declaration struct {
	Name       Ident
	Kind       DeclKind
	Type       *DataType
	Query      *Query
	Expr       Expr
	AssignKw   string // ":=" or "DEFAULT"
	ExcCode    string
	ExcMessage string
}

// BeginBlock is BEGIN ... [EXCEPTION ...] END, or a bare BEGIN when
// HasEnd is false.
type BeginBlock struct {
	Statements []Statement
	Exceptions []ExceptionClause
	HasEnd     bool
}

// ExceptionClause is WHEN name [OR name]... THEN statements.
type ExceptionClause struct {
	Names      []Ident
	Statements []Statement
}

// Raise is RAISE [exception_name].
type Raise struct {
	Name Ident
}

// Show is the SHOW family, one shape parameterized by object kind.
type Show struct {
	Terse      bool
	Kind       string // "DATABASES", "SCHEMAS", "OBJECTS", "TABLES", "EXTERNAL TABLES", "VIEWS", "COLUMNS"
	History    bool
	Like       *string
	In         *ShowIn
	StartsWith *string
	Limit      Expr
	LimitFrom  *string
}

// ShowIn is the IN scope of a SHOW statement. Scope may be empty when
// only a bare name is given.
type ShowIn struct {
	Scope string // "", "ACCOUNT", "DATABASE", "SCHEMA", "TABLE"
	Name  ObjectName
}

// Privilege is one granted action, possibly multi-word
// (CREATE SCHEMA, MONITOR USAGE, ALL PRIVILEGES).
type Privilege struct {
	Words []string
}

// Grant is the GRANT statement. Kind selects between privilege
// grants ("") and role grants ("ROLE", "DATABASE ROLE").
type Grant struct {
	Kind       string
	Role       ObjectNamePart
	Privileges []Privilege
	OnAccount  bool
	ObjectKind string
	ObjectName ObjectName
	ToKind     string // "", "ROLE", "USER"
	Grantee    ObjectNamePart
	GrantOpt   bool
}

// Revoke mirrors Grant with FROM in place of TO.
type Revoke struct {
	Kind       string
	Role       ObjectNamePart
	Privileges []Privilege
	OnAccount  bool
	ObjectKind string
	ObjectName ObjectName
	FromKind   string
	Grantee    ObjectNamePart
}

// Use is the USE statement. Secondary handles USE SECONDARY ROLES.
type Use struct {
	Kind      string // "", "DATABASE", "SCHEMA", "ROLE", "WAREHOUSE"
	Name      ObjectName
	Secondary string // "", "ALL", "NONE", "ROLES" for an explicit list
	Roles     []Ident
}

// List is LIST @stage[/path]. The LS alias normalizes to LIST.
type List struct {
	Location string
}

// Remove is REMOVE @stage [PATTERN='...']. RM normalizes to REMOVE.
type Remove struct {
	Location string
	Pattern  *string
}

func (*CopyInto) stmtNode()   {}
func (*Declare) stmtNode()    {}
func (*BeginBlock) stmtNode() {}
func (*Raise) stmtNode()      {}
func (*Show) stmtNode()       {}
func (*Grant) stmtNode()      {}
func (*Revoke) stmtNode()     {}
func (*Use) stmtNode()        {}
func (*List) stmtNode()       {}
func (*Remove) stmtNode()     {}
