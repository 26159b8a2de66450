package ast

// DataType is a type name with optional arguments: INT, VARCHAR(10),
// NUMBER(38, 0), ARRAY. The name is kept as written.
type DataType struct {
	Name string
	Args []Expr
}

// OptionKind classifies a key-value option value for rendering.
type OptionKind int

// Option value kinds.
const (
	OptString OptionKind = iota // quoted on output
	OptBool
	OptEnum
	OptNumber
)

// KeyValueOption is one KEY = value element of an option list. Stage
// parameters, file formats, copy options, and session settings all
// share this shape.
type KeyValueOption struct {
	Key   string
	Kind  OptionKind
	Value string
}

// Tag is one name='value' element of a TAG (...) list.
type Tag struct {
	Name  string
	Value string
}
