// Package generic provides the baseline SQL dialect.
package generic

import "github.com/frostline-labs/frostql/pkg/dialect"

// New builds the generic dialect.
func New() *dialect.Dialect {
	return dialect.New(config).Build()
}

func init() {
	dialect.Register(New())
}
