// Package snowflake provides the Snowflake dialect profile.
package snowflake

import "github.com/frostline-labs/frostql/pkg/dialect"

// New builds the Snowflake dialect.
func New() *dialect.Dialect {
	return dialect.New(config).Build()
}

func init() {
	dialect.Register(New())
}
