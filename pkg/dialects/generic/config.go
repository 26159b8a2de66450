package generic

import "github.com/frostline-labs/frostql/pkg/dialect"

// config is the declarative description of the generic dialect: the
// ANSI baseline plus the widely shared extensions (wildcard
// modifiers, QUALIFY, double-colon cast).
var config = &dialect.Config{
	Name:            "generic",
	QuoteChars:      "\"`",
	CommentPrefixes: []string{"--"},

	Keywords: []string{
		"ILIKE",
		"QUALIFY",
		"EXCLUDE",
		"RENAME",
	},

	// LIMIT, OFFSET, FETCH and EXCEPT double as implicit aliases
	// unless the tokens after them continue their own clause.
	ReservedForSelectAlias: []string{
		"from", "where", "group", "having", "order", "select", "union",
		"intersect", "into", "with", "qualify",
	},
	ReservedForTableAlias: []string{
		"on", "using", "join", "inner", "left", "right", "full",
		"cross", "natural", "from", "where", "group", "having",
		"order", "select", "union", "intersect", "qualify", "set",
		"with",
	},
	ReservedForColumnAlias: []string{
		"from", "where", "group", "having", "order", "limit",
	},

	Features: dialect.Features{},
}
