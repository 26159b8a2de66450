package snowflake

import "github.com/frostline-labs/frostql/pkg/dialect"

// config is the declarative description of the Snowflake dialect.
// Snowflake keeps double quotes for identifiers, adds // line
// comments, and enables the full warehouse grammar surface.
var config = &dialect.Config{
	Name:            "snowflake",
	QuoteChars:      `"`,
	CommentPrefixes: []string{"--", "//"},

	Keywords: []string{
		"ILIKE",
		"RLIKE",
		"QUALIFY",
		"ASOF",
		"EXCLUDE",
		"RENAME",
	},

	// LIMIT, OFFSET, FETCH, EXCEPT, PIVOT, UNPIVOT, SAMPLE and
	// TABLESAMPLE are not listed: they double as implicit aliases
	// unless the tokens after them continue their own clause.
	ReservedForSelectAlias: []string{
		"from", "where", "group", "having", "order", "select", "union",
		"intersect", "into", "with", "qualify",
	},
	ReservedForTableAlias: []string{
		"on", "using", "join", "inner", "left", "right", "full",
		"cross", "natural", "from", "where", "group", "having",
		"order", "select", "union", "intersect", "qualify", "set",
		"with", "asof", "match_condition", "start", "connect",
	},
	ReservedForColumnAlias: []string{
		"from", "where", "group", "having", "order", "limit",
	},

	Features: dialect.Features{
		OuterJoinMarker:          true,
		SemiStructuredAccess:     true,
		SingleSubqueryFuncArg:    true,
		TrailingCommas:           true,
		DoubleDotNotation:        true,
		AsofJoin:                 true,
		NestedJoinsWithoutParens: true,
		ConnectByRoot:            true,
		DollarQuotedStrings:      true,
		StageReferences:          true,
		IdentifierFunction:       true,
		DollarInIdent:            true,
		TopN:                     true,
		TimeTravel:               true,
	},
}
