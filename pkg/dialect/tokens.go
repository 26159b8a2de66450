package dialect

import "github.com/frostline-labs/frostql/pkg/token"

// Dynamic tokens shared by the dialects that enable them. Registering
// them here gives the parser stable handles; a dialect activates one
// by listing it in Config.Keywords.
var (
	ILIKE   = token.Register("ILIKE")
	RLIKE   = token.Register("RLIKE")
	QUALIFY = token.Register("QUALIFY")
	ASOF    = token.Register("ASOF")
	EXCLUDE = token.Register("EXCLUDE")
	RENAME  = token.Register("RENAME")
)
