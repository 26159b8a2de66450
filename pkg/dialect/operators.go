package dialect

import "github.com/frostline-labs/frostql/pkg/token"

// Precedence levels for the expression parser. Higher binds tighter.
// Unary sign sits above binary arithmetic, the cast operator above
// everything except postfix path access.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 5
	PrecedenceAnd        = 10
	PrecedenceUnaryNot   = 15
	PrecedenceIs         = 17
	PrecedenceComparison = 20
	PrecedenceConcat     = 25
	PrecedenceAddSub     = 30
	PrecedenceMulDiv     = 40
	PrecedenceUnarySign  = 50
	PrecedenceCast       = 60
	PrecedencePostfix    = 70
)

// defaultPrecedence returns the ANSI operator table every dialect
// starts from.
func defaultPrecedence() map[token.TokenType]int {
	return map[token.TokenType]int{
		token.OR:  PrecedenceOr,
		token.AND: PrecedenceAnd,

		token.IS:  PrecedenceIs,
		token.NOT: PrecedenceComparison, // NOT IN / NOT BETWEEN / NOT LIKE

		token.EQ:      PrecedenceComparison,
		token.NE:      PrecedenceComparison,
		token.LT:      PrecedenceComparison,
		token.GT:      PrecedenceComparison,
		token.LE:      PrecedenceComparison,
		token.GE:      PrecedenceComparison,
		token.LIKE:    PrecedenceComparison,
		token.IN:      PrecedenceComparison,
		token.BETWEEN: PrecedenceComparison,

		token.DPIPE: PrecedenceConcat,

		token.PLUS:  PrecedenceAddSub,
		token.MINUS: PrecedenceAddSub,

		token.STAR:    PrecedenceMulDiv,
		token.SLASH:   PrecedenceMulDiv,
		token.PERCENT: PrecedenceMulDiv,

		token.DCOLON: PrecedenceCast,

		token.COLON:    PrecedencePostfix,
		token.LBRACKET: PrecedencePostfix,
		token.DOT:      PrecedencePostfix,
	}
}
