// Package expr evaluates the three-term tile expressions of the hex puzzle.
package expr

import (
	"errors"
	"fmt"
	"strings"
)

// Operator is the arithmetic sign printed on a tile.
type Operator rune

// Operators as they are displayed on tiles and in formulas.
const (
	Add      Operator = '+'
	Subtract Operator = '-'
	Multiply Operator = 'x'
	Divide   Operator = '÷'
)

// ErrUnknownOperator is returned by ParseOperator for anything that is not a
// recognised sign.
var ErrUnknownOperator = errors.New("unknown operator")

// operatorAliases maps every accepted spelling to its canonical operator.
var operatorAliases = map[string]Operator{
	"+": Add,
	"-": Subtract,
	"−": Subtract,
	"x": Multiply,
	"X": Multiply,
	"×": Multiply,
	"*": Multiply,
	"÷": Divide,
	"/": Divide,
}

// ParseOperator converts level data text into an Operator.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorAliases[strings.TrimSpace(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
	}
	return op, nil
}

// String returns the display glyph of the operator
func (o Operator) String() string {
	return string(o)
}

// Multiplicative reports whether the operator binds tighter than + and -.
func (o Operator) Multiplicative() bool {
	return o == Multiply || o == Divide
}

// Apply combines lhs and rhs. Division by exactly zero yields lhs unchanged.
func (o Operator) Apply(lhs, rhs float64) float64 {
	switch o {
	case Add:
		return lhs + rhs
	case Subtract:
		return lhs - rhs
	case Multiply:
		return lhs * rhs
	case Divide:
		if rhs == 0 {
			return lhs
		}
		return lhs / rhs
	default:
		return lhs
	}
}
