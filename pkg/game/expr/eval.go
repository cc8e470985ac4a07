package expr

import (
	"math"
	"strconv"
	"strings"
)

// Epsilon is the tolerance used when comparing a result against a target.
const Epsilon = 1e-6

// Term is one tile's contribution to an expression.
type Term struct {
	Op    Operator
	Value int
}

// Evaluate computes the value of terms using standard precedence: every x
// and ÷ is collapsed left to right first, then + and - are applied left to
// right. The operator of the first term is ignored.
func Evaluate(terms []Term) float64 {
	if len(terms) == 0 {
		return 0
	}

	values := make([]float64, len(terms))
	ops := make([]Operator, 0, len(terms)-1)
	for i, t := range terms {
		values[i] = float64(t.Value)
		if i > 0 {
			ops = append(ops, t.Op)
		}
	}

	values, ops = collapseMultiplicative(values, ops)

	result := values[0]
	for i, op := range ops {
		result = op.Apply(result, values[i+1])
	}
	return result
}

// collapseMultiplicative returns a new, shorter sequence in which every
// multiplicative operator has been folded into its left operand.
// len(values) is always len(ops)+1, before and after.
func collapseMultiplicative(values []float64, ops []Operator) ([]float64, []Operator) {
	outValues := []float64{values[0]}
	outOps := make([]Operator, 0, len(ops))

	for i, op := range ops {
		rhs := values[i+1]
		if op.Multiplicative() {
			last := len(outValues) - 1
			outValues[last] = op.Apply(outValues[last], rhs)
			continue
		}
		outValues = append(outValues, rhs)
		outOps = append(outOps, op)
	}

	return outValues, outOps
}

// Matches reports whether result is equal to target within Epsilon.
func Matches(result float64, target int) bool {
	return math.Abs(result-float64(target)) <= Epsilon
}

// FormatResult renders a result as an integer when it has no fractional
// part and with three decimals otherwise.
func FormatResult(result float64) string {
	if result == math.Trunc(result) {
		return strconv.FormatFloat(result, 'f', 0, 64)
	}
	return strconv.FormatFloat(result, 'f', 3, 64)
}

// Formula renders the terms the way they are shown while selecting, e.g.
// "5 x 2 + 6". The first term shows only its value.
func Formula(terms []Term) string {
	var sb strings.Builder
	for i, t := range terms {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(t.Op.String())
			sb.WriteString(" ")
		}
		sb.WriteString(strconv.Itoa(t.Value))
	}
	return sb.String()
}

// FormulaWithResult renders the finished expression, e.g. "5 x 2 + 6 = 16".
func FormulaWithResult(terms []Term, result float64) string {
	return Formula(terms) + " = " + FormatResult(result)
}
