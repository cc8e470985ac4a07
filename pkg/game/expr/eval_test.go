package expr

import (
	"errors"
	"math"
	"testing"
)

func terms(first int, rest ...any) []Term {
	ts := []Term{{Op: Add, Value: first}}
	for i := 0; i+1 < len(rest); i += 2 {
		ts = append(ts, Term{Op: rest[i].(Operator), Value: rest[i+1].(int)})
	}
	return ts
}

func TestEvaluate_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		terms []Term
		want  float64
	}{
		{"add then multiply", terms(5, Add, 3, Multiply, 2), 11},
		{"multiply then add", terms(5, Multiply, 2, Add, 6), 16},
		{"subtract then divide", terms(9, Subtract, 8, Divide, 4), 7},
		{"two multiplicative", terms(3, Multiply, 4, Divide, 6), 2},
		{"left to right additive", terms(10, Subtract, 4, Subtract, 3), 3},
		{"divide by zero passes through", terms(8, Divide, 0, Add, 1), 9},
		{"divide by zero in second slot", terms(8, Add, 6, Divide, 0), 14},
		{"divide by zero then multiply", terms(8, Divide, 0, Multiply, 2), 16},
		{"fractional", terms(16, Divide, 3), 16.0 / 3.0},
		{"single term", terms(7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.terms)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%s) = %v, want %v", Formula(tt.terms), got, tt.want)
			}
		})
	}
}

func TestEvaluate_FirstOperatorIgnored(t *testing.T) {
	withMinus := []Term{{Op: Subtract, Value: 5}, {Op: Add, Value: 1}}
	withTimes := []Term{{Op: Multiply, Value: 5}, {Op: Add, Value: 1}}
	if got := Evaluate(withMinus); got != 6 {
		t.Errorf("Evaluate(-5 + 1) = %v, want 6 (leading sign ignored)", got)
	}
	if got := Evaluate(withTimes); got != 6 {
		t.Errorf("Evaluate(x5 + 1) = %v, want 6 (leading sign ignored)", got)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	if got := Evaluate(nil); got != 0 {
		t.Errorf("Evaluate(nil) = %v, want 0", got)
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	in := terms(2, Multiply, 3, Multiply, 4)
	Evaluate(in)
	if in[1].Value != 3 || in[2].Value != 4 || len(in) != 3 {
		t.Errorf("Evaluate mutated its input: %+v", in)
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{15.0, "15"},
		{16.0 / 3.0, "5.333"},
		{0, "0"},
		{-4, "-4"},
		{2.5, "2.500"},
	}
	for _, tt := range tests {
		if got := FormatResult(tt.in); got != tt.want {
			t.Errorf("FormatResult(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormula(t *testing.T) {
	ts := terms(5, Multiply, 2, Add, 6)
	if got := Formula(ts[:1]); got != "5" {
		t.Errorf("Formula(one term) = %q, want %q", got, "5")
	}
	if got := Formula(ts[:2]); got != "5 x 2" {
		t.Errorf("Formula(two terms) = %q, want %q", got, "5 x 2")
	}
	if got := FormulaWithResult(ts, Evaluate(ts)); got != "5 x 2 + 6 = 16" {
		t.Errorf("FormulaWithResult = %q, want %q", got, "5 x 2 + 6 = 16")
	}
	if got := Formula(nil); got != "" {
		t.Errorf("Formula(nil) = %q, want empty", got)
	}
}

func TestMatches(t *testing.T) {
	if !Matches(11, 11) {
		t.Error("Matches(11, 11) = false, want true")
	}
	if !Matches(0.1+0.2+10.7, 11) {
		t.Error("Matches(0.1+0.2+10.7, 11) = false, want true (epsilon comparison)")
	}
	if Matches(16, 11) {
		t.Error("Matches(16, 11) = true, want false")
	}
	if Matches(16.0/3.0, 5) {
		t.Error("Matches(5.333, 5) = true, want false")
	}
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"+": Add, "-": Subtract, "x": Multiply, "÷": Divide,
		"×": Multiply, "*": Multiply, "/": Divide, " + ": Add,
	}
	for in, want := range tests {
		got, err := ParseOperator(in)
		if err != nil {
			t.Errorf("ParseOperator(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseOperator(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "%", "++", "plus"} {
		if _, err := ParseOperator(bad); !errors.Is(err, ErrUnknownOperator) {
			t.Errorf("ParseOperator(%q) error = %v, want ErrUnknownOperator", bad, err)
		}
	}
}
