package symbol

import (
	"math"
	"testing"
)

func limitOf(t *testing.T, in, varName string, point Expr, dir Direction) LimitResult {
	t.Helper()
	e := mustParse(t, in)
	res, err := Limit(e, varName, point, dir)
	if err != nil {
		t.Fatalf("Limit(%q): %v", in, err)
	}
	return res
}

func TestLimitDirectSubstitution(t *testing.T) {
	res := limitOf(t, "x^2 + 1", "x", N(2), DirBoth)
	if !res.Value.Equal(N(5)) {
		t.Errorf("got %s, want 5", res.Value)
	}

	res = limitOf(t, "sin(x)", "x", Pi, DirBoth)
	if !res.Value.Equal(N(0)) {
		t.Errorf("sin at pi: got %s, want 0", res.Value)
	}
}

func TestLimitLHopital(t *testing.T) {
	cases := []struct {
		in    string
		point Expr
		want  Expr
	}{
		{"sin(x)/x", N(0), N(1)},
		{"(x^2 - 4)/(x - 2)", N(2), N(4)},
		{"(1 - cos(x))/x^2", N(0), F(1, 2)},
		{"(exp(x) - 1)/x", N(0), N(1)},
	}
	for _, tc := range cases {
		res := limitOf(t, tc.in, "x", tc.point, DirBoth)
		if res.Value == nil || !res.Value.Equal(tc.want) {
			t.Errorf("limit of %s: got %+v, want %s", tc.in, res, tc.want)
		}
	}
}

func TestLimitAtInfinity(t *testing.T) {
	res := limitOf(t, "1/x", "x", Inf, DirBoth)
	if !res.Value.Equal(N(0)) {
		t.Errorf("1/x at oo: got %s, want 0", res.Value)
	}

	res = limitOf(t, "(2*x + 1)/(x - 3)", "x", Inf, DirBoth)
	if res.Value == nil || !res.Value.Equal(N(2)) {
		t.Errorf("(2x+1)/(x-3) at oo: got %+v, want 2", res)
	}

	res = limitOf(t, "exp(x)", "x", Neg(Inf), DirBoth)
	if res.Value == nil || !res.Value.Equal(N(0)) {
		t.Errorf("exp at -oo: got %+v, want 0", res)
	}
}

func TestLimitEulerNumber(t *testing.T) {
	res := limitOf(t, "(1 + 1/x)^x", "x", Inf, DirBoth)
	if res.Value == nil {
		t.Fatalf("got %+v", res)
	}
	n, ok := res.Value.(*Num)
	if !ok {
		t.Fatalf("expected numeric value, got %s", res.Value)
	}
	if math.Abs(n.Float64()-math.E) > 1e-3 {
		t.Errorf("got %v, want ~%v", n.Float64(), math.E)
	}
}

func TestLimitUnbounded(t *testing.T) {
	res := limitOf(t, "1/x^2", "x", N(0), DirBoth)
	if !res.Unbounded || !res.Value.Equal(Inf) {
		t.Errorf("1/x^2 at 0: got %+v, want unbounded +oo", res)
	}

	res = limitOf(t, "1/x", "x", N(0), DirPlus)
	if !res.Unbounded || !res.Value.Equal(Inf) {
		t.Errorf("1/x at 0+: got %+v, want unbounded +oo", res)
	}

	res = limitOf(t, "1/x", "x", N(0), DirMinus)
	if !res.Unbounded || !res.Value.Equal(Neg(Inf)) {
		t.Errorf("1/x at 0-: got %+v, want unbounded -oo", res)
	}

	res = limitOf(t, "ln(x)", "x", N(0), DirPlus)
	if !res.Unbounded || !res.Value.Equal(Neg(Inf)) {
		t.Errorf("ln(x) at 0+: got %+v, want unbounded -oo", res)
	}
}

func TestLimitDoesNotExist(t *testing.T) {
	res := limitOf(t, "1/x", "x", N(0), DirBoth)
	if !res.DoesNotExist {
		t.Errorf("two-sided 1/x at 0: got %+v, want does-not-exist", res)
	}

	res = limitOf(t, "abs(x)/x", "x", N(0), DirBoth)
	if !res.DoesNotExist {
		t.Errorf("abs(x)/x at 0: got %+v, want does-not-exist", res)
	}

	res = limitOf(t, "sin(1/x)", "x", N(0), DirPlus)
	if !res.DoesNotExist {
		t.Errorf("sin(1/x) at 0+: got %+v, want does-not-exist", res)
	}
}

func TestLimitOneSidedValues(t *testing.T) {
	res := limitOf(t, "abs(x)/x", "x", N(0), DirPlus)
	if res.Value == nil || !res.Value.Equal(N(1)) {
		t.Errorf("abs(x)/x at 0+: got %+v, want 1", res)
	}
	res = limitOf(t, "abs(x)/x", "x", N(0), DirMinus)
	if res.Value == nil || !res.Value.Equal(N(-1)) {
		t.Errorf("abs(x)/x at 0-: got %+v, want -1", res)
	}
	res = limitOf(t, "sqrt(x)", "x", N(0), DirBoth)
	if res.Value == nil || !res.Value.Equal(N(0)) {
		t.Errorf("sqrt(x) at 0: got %+v, want 0 from the defined side", res)
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"both", DirBoth, true},
		{"", DirBoth, true},
		{"plus", DirPlus, true},
		{"+", DirPlus, true},
		{"minus", DirMinus, true},
		{"-", DirMinus, true},
		{"sideways", DirBoth, false},
	}
	for _, tc := range cases {
		got, ok := ParseDirection(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
