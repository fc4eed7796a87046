package symbol

import "testing"

func TestSimplifyCollectsLikeTerms(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"sum of equal symbols", AddOf(S("x"), S("x")), "2*x"},
		{"product of equal symbols", MulOf(S("x"), S("x")), "x^2"},
		{"symbol times reciprocal", DivOf(S("x"), S("x")), "1"},
		{"zero coefficient drops term", AddOf(S("x"), Neg(S("x")), N(7)), "7"},
		{"nested sums flatten", AddOf(AddOf(S("x"), N(1)), AddOf(S("x"), N(2))), "2*x + 3"},
		{"nested products flatten", MulOf(MulOf(N(2), S("x")), MulOf(N(3), S("y"))), "6*x*y"},
		{"numeric power", PowOf(N(2), N(10)), "1024"},
		{"negative integer power", PowOf(N(2), N(-3)), "1/8"},
		{"power of power", PowOf(PowOf(S("x"), N(2)), N(3)), "x^6"},
		{"product power distributes", PowOf(MulOf(N(4), S("x")), N(2)), "16*x^2"},
		{"unary minus", Neg(S("x")), "-x"},
		{"quotient rendering", DivOf(AddOf(S("x"), N(1)), S("x")), "(x + 1)/x"},
	}
	for _, tc := range cases {
		if got := tc.in.Simplify().String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestExactRoots(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"perfect square", SqrtOf(N(4)), "2"},
		{"rational perfect square", SqrtOf(F(9, 4)), "3/2"},
		{"irrational stays symbolic", SqrtOf(N(2)), "sqrt(2)"},
		{"negative radicand", SqrtOf(N(-4)), "2*i"},
		{"negative irrational radicand", SqrtOf(N(-3)), "sqrt(3)*i"},
		{"perfect cube", PowOf(N(8), F(1, 3)), "2"},
		{"rational perfect cube", PowOf(F(27, 8), F(1, 3)), "3/2"},
		{"perfect fourth power", PowOf(N(16), F(1, 4)), "2"},
		{"reciprocal cube root", PowOf(N(8), F(-1, 3)), "1/2"},
		{"non-cube stays symbolic", PowOf(N(9), F(1, 3)), "9^(1/3)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestImaginaryUnitFolding(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want Expr
	}{
		{"i squared", MulOf(ImagUnit, ImagUnit), N(-1)},
		{"i fourth", PowOf(ImagUnit, N(4)), N(1)},
		{"i cubed", PowOf(ImagUnit, N(3)), Neg(ImagUnit)},
		{"sqrt of minus one times itself", MulOf(SqrtOf(N(-1)), SqrtOf(N(-1))), N(-1)},
	}
	for _, tc := range cases {
		if !tc.in.Simplify().Equal(tc.want) {
			t.Errorf("%s: got %s, want %s", tc.name, tc.in, tc.want)
		}
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	exprs := []Expr{
		AddOf(S("x"), S("x"), N(3)),
		MulOf(F(1, 2), SqrtOf(N(2))),
		PowOf(AddOf(S("x"), N(1)), N(2)),
		FuncOf("sin", S("x")),
		DivOf(FuncOf("ln", S("x")), S("x")),
	}
	for _, e := range exprs {
		once := e.Simplify()
		twice := once.Simplify()
		if !once.Equal(twice) {
			t.Errorf("simplify not idempotent for %s: %s vs %s", e, once, twice)
		}
		if once.String() != twice.String() {
			t.Errorf("rendering drifted for %s: %q vs %q", e, once, twice)
		}
	}
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := AddOf(S("x"), S("y"))
	b := AddOf(S("y"), S("x"))
	if !a.Equal(b) {
		t.Errorf("expected %s == %s", a, b)
	}
	p := MulOf(N(2), S("x"), S("y"))
	q := MulOf(S("y"), N(2), S("x"))
	if !p.Equal(q) {
		t.Errorf("expected %s == %s", p, q)
	}
	if a.Equal(p) {
		t.Errorf("expected %s != %s", a, p)
	}
}

func TestSubstitution(t *testing.T) {
	e := AddOf(FuncOf("sin", S("x")), PowOf(S("y"), N(2)))
	got := e.Sub("x", MulOf(F(1, 2), Pi)).Sub("y", N(3)).Simplify()
	if !got.Equal(N(10)) {
		t.Errorf("sin(pi/2) + 3^2 = %s, want 10", got)
	}
}

func TestEvalApproximates(t *testing.T) {
	e := MulOf(N(2), Pi)
	n, ok := e.Eval()
	if !ok {
		t.Fatal("2*pi should evaluate")
	}
	if f := n.Float64(); f < 6.28 || f > 6.29 {
		t.Errorf("2*pi evaluated to %v", f)
	}
	if _, ok := S("x").Eval(); ok {
		t.Error("free symbol must not evaluate")
	}
	if _, ok := PowOf(S("x"), N(2)).Sub("x", ImagUnit).Eval(); ok == false {
		// i^2 folds to -1 before evaluation
		t.Error("i^2 should evaluate to an exact number")
	}
}

func TestUndefinedFormsSurvive(t *testing.T) {
	div := DivOf(N(1), N(0))
	if !hasUndefined(div) {
		t.Errorf("1/0 should be flagged undefined, got %s", div)
	}
	prod := MulOf(N(0), DivOf(N(1), N(0)))
	if n, ok := prod.(*Num); ok && n.IsZero() {
		t.Error("0 * (1/0) must not collapse to zero")
	}
	one := PowOf(N(1), DivOf(N(1), N(0)))
	if n, ok := one.(*Num); ok && n.IsOne() {
		t.Error("1^(1/0) must not collapse to one")
	}
}

func TestNumRendering(t *testing.T) {
	cases := []struct {
		in   *Num
		want string
	}{
		{N(42), "42"},
		{N(-7), "-7"},
		{F(1, 2), "1/2"},
		{F(-3, 4), "-3/4"},
		{NFloat(2.5), "5/2"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Num %v rendered as %q, want %q", tc.in.Rat(), got, tc.want)
		}
	}
}
