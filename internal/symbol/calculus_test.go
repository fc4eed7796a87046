package symbol

import "testing"

func TestDiff(t *testing.T) {
	x := S("x")
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"power rule", PowOf(x, N(3)), "3*x^2"},
		{"constant", N(42), "0"},
		{"other symbol", S("y"), "0"},
		{"sine", FuncOf("sin", x), "cos(x)"},
		{"cosine", FuncOf("cos", x), "-sin(x)"},
		{"natural log", FuncOf("ln", x), "1/x"},
		{"exponential chain", FuncOf("exp", MulOf(N(2), x)), "2*exp(2*x)"},
		{"product rule", MulOf(x, FuncOf("ln", x)), "ln(x) + 1"},
		{"reciprocal", PowOf(x, N(-1)), "-1/x^2"},
	}
	for _, tc := range cases {
		if got := Diff(tc.in, "x").String(); got != tc.want {
			t.Errorf("%s: d/dx %s = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestExpand(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(x + 1)^2", "x^2 + 2*x + 1"},
		{"(x - 1)^3", "x^3 - 3*x^2 + 3*x - 1"},
		{"(x + 1)^4", "x^4 + 4*x^3 + 6*x^2 + 4*x + 1"},
		{"(x - 2)*(x + 2)", "x^2 - 4"},
		{"x*(x + 3)", "x^2 + 3*x"},
		{"(x + y)^2", "x^2 + 2*x*y + y^2"},
	}
	for _, tc := range cases {
		e, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := Expand(e).String(); got != tc.want {
			t.Errorf("Expand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPolyCoeffs(t *testing.T) {
	e, err := Parse("2*x**2 + 3*x - 5")
	if err != nil {
		t.Fatal(err)
	}
	coeffs, ok := PolyCoeffs(e, "x")
	if !ok {
		t.Fatal("expected polynomial")
	}
	want := map[int]Expr{2: N(2), 1: N(3), 0: N(-5)}
	for deg, c := range want {
		got, present := coeffs[deg]
		if !present || !got.Equal(c) {
			t.Errorf("coefficient of x^%d = %v, want %s", deg, got, c)
		}
	}
	if deg, _ := Degree(e, "x"); deg != 2 {
		t.Errorf("Degree = %d, want 2", deg)
	}
}

func TestPolyCoeffsRejectsNonPolynomial(t *testing.T) {
	for _, in := range []string{"ln(x)", "sin(x) + x", "x^x", "sqrt(x)", "1/x"} {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if _, ok := PolyCoeffs(e, "x"); ok {
			t.Errorf("%q should not be polynomial in x", in)
		}
	}
}

func TestTaylorSeries(t *testing.T) {
	e, err := Parse("sin(x)")
	if err != nil {
		t.Fatal(err)
	}
	series, err := TaylorSeries(e, "x", N(0), 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := series.String(); got != "x - x^3/6" {
		t.Errorf("sin Maclaurin order 3 = %q, want %q", got, "x - x^3/6")
	}

	if _, err := TaylorSeries(PowOf(S("x"), N(-1)), "x", N(0), 2); err == nil {
		t.Error("series of 1/x at 0 should fail")
	}
}

func TestFreeSymbols(t *testing.T) {
	e, err := Parse("x*y + sin(z) + pi")
	if err != nil {
		t.Fatal(err)
	}
	free := FreeSymbols(e)
	for _, name := range []string{"x", "y", "z"} {
		if !free[name] {
			t.Errorf("missing free symbol %s", name)
		}
	}
	if free["pi"] {
		t.Error("pi is a constant, not a free symbol")
	}
	if len(free) != 3 {
		t.Errorf("free symbols = %v, want exactly x, y, z", free)
	}
}
