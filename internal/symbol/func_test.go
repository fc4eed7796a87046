package symbol

import "testing"

func TestExactTrigValues(t *testing.T) {
	halfPi := MulOf(F(1, 2), Pi)
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"sin zero", FuncOf("sin", N(0)), "0"},
		{"sin pi", FuncOf("sin", Pi), "0"},
		{"sin half pi", FuncOf("sin", halfPi), "1"},
		{"sin pi sixth", FuncOf("sin", MulOf(F(1, 6), Pi)), "1/2"},
		{"sin pi quarter", FuncOf("sin", MulOf(F(1, 4), Pi)), "sqrt(2)/2"},
		{"sin pi third", FuncOf("sin", MulOf(F(1, 3), Pi)), "sqrt(3)/2"},
		{"cos zero", FuncOf("cos", N(0)), "1"},
		{"cos pi", FuncOf("cos", Pi), "-1"},
		{"cos half pi", FuncOf("cos", halfPi), "0"},
		{"tan pi quarter", FuncOf("tan", MulOf(F(1, 4), Pi)), "1"},
		{"sin negative arg is odd", FuncOf("sin", Neg(halfPi)), "-1"},
		{"cos negative arg is even", FuncOf("cos", Neg(Pi)), "-1"},
		{"sin pi fifth stays symbolic", FuncOf("sin", MulOf(F(1, 5), Pi)), "sin(pi/5)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLogarithmRules(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"ln one", FuncOf("ln", N(1)), "0"},
		{"ln e", FuncOf("ln", E), "1"},
		{"ln of exp", FuncOf("ln", FuncOf("exp", S("x"))), "x"},
		{"exp of ln", FuncOf("exp", FuncOf("ln", S("x"))), "x"},
		{"exp zero", FuncOf("exp", N(0)), "1"},
		{"exp one", FuncOf("exp", N(1)), "e"},
		{"ln of power", FuncOf("ln", PowOf(N(2), S("x"))), "ln(2)*x"},
		{"ln of perfect power", FuncOf("ln", N(8)), "3*ln(2)"},
		{"ln of reciprocal", FuncOf("ln", F(1, 8)), "-3*ln(2)"},
		{"ln of prime stays", FuncOf("ln", N(5)), "ln(5)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAbsoluteValue(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want string
	}{
		{"numeric", FuncOf("abs", N(-5)), "5"},
		{"rational", FuncOf("abs", F(-3, 4)), "3/4"},
		{"negated symbol", FuncOf("abs", Neg(S("x"))), "abs(x)"},
		{"scaled symbol", FuncOf("abs", MulOf(N(-2), S("x"))), "2*abs(x)"},
		{"nested", FuncOf("abs", FuncOf("abs", S("x"))), "abs(x)"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFloorCeilSign(t *testing.T) {
	cases := []struct {
		name string
		in   Expr
		want Expr
	}{
		{"floor positive", FuncOf("floor", F(7, 2)), N(3)},
		{"floor negative", FuncOf("floor", F(-7, 2)), N(-4)},
		{"ceil positive", FuncOf("ceil", F(7, 2)), N(4)},
		{"ceil negative", FuncOf("ceil", F(-7, 2)), N(-3)},
		{"sign negative", FuncOf("sign", N(-9)), N(-1)},
		{"sign zero", FuncOf("sign", N(0)), N(0)},
	}
	for _, tc := range cases {
		if !tc.in.Simplify().Equal(tc.want) {
			t.Errorf("%s: got %s, want %s", tc.name, tc.in, tc.want)
		}
	}
}

func TestPerfectPower(t *testing.T) {
	cases := []struct {
		n    int64
		base int64
		k    int64
		ok   bool
	}{
		{8, 2, 3, true},
		{64, 2, 6, true},
		{36, 6, 2, true},
		{12, 0, 0, false},
		{7, 0, 0, false},
	}
	for _, tc := range cases {
		base, k, ok := perfectPower(N(tc.n).val.Num())
		if ok != tc.ok || base != tc.base || k != tc.k {
			t.Errorf("perfectPower(%d) = (%d, %d, %v), want (%d, %d, %v)",
				tc.n, base, k, ok, tc.base, tc.k, tc.ok)
		}
	}
}
