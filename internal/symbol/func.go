package symbol

import (
	"math"
	"math/big"
)

// Func applies a named elementary function to one argument.
type Func struct {
	name string
	arg  Expr
}

// knownFuncs is the set of function names the engine (and the parser)
// accepts. sqrt and root are handled structurally as powers.
var knownFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "ln": true,
	"abs": true, "floor": true, "ceil": true, "sign": true,
}

// IsKnownFunc reports whether name is a supported elementary function.
func IsKnownFunc(name string) bool { return knownFuncs[name] || name == "sqrt" }

// FuncOf returns the simplified application of a named function.
func FuncOf(name string, arg Expr) Expr { return funcExpr(name, arg) }

func funcExpr(name string, arg Expr) Expr {
	if name == "sqrt" {
		return SqrtOf(arg)
	}
	return (&Func{name: name, arg: arg}).Simplify()
}

func (f *Func) kind() string { return "func" }
func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()

	switch f.name {
	case "exp":
		if n, ok := arg.(*Num); ok {
			if n.IsZero() {
				return N(1)
			}
			if n.IsOne() {
				return E
			}
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}

	case "ln":
		if n, ok := arg.(*Num); ok && n.IsPositive() {
			if n.IsOne() {
				return N(0)
			}
			if n.IsInteger() {
				// ln(b^k) = k*ln(b) so quotients of logs cancel exactly.
				if b, k, ok := perfectPower(n.val.Num()); ok {
					return MulOf(N(k), funcExpr("ln", N(b)))
				}
			} else if n.val.Num().Cmp(big.NewInt(1)) == 0 {
				return MulOf(N(-1), funcExpr("ln", &Num{val: new(big.Rat).SetInt(n.val.Denom())}))
			}
		}
		if c, ok := arg.(*Const); ok && c.name == "e" {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
		if p, ok := arg.(*Pow); ok {
			if lnSafeBase(p.base) {
				return MulOf(p.exp, funcExpr("ln", p.base))
			}
		}

	case "abs":
		if n, ok := arg.(*Num); ok {
			return numAbs(n)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
		if m, ok := arg.(*Mul); ok {
			if c, cok := m.factors[0].(*Num); cok && c.IsNegative() {
				rest := m.factors[1:]
				var restExpr Expr
				if len(rest) == 1 {
					restExpr = rest[0]
				} else {
					restExpr = &Mul{factors: rest}
				}
				return MulOf(numAbs(c), funcExpr("abs", restExpr))
			}
		}

	case "floor":
		if n, ok := arg.(*Num); ok {
			q := new(big.Int).Quo(n.val.Num(), n.val.Denom())
			if !n.val.IsInt() && n.val.Sign() < 0 {
				q.Sub(q, big.NewInt(1))
			}
			return &Num{val: new(big.Rat).SetInt(q)}
		}

	case "ceil":
		if n, ok := arg.(*Num); ok {
			q := new(big.Int).Quo(n.val.Num(), n.val.Denom())
			if !n.val.IsInt() && n.val.Sign() > 0 {
				q.Add(q, big.NewInt(1))
			}
			return &Num{val: new(big.Rat).SetInt(q)}
		}

	case "sign":
		if n, ok := arg.(*Num); ok {
			return N(int64(n.val.Sign()))
		}

	case "sin", "tan", "sinh", "tanh", "asin", "atan":
		// Odd functions pull a negative coefficient out front.
		if m, ok := arg.(*Mul); ok {
			if c, cok := m.factors[0].(*Num); cok && c.IsNegative() {
				return MulOf(N(-1), funcExpr(f.name, MulOf(N(-1), arg)))
			}
		}
		if n, ok := arg.(*Num); ok && n.IsNegative() {
			return MulOf(N(-1), funcExpr(f.name, numNeg(n)))
		}
		if e, ok := f.exactValue(arg); ok {
			return e
		}

	case "cos", "cosh":
		// Even functions drop the sign of the argument.
		if m, ok := arg.(*Mul); ok {
			if c, cok := m.factors[0].(*Num); cok && c.IsNegative() {
				return funcExpr(f.name, MulOf(N(-1), arg))
			}
		}
		if n, ok := arg.(*Num); ok && n.IsNegative() {
			return funcExpr(f.name, numNeg(n))
		}
		if e, ok := f.exactValue(arg); ok {
			return e
		}

	case "acos":
		if e, ok := f.exactValue(arg); ok {
			return e
		}
	}

	if e, ok := f.exactValue(arg); ok {
		return e
	}
	return &Func{name: f.name, arg: arg}
}

// lnSafeBase reports whether ln(base^e) may be rewritten as e*ln(base)
// without changing branch: positive rationals and the constants e and pi.
func lnSafeBase(base Expr) bool {
	switch v := base.(type) {
	case *Num:
		return v.IsPositive()
	case *Const:
		return v.name == "e" || v.name == "pi"
	}
	return false
}

// exactValue resolves closed-form values: trig at rational multiples of pi
// (denominators 1, 2, 3, 4, 6), hyperbolics at 0, and a small inverse-trig
// table.
func (f *Func) exactValue(arg Expr) (Expr, bool) {
	switch f.name {
	case "sin", "cos", "tan":
		c, ok := piMultiple(arg)
		if !ok {
			return nil, false
		}
		k12 := new(big.Rat).Mul(c, new(big.Rat).SetInt64(12))
		if !k12.IsInt() {
			return nil, false
		}
		k := int(new(big.Int).Mod(k12.Num(), big.NewInt(24)).Int64())
		switch f.name {
		case "sin":
			return sinExact(k)
		case "cos":
			return sinExact((k + 6) % 24)
		case "tan":
			s, sok := sinExact(k)
			co, cok := sinExact((k + 6) % 24)
			if !sok || !cok {
				return nil, false
			}
			if n, zok := co.(*Num); zok && n.IsZero() {
				return nil, false // tan at odd multiples of pi/2 is undefined
			}
			return DivOf(s, co), true
		}

	case "sinh", "tanh":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return N(0), true
		}
	case "cosh":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return N(1), true
		}

	case "asin":
		return inverseTrigValue(arg, map[string]Expr{
			"0": N(0), "1": MulOf(F(1, 2), Pi), "1/2": MulOf(F(1, 6), Pi),
		})
	case "acos":
		return inverseTrigValue(arg, map[string]Expr{
			"0": MulOf(F(1, 2), Pi), "1": N(0), "-1": Pi, "1/2": MulOf(F(1, 3), Pi),
		})
	case "atan":
		return inverseTrigValue(arg, map[string]Expr{
			"0": N(0), "1": MulOf(F(1, 4), Pi),
		})
	}
	return nil, false
}

func inverseTrigValue(arg Expr, table map[string]Expr) (Expr, bool) {
	n, ok := arg.(*Num)
	if !ok {
		return nil, false
	}
	v, ok := table[n.val.RatString()]
	return v, ok
}

// perfectPower factors a positive integer as base^k with k >= 2 when its
// prime exponents share a common divisor. Inputs beyond int64 (or with a
// large prime factor) are left alone.
func perfectPower(n *big.Int) (base, k int64, ok bool) {
	if !n.IsInt64() {
		return 0, 0, false
	}
	m := n.Int64()
	if m < 2 {
		return 0, 0, false
	}
	type pf struct {
		p int64
		e int64
	}
	var factors []pf
	for d := int64(2); d*d <= m && d <= 1_000_000; d++ {
		if m%d != 0 {
			continue
		}
		e := int64(0)
		for m%d == 0 {
			m /= d
			e++
		}
		factors = append(factors, pf{p: d, e: e})
	}
	if m > 1 {
		factors = append(factors, pf{p: m, e: 1})
	}
	g := int64(0)
	for _, f := range factors {
		g = gcd64(g, f.e)
	}
	if g < 2 {
		return 0, 0, false
	}
	base = 1
	for _, f := range factors {
		for i := int64(0); i < f.e/g; i++ {
			base *= f.p
		}
	}
	return base, g, true
}

func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// piMultiple reports c such that arg equals c*pi exactly.
func piMultiple(arg Expr) (*big.Rat, bool) {
	switch v := arg.(type) {
	case *Num:
		if v.IsZero() {
			return new(big.Rat), true
		}
	case *Const:
		if v.name == "pi" {
			return new(big.Rat).SetInt64(1), true
		}
	case *Mul:
		if len(v.factors) != 2 {
			return nil, false
		}
		c, cok := v.factors[0].(*Num)
		p, pok := v.factors[1].(*Const)
		if cok && pok && p.name == "pi" {
			return c.Rat(), true
		}
	}
	return nil, false
}

// sinExact returns sin(k*pi/12) for k in [0, 24) when the value has a
// closed form over {0, 1/2, sqrt(2)/2, sqrt(3)/2, 1}.
func sinExact(k int) (Expr, bool) {
	if k >= 12 {
		v, ok := sinExact(k - 12)
		if !ok {
			return nil, false
		}
		return MulOf(N(-1), v), true
	}
	switch k {
	case 0:
		return N(0), true
	case 2, 10:
		return F(1, 2), true
	case 3, 9:
		return MulOf(F(1, 2), SqrtOf(N(2))), true
	case 4, 8:
		return MulOf(F(1, 2), SqrtOf(N(3))), true
	case 6:
		return N(1), true
	}
	return nil, false
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcExpr(f.name, f.arg.Sub(varName, value))
}

// Diff applies the chain rule with the elementary derivative table.
func (f *Func) Diff(varName string) Expr {
	u := f.arg
	du := u.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = funcExpr("cos", u)
	case "cos":
		outer = MulOf(N(-1), funcExpr("sin", u))
	case "tan":
		outer = PowOf(funcExpr("cos", u), N(-2))
	case "asin":
		outer = PowOf(SubOf(N(1), PowOf(u, N(2))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(SubOf(N(1), PowOf(u, N(2))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "sinh":
		outer = funcExpr("cosh", u)
	case "cosh":
		outer = funcExpr("sinh", u)
	case "tanh":
		outer = SubOf(N(1), PowOf(funcExpr("tanh", u), N(2)))
	case "exp":
		outer = funcExpr("exp", u)
	case "ln":
		outer = PowOf(u, N(-1))
	case "abs":
		outer = funcExpr("sign", u)
	case "floor", "ceil", "sign":
		return N(0)
	default:
		return N(0)
	}
	return MulOf(outer, du)
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	x := n.Float64()
	var v float64
	switch f.name {
	case "sin":
		v = math.Sin(x)
	case "cos":
		v = math.Cos(x)
	case "tan":
		v = math.Tan(x)
	case "asin":
		if x < -1 || x > 1 {
			return nil, false
		}
		v = math.Asin(x)
	case "acos":
		if x < -1 || x > 1 {
			return nil, false
		}
		v = math.Acos(x)
	case "atan":
		v = math.Atan(x)
	case "sinh":
		v = math.Sinh(x)
	case "cosh":
		v = math.Cosh(x)
	case "tanh":
		v = math.Tanh(x)
	case "exp":
		v = math.Exp(x)
	case "ln":
		if n.val.Sign() <= 0 {
			return nil, false
		}
		v = math.Log(x)
	case "abs":
		return numAbs(n), true
	case "floor":
		v = math.Floor(x)
	case "ceil":
		v = math.Ceil(x)
	case "sign":
		return N(int64(n.val.Sign())), true
	default:
		return nil, false
	}
	if !isFiniteFloat(v) {
		return nil, false
	}
	return NFloat(v), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "exp":
		return "e^{" + f.arg.LaTeX() + "}"
	case "ln":
		return `\ln\left(` + f.arg.LaTeX() + `\right)`
	case "abs":
		return `\left|` + f.arg.LaTeX() + `\right|`
	case "floor":
		return `\lfloor ` + f.arg.LaTeX() + ` \rfloor`
	case "ceil":
		return `\lceil ` + f.arg.LaTeX() + ` \rceil`
	case "sinh", "cosh", "tanh", "sign":
		return `\operatorname{` + f.name + `}\left(` + f.arg.LaTeX() + `\right)`
	default:
		return `\` + f.name + `\left(` + f.arg.LaTeX() + `\right)`
	}
}

func isFiniteFloat(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func powFloat(b, e float64) float64 {
	return math.Pow(b, e)
}
