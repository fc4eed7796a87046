// Package symbol implements the symbolic-computation engine behind LeapCalc:
// exact rational arithmetic on math/big.Rat, deterministic simplification,
// differentiation, equation solving, and limit evaluation. Expressions are
// immutable trees; every constructor returns a simplified node.
package symbol

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Expr is the common interface of all expression nodes.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	kind() string
}

// ============================================================
// Num — exact rational number
// ============================================================

// Num is an exact rational number.
type Num struct{ val *big.Rat }

// N returns the integer n as an expression.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns the fraction p/q as an expression.
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbol: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat converts a finite float to an exact rational.
func NFloat(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("symbol: value is not finite")
	}
	return &Num{val: new(big.Rat).SetFloat64(f)}
}

func ratNum(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) kind() string          { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)

	// Rationals with denominators beyond this are treated as float
	// approximations when rendered (they come from numeric fallbacks,
	// not from exact arithmetic).
	displayDenomLimit = big.NewInt(1_000_000)
)

func (n *Num) String() string { return n.StringDigits(12) }

// StringDigits renders the number, using digits significant digits when the
// value is an approximation rather than an exact small rational.
func (n *Num) StringDigits(digits int) string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if n.val.Denom().CmpAbs(displayDenomLimit) <= 0 {
		return n.val.RatString()
	}
	f, _ := n.val.Float64()
	return strconv.FormatFloat(f, 'g', digits, 64)
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if n.val.Denom().CmpAbs(displayDenomLimit) > 0 {
		return n.String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return sign + `\frac{` + v.Num().String() + `}{` + v.Denom().String() + `}`
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbol: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

// ============================================================
// Sym — symbolic variable
// ============================================================

// Sym is a free symbolic variable.
type Sym struct{ name string }

// S returns the variable with the given name.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr    { return s }
func (s *Sym) String() string    { return s.name }
func (s *Sym) LaTeX() string     { return s.name }
func (s *Sym) Eval() (*Num, bool) { return nil, false }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}
func (s *Sym) kind() string { return "sym" }
func (s *Sym) Name() string { return s.name }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Const — named mathematical constants
// ============================================================

// Const is a named mathematical constant: pi, e, the imaginary unit i, or
// the point at infinity oo. Constants are never substituted and survive
// simplification exactly; Eval approximates pi and e while i and oo have no
// real value.
type Const struct{ name string }

var (
	// Pi is the circle constant.
	Pi = &Const{name: "pi"}
	// E is Euler's number.
	E = &Const{name: "e"}
	// ImagUnit is the imaginary unit i, with i*i = -1.
	ImagUnit = &Const{name: "i"}
	// Inf is positive infinity, used as a limit approach point and as an
	// unbounded limit value. Negative infinity is MulOf(N(-1), Inf).
	Inf = &Const{name: "oo"}
)

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) kind() string          { return "const" }
func (c *Const) Name() string          { return c.name }

func (c *Const) LaTeX() string {
	switch c.name {
	case "pi":
		return `\pi`
	case "oo":
		return `\infty`
	default:
		return c.name
	}
}

func (c *Const) Eval() (*Num, bool) {
	switch c.name {
	case "pi":
		return NFloat(math.Pi), true
	case "e":
		return NFloat(math.E), true
	}
	return nil, false
}

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	return ok && c.name == o.name
}

// ============================================================
// Shared rendering helpers
// ============================================================

// parenthesize wraps a rendered subexpression when it would bind looser than
// its context (sums and products inside powers, negative numbers, fractions).
func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul:
		return true
	case *Num:
		return v.IsNegative() || !v.IsInteger()
	case *Pow:
		return true
	}
	return false
}

func renderOperand(e Expr) string {
	if needsParens(e) {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func renderOperandLaTeX(e Expr) string {
	if needsParens(e) {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}

func joinStrings(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
