package symbol

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add — n-ary sum
// ============================================================

// Add is an n-ary sum. Simplified sums are flat, hold at most one numeric
// term (kept last), and merge like terms by their non-numeric part.
type Add struct{ terms []Expr }

// AddOf returns the simplified sum of the given terms.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// SubOf returns the simplified difference a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

// Neg returns the simplified negation of e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

func (a *Add) kind() string  { return "add" }
func (a *Add) Terms() []Expr { return a.terms }

func flattenAdd(terms []Expr) []Expr {
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			out = append(out, inner.terms...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// extractCoefficient splits a simplified non-numeric term into its numeric
// coefficient and the remaining factor product.
func extractCoefficient(t Expr) (*Num, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return N(1), t
	}
	c, cok := m.factors[0].(*Num)
	if !cok {
		return N(1), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}
	return c, &Mul{factors: rest}
}

func (a *Add) Simplify() Expr {
	flat := flattenAdd(a.terms)
	acc := N(0)
	type group struct {
		coeff *Num
		rest  Expr
	}
	groups := make(map[string]*group)
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			acc = numAdd(acc, n)
			continue
		}
		coeff, rest := extractCoefficient(t)
		key := rest.String()
		if g, ok := groups[key]; ok {
			g.coeff = numAdd(g.coeff, coeff)
			continue
		}
		groups[key] = &group{coeff: coeff, rest: rest}
		order = append(order, key)
	}
	var out []Expr
	for _, key := range order {
		g := groups[key]
		switch {
		case g.coeff.IsZero():
		case g.coeff.IsOne():
			out = append(out, g.rest)
		default:
			out = append(out, MulOf(g.coeff, g.rest))
		}
	}
	if !acc.IsZero() {
		out = append(out, acc)
	}
	switch len(out) {
	case 0:
		return acc
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) Sub(varName string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(varName, value)
	}
	return AddOf(terms...)
}

func (a *Add) Diff(varName string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Diff(varName)
	}
	return AddOf(terms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		n, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, n)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	used := make([]bool, len(o.terms))
	for _, t := range a.terms {
		found := false
		for j, ot := range o.terms {
			if !used[j] && t.Equal(ot) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if rest, ok := strings.CutPrefix(s, "-"); ok {
			b.WriteString(" - ")
			b.WriteString(rest)
			continue
		}
		b.WriteString(" + ")
		b.WriteString(s)
	}
	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if rest, ok := strings.CutPrefix(s, "-"); ok {
			b.WriteString(" - ")
			b.WriteString(rest)
			continue
		}
		b.WriteString(" + ")
		b.WriteString(s)
	}
	return b.String()
}

// ============================================================
// Mul — n-ary product
// ============================================================

// Mul is an n-ary product. Simplified products are flat, carry at most one
// numeric coefficient (kept first), group equal bases by summing exponents,
// and fold powers of the imaginary unit.
type Mul struct{ factors []Expr }

// MulOf returns the simplified product of the given factors.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// DivOf returns the simplified quotient a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) kind() string    { return "mul" }
func (m *Mul) Factors() []Expr { return m.factors }

func flattenMul(factors []Expr) []Expr {
	out := make([]Expr, 0, len(factors))
	for _, f := range factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			out = append(out, inner.factors...)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (m *Mul) Simplify() Expr {
	flat := flattenMul(m.factors)
	coeff := N(1)
	imag := 0
	type group struct {
		base Expr
		exps []Expr
	}
	groups := make(map[string]*group)
	var order []string
	addFactor := func(base, exp Expr) {
		key := base.String()
		if g, ok := groups[key]; ok {
			g.exps = append(g.exps, exp)
			return
		}
		groups[key] = &group{base: base, exps: []Expr{exp}}
		order = append(order, key)
	}
	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Const:
			if v.name == "i" {
				imag++
				continue
			}
			addFactor(v, N(1))
		case *Pow:
			if c, ok := v.base.(*Const); ok && c.name == "i" {
				if en, eok := v.exp.(*Num); eok && en.IsInteger() {
					k := int(new(big.Int).Mod(en.val.Num(), big.NewInt(4)).Int64())
					imag += k
					continue
				}
			}
			addFactor(v.base, v.exp)
		default:
			addFactor(f, N(1))
		}
	}
	switch imag % 4 {
	case 0, 1:
		imag = imag % 4
	case 2:
		coeff = numNeg(coeff)
		imag = 0
	case 3:
		coeff = numNeg(coeff)
		imag = 1
	}
	sort.Strings(order)
	var factors []Expr
	for _, key := range order {
		g := groups[key]
		var exp Expr
		if len(g.exps) == 1 {
			exp = g.exps[0]
		} else {
			exp = AddOf(g.exps...)
		}
		if en, ok := exp.(*Num); ok && en.IsZero() {
			continue
		}
		switch built := PowOf(g.base, exp).(type) {
		case *Num:
			coeff = numMul(coeff, built)
		case *Mul:
			factors = append(factors, built.factors...)
		default:
			factors = append(factors, built)
		}
	}
	if imag == 1 {
		factors = append(factors, ImagUnit)
	}
	if coeff.IsZero() {
		// 0 * x is 0, but 0 * (1/0) must stay undefined so that limits
		// fall through to L'Hopital instead of reading a false zero.
		undefined := false
		for _, f := range factors {
			if hasUndefined(f) || containsInf(f) {
				undefined = true
				break
			}
		}
		if !undefined {
			return N(0)
		}
		return &Mul{factors: append([]Expr{N(0)}, factors...)}
	}
	if len(factors) == 0 {
		return coeff
	}
	if !coeff.IsOne() {
		factors = append([]Expr{coeff}, factors...)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(varName, value)
	}
	return MulOf(factors...)
}

// Diff applies the product rule across all factors.
func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		for j, f := range m.factors {
			if i == j {
				parts = append(parts, f.Diff(varName))
				continue
			}
			parts = append(parts, f)
		}
		terms = append(terms, MulOf(parts...))
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		n, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, n)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	used := make([]bool, len(o.factors))
	for _, f := range m.factors {
		found := false
		for j, of := range o.factors {
			if !used[j] && f.Equal(of) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders the product as a quotient when it contains reciprocal
// powers or a fractional coefficient, e.g. sqrt(3)/2 rather than 1/2*3^(1/2).
func (m *Mul) String() string {
	sign := ""
	var num, den []string
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			s := v.String()
			if rest, ok := strings.CutPrefix(s, "-"); ok {
				sign = "-"
				s = rest
			}
			if p, q, ok := strings.Cut(s, "/"); ok {
				if p != "1" {
					num = append(num, p)
				}
				den = append(den, q)
				continue
			}
			if s != "1" {
				num = append(num, s)
			}
		case *Pow:
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				den = append(den, (&Pow{base: v.base, exp: numNeg(en)}).String())
				continue
			}
			num = append(num, v.String())
		case *Add:
			num = append(num, "("+v.String()+")")
		default:
			num = append(num, v.String())
		}
	}
	top := "1"
	if len(num) > 0 {
		top = joinStrings(num, "*")
	}
	if len(den) == 0 {
		return sign + top
	}
	for i, d := range den {
		if strings.ContainsAny(d, " +-*/") {
			den[i] = "(" + d + ")"
		}
	}
	bottom := den[0]
	if len(den) > 1 {
		bottom = "(" + joinStrings(den, "*") + ")"
	}
	return sign + top + "/" + bottom
}

func (m *Mul) LaTeX() string {
	sign := ""
	var num, den []string
	for _, f := range m.factors {
		switch v := f.(type) {
		case *Num:
			if v.IsNegOne() {
				sign = "-"
				continue
			}
			s := v.LaTeX()
			if rest, ok := strings.CutPrefix(s, "-"); ok {
				sign = "-"
				s = rest
			}
			num = append(num, s)
		case *Pow:
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				den = append(den, (&Pow{base: v.base, exp: numNeg(en)}).LaTeX())
				continue
			}
			num = append(num, v.LaTeX())
		case *Add:
			num = append(num, `\left(`+v.LaTeX()+`\right)`)
		default:
			num = append(num, v.LaTeX())
		}
	}
	top := "1"
	if len(num) > 0 {
		top = joinStrings(num, ` \cdot `)
	}
	if len(den) == 0 {
		return sign + top
	}
	return sign + `\frac{` + top + `}{` + joinStrings(den, ` \cdot `) + `}`
}

// ============================================================
// Pow — exponentiation
// ============================================================

// Pow is base raised to exp.
type Pow struct{ base, exp Expr }

// PowOf returns the simplified power base^exp.
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf returns the simplified principal square root of e. Negative exact
// rationals yield an exact imaginary multiple of i.
func SqrtOf(e Expr) Expr { return PowOf(e, F(1, 2)) }

func (p *Pow) kind() string { return "pow" }
func (p *Pow) Base() Expr   { return p.base }
func (p *Pow) Exp() Expr    { return p.exp }

// maxExpandExp bounds eager integer exponentiation of exact rationals.
const maxExpandExp = 64

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			if bn, bok := base.(*Num); bok && bn.IsZero() {
				return &Pow{base: base, exp: exp} // 0^0 stays undefined
			}
			if hasUndefined(base) || containsInf(base) {
				return &Pow{base: base, exp: exp}
			}
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, eok := exp.(*Num); eok && !en.IsPositive() {
				return &Pow{base: base, exp: exp} // 0^neg stays undefined
			}
			if _, eok := exp.(*Num); eok {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			if !hasUndefined(exp) && !containsInf(exp) {
				return N(1)
			}
			return &Pow{base: base, exp: exp}
		}
		if en, eok := exp.(*Num); eok {
			if r, ok := ratIntPow(bn, en); ok {
				return r
			}
			if r, ok := exactRoot(bn, en); ok {
				return r
			}
		}
	}

	// i^n folds through the period-four cycle.
	if c, ok := base.(*Const); ok && c.name == "i" {
		if en, eok := exp.(*Num); eok && en.IsInteger() {
			k := int(new(big.Int).Mod(en.val.Num(), big.NewInt(4)).Int64())
			switch k {
			case 0:
				return N(1)
			case 1:
				return ImagUnit
			case 2:
				return N(-1)
			case 3:
				return MulOf(N(-1), ImagUnit)
			}
		}
	}

	// (b^m)^n with integer n merges exponents.
	if inner, ok := base.(*Pow); ok {
		if en, eok := exp.(*Num); eok && en.IsInteger() {
			return PowOf(inner.base, MulOf(inner.exp, en))
		}
	}

	// (a*b)^n with integer n distributes over the factors.
	if m, ok := base.(*Mul); ok {
		if en, eok := exp.(*Num); eok && en.IsInteger() {
			parts := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				parts[i] = PowOf(f, en)
			}
			return MulOf(parts...)
		}
	}

	// e^x folds into the exp function so exp/ln rules apply uniformly.
	if c, ok := base.(*Const); ok && c.name == "e" {
		return funcExpr("exp", exp)
	}

	return &Pow{base: base, exp: exp}
}

// ratIntPow computes an exact rational power for integer exponents of
// manageable size.
func ratIntPow(base, exp *Num) (*Num, bool) {
	if !exp.IsInteger() {
		return nil, false
	}
	n := exp.val.Num()
	if n.CmpAbs(big.NewInt(maxExpandExp)) > 0 {
		return nil, false
	}
	k := n.Int64()
	neg := k < 0
	if neg {
		k = -k
	}
	acc := N(1)
	for i := int64(0); i < k; i++ {
		acc = numMul(acc, base)
	}
	if neg {
		acc = numRecip(acc)
	}
	return acc, true
}

// exactRoot resolves b^(±1/k) for exact rationals. Square roots collapse
// perfect squares to rationals, factor out square parts, and turn negative
// bases into imaginary multiples of i; higher roots collapse perfect k-th
// powers of non-negative bases. Everything else stays symbolic.
func exactRoot(base, exp *Num) (Expr, bool) {
	if !exp.val.Num().IsInt64() || !exp.val.Denom().IsInt64() {
		return nil, false
	}
	p := exp.val.Num().Int64()
	q := exp.val.Denom().Int64()
	if (p != 1 && p != -1) || q < 2 || q > 64 {
		return nil, false
	}
	if q == 2 {
		half := F(1, 2)
		negHalf := F(-1, 2)
		switch p {
		case 1:
			if base.IsNegative() {
				return MulOf(SqrtOf(numAbs(base)), ImagUnit), true
			}
			if r, ok := ratSqrt(base.val); ok {
				return ratNum(r), true
			}
			if coeff, radicand, ok := squarePart(base.val); ok {
				return MulOf(ratNum(coeff), &Pow{base: ratNum(radicand), exp: half}), true
			}
		case -1:
			if base.IsNegative() {
				// 1/(sqrt(|b|)*i) = -i/sqrt(|b|)
				return MulOf(N(-1), PowOf(numAbs(base), negHalf), ImagUnit), true
			}
			if r, ok := ratSqrt(base.val); ok {
				return ratNum(new(big.Rat).Inv(r)), true
			}
		}
		return nil, false
	}
	if base.IsNegative() {
		return nil, false
	}
	r, ok := ratRoot(base.val, q)
	if !ok {
		return nil, false
	}
	if p == -1 {
		if r.Sign() == 0 {
			return nil, false
		}
		return ratNum(new(big.Rat).Inv(r)), true
	}
	return ratNum(r), true
}

// ratRoot returns the exact q-th root of a non-negative rational when both
// numerator and denominator are perfect q-th powers.
func ratRoot(r *big.Rat, q int64) (*big.Rat, bool) {
	pn, ok := intRoot(r.Num(), q)
	if !ok {
		return nil, false
	}
	pd, ok := intRoot(r.Denom(), q)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(pn, pd), true
}

// intRoot returns the exact q-th root of a non-negative integer, verifying
// a float-derived candidate against the rounding error of math.Pow.
func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() < 0 || !n.IsInt64() {
		return nil, false
	}
	v := n.Int64()
	c := int64(math.Round(math.Pow(float64(v), 1/float64(q))))
	for _, cand := range []int64{c - 1, c, c + 1} {
		if cand < 0 {
			continue
		}
		pow := new(big.Int).Exp(big.NewInt(cand), big.NewInt(q), nil)
		if pow.IsInt64() && pow.Int64() == v {
			return big.NewInt(cand), true
		}
	}
	return nil, false
}

// squarePart rewrites sqrt(p/q) as coeff*sqrt(d) with d a square-free
// integer, via sqrt(p/q) = sqrt(p*q)/q. Reports false when nothing factors
// out or the value is too large to factor cheaply.
func squarePart(r *big.Rat) (*big.Rat, *big.Rat, bool) {
	m := new(big.Int).Mul(r.Num(), r.Denom())
	if m.Sign() <= 0 || !m.IsInt64() {
		return nil, nil, false
	}
	d := m.Int64()
	s := int64(1)
	for f := int64(2); f*f <= d && f <= 1000; f++ {
		sq := f * f
		for d%sq == 0 {
			d /= sq
			s *= f
		}
	}
	if s == 1 {
		return nil, nil, false
	}
	coeff := new(big.Rat).SetFrac(big.NewInt(s), r.Denom())
	return coeff, new(big.Rat).SetInt64(d), true
}

// ratSqrt returns the exact square root of a non-negative rational when both
// numerator and denominator are perfect squares.
func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	pn := new(big.Int).Sqrt(r.Num())
	if new(big.Int).Mul(pn, pn).Cmp(r.Num()) != 0 {
		return nil, false
	}
	pd := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(pd, pd).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(pn, pd), true
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

// Diff uses the generalized power rule d(u^v) = u^v * (v'*ln(u) + v*u'/u).
func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if n, ok := dv.(*Num); ok && n.IsZero() {
		// d(u^c) = c*u^(c-1)*u'
		return MulOf(p.exp, PowOf(p.base, SubOf(p.exp, N(1))), du)
	}
	inner := AddOf(
		MulOf(dv, funcExpr("ln", p.base)),
		MulOf(p.exp, du, PowOf(p.base, N(-1))),
	)
	return MulOf(PowOf(p.base, p.exp), inner)
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok := p.base.Eval()
	if !ok {
		return nil, false
	}
	e, ok := p.exp.Eval()
	if !ok {
		return nil, false
	}
	if e.IsInteger() {
		if b.IsZero() && !e.IsPositive() {
			return nil, false
		}
		if r, ok := ratIntPow(b, e); ok {
			return r, true
		}
	}
	f := powFloat(b.Float64(), e.Float64())
	if !isFiniteFloat(f) {
		return nil, false
	}
	return NFloat(f), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok {
		if numCmp(en, F(1, 2)) == 0 {
			return "sqrt(" + p.base.String() + ")"
		}
		if en.IsNegative() {
			inner := (&Pow{base: p.base, exp: numNeg(en)}).String()
			if strings.ContainsAny(inner, " +-*/") {
				inner = "(" + inner + ")"
			}
			return "1/" + inner
		}
		if en.IsOne() {
			return p.base.String()
		}
	}
	baseStr := renderOperand(p.base)
	expStr := p.exp.String()
	if strings.ContainsAny(expStr, " +-*/") {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok {
		if numCmp(en, F(1, 2)) == 0 {
			return `\sqrt{` + p.base.LaTeX() + `}`
		}
		if en.IsNegative() {
			return `\frac{1}{` + (&Pow{base: p.base, exp: numNeg(en)}).LaTeX() + `}`
		}
	}
	return renderOperandLaTeX(p.base) + "^{" + p.exp.LaTeX() + "}"
}
