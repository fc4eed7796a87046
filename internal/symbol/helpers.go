package symbol

import (
	"fmt"
	"strconv"
)

// Simplify returns the canonical simplified form of e.
func Simplify(e Expr) Expr { return e.Simplify() }

func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.terms
	case *Mul:
		return v.factors
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	}
	return nil
}

// hasUndefined reports whether e contains a subexpression with no defined
// value: 0 raised to a non-positive power, or ln of a non-positive rational.
// Such nodes survive simplification so callers can detect them.
func hasUndefined(e Expr) bool {
	switch v := e.(type) {
	case *Pow:
		if bn, ok := v.base.(*Num); ok && bn.IsZero() {
			if en, eok := v.exp.(*Num); eok && !en.IsPositive() {
				return true
			}
		}
	case *Func:
		if v.name == "ln" {
			if n, ok := v.arg.(*Num); ok && !n.IsPositive() {
				return true
			}
		}
	}
	for _, c := range children(e) {
		if hasUndefined(c) {
			return true
		}
	}
	return false
}

// containsInf reports whether e mentions the infinity constant.
func containsInf(e Expr) bool {
	if c, ok := e.(*Const); ok && c.name == "oo" {
		return true
	}
	for _, ch := range children(e) {
		if containsInf(ch) {
			return true
		}
	}
	return false
}

// FreeSymbols returns the set of variable names appearing in e.
func FreeSymbols(e Expr) map[string]bool {
	out := make(map[string]bool)
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]bool) {
	if s, ok := e.(*Sym); ok {
		out[s.name] = true
		return
	}
	for _, c := range children(e) {
		collectSymbols(c, out)
	}
}

func containsSym(e Expr, name string) bool {
	if s, ok := e.(*Sym); ok {
		return s.name == name
	}
	for _, c := range children(e) {
		if containsSym(c, name) {
			return true
		}
	}
	return false
}

// freshSymName returns a variable name not free in e, derived from base.
func freshSymName(e Expr, base string) string {
	free := FreeSymbols(e)
	name := base
	for i := 2; free[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

// Diff returns the derivative of e with respect to varName, simplified.
func Diff(e Expr, varName string) Expr { return e.Diff(varName).Simplify() }

// maxExpandDeg bounds binomial expansion of integer powers of sums.
const maxExpandDeg = 16

// Expand distributes products over sums and expands small integer powers of
// sums, then resimplifies.
func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Mul:
		products := []Expr{N(1)}
		for _, f := range v.factors {
			ef := expandExpr(f)
			if sum, ok := ef.(*Add); ok {
				next := make([]Expr, 0, len(products)*len(sum.terms))
				for _, p := range products {
					for _, t := range sum.terms {
						next = append(next, MulOf(p, t))
					}
				}
				products = next
				continue
			}
			for i, p := range products {
				products[i] = MulOf(p, ef)
			}
		}
		return AddOf(products...)
	case *Pow:
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInteger() || !en.IsPositive() {
			return e
		}
		k := en.val.Num().Int64()
		if k < 2 || k > maxExpandDeg {
			return e
		}
		base := expandExpr(v.base)
		sum, isSum := base.(*Add)
		if !isSum {
			return PowOf(base, en)
		}
		// Cross-multiply term lists directly: feeding the running product
		// back through MulOf would re-canonicalize it into the very power
		// being expanded.
		acc := sum.terms
		for i := int64(1); i < k; i++ {
			next := make([]Expr, 0, len(acc)*len(sum.terms))
			for _, p := range acc {
				for _, t := range sum.terms {
					next = append(next, MulOf(p, t))
				}
			}
			acc = next
		}
		return AddOf(acc...)
	}
	return e
}

// PolyCoeffs extracts the coefficients of e viewed as a polynomial in
// varName, keyed by degree. It expands first; the second result is false
// when e is not polynomial in varName (the variable appears inside a
// function, a fractional power, or an exponent).
func PolyCoeffs(e Expr, varName string) (map[int]Expr, bool) {
	expanded := Expand(e)
	coeffs := make(map[int]Expr)
	add := func(deg int, c Expr) {
		if prev, ok := coeffs[deg]; ok {
			coeffs[deg] = AddOf(prev, c)
			return
		}
		coeffs[deg] = c
	}
	terms := []Expr{expanded}
	if sum, ok := expanded.(*Add); ok {
		terms = sum.terms
	}
	for _, t := range terms {
		deg, c, ok := termDegree(t, varName)
		if !ok {
			return nil, false
		}
		add(deg, c)
	}
	for deg, c := range coeffs {
		coeffs[deg] = c.Simplify()
	}
	return coeffs, true
}

// termDegree resolves a single product term to (degree, coefficient).
func termDegree(t Expr, varName string) (int, Expr, bool) {
	if !containsSym(t, varName) {
		return 0, t, true
	}
	switch v := t.(type) {
	case *Sym:
		return 1, N(1), true
	case *Pow:
		bs, ok := v.base.(*Sym)
		if !ok || bs.name != varName {
			return 0, nil, false
		}
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInteger() || en.IsNegative() {
			return 0, nil, false
		}
		return int(en.val.Num().Int64()), N(1), true
	case *Mul:
		deg := 0
		coeffs := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			d, c, ok := termDegree(f, varName)
			if !ok {
				return 0, nil, false
			}
			deg += d
			coeffs = append(coeffs, c)
		}
		return deg, MulOf(coeffs...), true
	}
	return 0, nil, false
}

// Degree returns the degree of e as a polynomial in varName.
func Degree(e Expr, varName string) (int, bool) {
	coeffs, ok := PolyCoeffs(e, varName)
	if !ok {
		return 0, false
	}
	deg := 0
	for d, c := range coeffs {
		if n, isNum := c.(*Num); isNum && n.IsZero() {
			continue
		}
		if d > deg {
			deg = d
		}
	}
	return deg, true
}

// TaylorSeries returns the Taylor polynomial of e around varName = about,
// up to and including the given order.
func TaylorSeries(e Expr, varName string, about Expr, order int) (Expr, error) {
	if order < 0 {
		return nil, fmt.Errorf("symbol: negative series order %d", order)
	}
	terms := make([]Expr, 0, order+1)
	deriv := e.Simplify()
	fact := N(1)
	shift := SubOf(S(varName), about)
	for k := 0; k <= order; k++ {
		at := deriv.Sub(varName, about).Simplify()
		if hasUndefined(at) || containsSym(at, varName) {
			return nil, fmt.Errorf("symbol: series of %s is undefined at %s = %s", e, varName, about)
		}
		if k > 0 {
			fact = numMul(fact, N(int64(k)))
		}
		terms = append(terms, MulOf(at, numRecip(fact), PowOf(shift, N(int64(k)))))
		if k < order {
			deriv = deriv.Diff(varName).Simplify()
		}
	}
	return AddOf(terms...), nil
}
