package symbol

import (
	"fmt"
	"math"
	"math/big"
)

// Direction selects the side from which a limit point is approached.
type Direction int

const (
	DirBoth Direction = iota
	DirPlus
	DirMinus
)

func (d Direction) String() string {
	switch d {
	case DirPlus:
		return "plus"
	case DirMinus:
		return "minus"
	}
	return "both"
}

// ParseDirection maps the accepted direction spellings.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", "both":
		return DirBoth, true
	case "plus", "+":
		return DirPlus, true
	case "minus", "-":
		return DirMinus, true
	}
	return DirBoth, false
}

// LimitResult is the outcome of a limit computation: a finite (or exact
// symbolic) value, an unbounded result carrying a signed infinity, or a
// determination that the limit does not exist. Non-existence is an answer,
// not an error.
type LimitResult struct {
	Value        Expr
	Unbounded    bool
	DoesNotExist bool
}

const lhopitalDepth = 6

// Limit evaluates the limit of expr as varName approaches point from the
// given direction. Points at +-oo are reduced to a one-sided limit at zero
// through the substitution x = 1/t. The strategy is direct substitution,
// then L'Hopital for 0/0 quotients, then directional numeric sampling.
func Limit(expr Expr, varName string, point Expr, dir Direction) (LimitResult, error) {
	expr = expr.Simplify()
	point = point.Simplify()
	if sign, ok := infSign(point); ok {
		t := freshSymName(expr, "t")
		repl := PowOf(S(t), N(-1))
		if sign < 0 {
			repl = Neg(repl)
		}
		return limitAt(expr.Sub(varName, repl).Simplify(), t, N(0), DirPlus, lhopitalDepth)
	}
	return limitAt(expr, varName, point, dir, lhopitalDepth)
}

// infSign reports +-1 when point is a signed infinity.
func infSign(point Expr) (int, bool) {
	if c, ok := point.(*Const); ok && c.name == "oo" {
		return 1, true
	}
	if m, ok := point.(*Mul); ok && containsInf(m) {
		if c, cok := m.factors[0].(*Num); cok && c.IsNegative() {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func limitAt(expr Expr, varName string, point Expr, dir Direction, depth int) (LimitResult, error) {
	subbed := expr.Sub(varName, point).Simplify()
	if !jumpyInVar(expr, varName) && !hasUndefined(subbed) && !containsInf(subbed) && !containsSym(subbed, varName) {
		if _, ok := subbed.Eval(); ok {
			return LimitResult{Value: subbed}, nil
		}
		if len(FreeSymbols(subbed)) > 0 {
			return LimitResult{Value: subbed}, nil
		}
	}
	if depth > 0 && !nonSmoothInVar(expr, varName) {
		if num, den, ok := splitQuotient(expr); ok {
			nAt := num.Sub(varName, point).Simplify()
			dAt := den.Sub(varName, point).Simplify()
			if isZeroExpr(nAt) && isZeroExpr(dAt) {
				next := DivOf(Diff(num, varName), Diff(den, varName))
				return limitAt(next.Simplify(), varName, point, dir, depth-1)
			}
		}
	}
	return sampleLimit(expr, varName, point, dir)
}

// jumpyInVar reports whether the limit variable sits inside a function with
// jump discontinuities, where substituting the point would read off the
// wrong value.
func jumpyInVar(e Expr, varName string) bool {
	if f, ok := e.(*Func); ok {
		switch f.name {
		case "sign", "floor", "ceil":
			if containsSym(f.arg, varName) {
				return true
			}
		}
	}
	for _, c := range children(e) {
		if jumpyInVar(c, varName) {
			return true
		}
	}
	return false
}

// nonSmoothInVar additionally covers abs, whose kink breaks the
// differentiability L'Hopital relies on.
func nonSmoothInVar(e Expr, varName string) bool {
	if f, ok := e.(*Func); ok && f.name == "abs" && containsSym(f.arg, varName) {
		return true
	}
	if jumpyInVar(e, varName) {
		return true
	}
	for _, c := range children(e) {
		if nonSmoothInVar(c, varName) {
			return true
		}
	}
	return false
}

// splitQuotient separates a product into numerator and denominator by
// pulling out factors with negative rational exponents.
func splitQuotient(e Expr) (num, den Expr, ok bool) {
	negPow := func(f Expr) (Expr, bool) {
		p, isPow := f.(*Pow)
		if !isPow {
			return nil, false
		}
		en, isNum := p.exp.(*Num)
		if !isNum || !en.IsNegative() {
			return nil, false
		}
		return PowOf(p.base, numNeg(en)), true
	}
	if d, isNeg := negPow(e); isNeg {
		return N(1), d, true
	}
	m, isMul := e.(*Mul)
	if !isMul {
		return nil, nil, false
	}
	var nums, dens []Expr
	for _, f := range m.factors {
		if d, isNeg := negPow(f); isNeg {
			dens = append(dens, d)
			continue
		}
		nums = append(nums, f)
	}
	if len(dens) == 0 {
		return nil, nil, false
	}
	return MulOf(nums...), MulOf(dens...), true
}

func isZeroExpr(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

// sideSample classifies the behavior of expr on one side of the point.
type sideSample struct {
	sampled   bool
	converged bool
	value     float64
	diverged  bool
	sign      int
}

// sampleLimit evaluates the expression at exact rational offsets 10^-2..10^-8
// on the requested side(s) and classifies each tail as convergent,
// divergent, or neither. Two sides that disagree mean the limit does not
// exist; a side with no evaluable points is skipped so one-sided domains
// (like sqrt at zero) still resolve.
func sampleLimit(expr Expr, varName string, point Expr, dir Direction) (LimitResult, error) {
	pn, ok := point.Eval()
	if !ok {
		return LimitResult{}, fmt.Errorf("limit of %s as %s -> %s could not be determined", expr, varName, point)
	}
	base := pn.Rat()
	side := func(sign int64) sideSample {
		var vals []float64
		for k := 2; k <= 8; k++ {
			h := new(big.Rat).SetFrac(big.NewInt(sign), pow10(k))
			x := ratNum(new(big.Rat).Add(base, h))
			v, ok := expr.Sub(varName, x).Simplify().Eval()
			if !ok {
				continue
			}
			vals = append(vals, v.Float64())
		}
		if len(vals) < 4 {
			return sideSample{}
		}
		n := len(vals)
		last := vals[n-1]
		d1 := vals[n-1] - vals[n-2]
		d2 := vals[n-2] - vals[n-3]
		d3 := vals[n-3] - vals[n-4]
		lastSign := 1
		if last < 0 {
			lastSign = -1
		}
		if math.Abs(last) > 1e6 && math.Abs(last) > 2*math.Abs(vals[n-2]) {
			return sideSample{sampled: true, diverged: true, sign: lastSign}
		}
		if math.Abs(d1) <= 1e-5*math.Max(1, math.Abs(last)) {
			return sideSample{sampled: true, converged: true, value: last}
		}
		if d2 != 0 && d3 != 0 {
			r1 := d1 / d2
			r2 := d2 / d3
			// Two consecutive geometric ratios extrapolate to the limit;
			// steady or growing steps in one direction mean divergence
			// (catches logarithmic blowup that never looks large).
			// Inconsistent ratios are oscillation and classify as neither.
			if math.Abs(r1) < 0.95 && math.Abs(r2) < 0.95 && r1*r2 > 0 {
				return sideSample{sampled: true, converged: true, value: last + d1*r1/(1-r1)}
			}
			if r1 > 0 && r2 > 0 && math.Abs(last) > math.Abs(vals[n-3]) {
				return sideSample{sampled: true, diverged: true, sign: lastSign}
			}
		}
		return sideSample{sampled: true}
	}

	fail := func() (LimitResult, error) {
		return LimitResult{}, fmt.Errorf("limit of %s as %s -> %s could not be determined", expr, varName, point)
	}
	oneSided := func(s sideSample) (LimitResult, error) {
		switch {
		case !s.sampled:
			return fail()
		case s.diverged:
			return LimitResult{Value: signedInf(s.sign), Unbounded: true}, nil
		case s.converged:
			return LimitResult{Value: snapSample(s.value)}, nil
		}
		return LimitResult{DoesNotExist: true}, nil
	}

	switch dir {
	case DirPlus:
		return oneSided(side(1))
	case DirMinus:
		return oneSided(side(-1))
	}
	plus := side(1)
	minus := side(-1)
	switch {
	case !plus.sampled && !minus.sampled:
		return fail()
	case !plus.sampled:
		return oneSided(minus)
	case !minus.sampled:
		return oneSided(plus)
	case plus.diverged && minus.diverged:
		if plus.sign == minus.sign {
			return LimitResult{Value: signedInf(plus.sign), Unbounded: true}, nil
		}
		return LimitResult{DoesNotExist: true}, nil
	case plus.converged && minus.converged:
		if math.Abs(plus.value-minus.value) <= 1e-4*math.Max(1, math.Abs(plus.value)) {
			return LimitResult{Value: snapSample(plus.value)}, nil
		}
		return LimitResult{DoesNotExist: true}, nil
	}
	return LimitResult{DoesNotExist: true}, nil
}

func signedInf(sign int) Expr {
	if sign < 0 {
		return Neg(Inf)
	}
	return Inf
}

func pow10(k int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
}

// snapSample rounds a sampled value to a nearby integer or small-denominator
// rational when it is within sampling noise, otherwise keeps the float.
func snapSample(f float64) Expr {
	for q := int64(1); q <= 12; q++ {
		p := math.Round(f * float64(q))
		if math.Abs(f-p/float64(q)) < 1e-6*math.Max(1, math.Abs(p/float64(q))) {
			return F(int64(p), q)
		}
	}
	return NFloat(f)
}
