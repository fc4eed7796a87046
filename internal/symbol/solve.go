package symbol

import (
	"math"
	"sort"
)

// SolveSet is the outcome of solving expr = 0. Exactly one of three shapes:
// a (possibly empty) list of closed-form values, the entire real line for an
// identity, or a no-closed-form marker when the equation falls outside the
// solvable classes. None of these is an error.
type SolveSet struct {
	Values       []Expr
	AllReals     bool
	NoClosedForm bool
}

// Solve finds the closed-form solutions of e = 0 for varName. Polynomial
// equations up to degree three are solved directly (quadratics exactly,
// including complex roots); higher degrees are handled when they reduce by
// a common power of the variable or by an even-exponent substitution.
// Anything else comes back as NoClosedForm.
func Solve(e Expr, varName string) (SolveSet, error) {
	coeffs, ok := PolyCoeffs(e, varName)
	if !ok {
		return SolveSet{NoClosedForm: true}, nil
	}
	set, err := solvePoly(coeffs)
	if err != nil {
		return SolveSet{}, err
	}
	set.Values = dedupeExprs(set.Values)
	return set, nil
}

func solvePoly(coeffs map[int]Expr) (SolveSet, error) {
	numeric := true
	deg := 0
	nonzero := map[int]Expr{}
	for d, c := range coeffs {
		if n, ok := c.(*Num); ok {
			if n.IsZero() {
				continue
			}
		} else {
			numeric = false
		}
		nonzero[d] = c
		if d > deg {
			deg = d
		}
	}
	if len(nonzero) == 0 {
		return SolveSet{AllReals: true}, nil
	}
	at := func(d int) Expr {
		if c, ok := nonzero[d]; ok {
			return c
		}
		return N(0)
	}
	switch deg {
	case 0:
		if _, ok := nonzero[0].(*Num); !ok {
			// symbolic constant in another variable, nothing to decide
			return SolveSet{NoClosedForm: true}, nil
		}
		return SolveSet{}, nil // nonzero constant, no solution
	case 1:
		return SolveSet{Values: []Expr{DivOf(Neg(at(0)), at(1))}}, nil
	case 2:
		r1, r2 := QuadraticRoots(at(2), at(1), at(0))
		return SolveSet{Values: []Expr{r1, r2}}, nil
	}
	if !numeric {
		return SolveSet{NoClosedForm: true}, nil
	}
	if deg == 3 {
		return SolveSet{Values: cubicRoots(numAt(nonzero, 3), numAt(nonzero, 2), numAt(nonzero, 1), numAt(nonzero, 0))}, nil
	}
	// x^k factors out: zero is a root of the remainder-free part.
	minDeg := deg
	for d := range nonzero {
		if d < minDeg {
			minDeg = d
		}
	}
	if minDeg >= 1 {
		reduced := map[int]Expr{}
		for d, c := range nonzero {
			reduced[d-minDeg] = c
		}
		set, err := solvePoly(reduced)
		if err != nil || set.NoClosedForm || set.AllReals {
			return set, err
		}
		set.Values = append(set.Values, N(0))
		return set, nil
	}
	// Even exponents only: substitute y = x^2 and take square roots.
	allEven := true
	for d := range nonzero {
		if d%2 != 0 {
			allEven = false
			break
		}
	}
	if allEven {
		half := map[int]Expr{}
		for d, c := range nonzero {
			half[d/2] = c
		}
		inner, err := solvePoly(half)
		if err != nil || inner.NoClosedForm || inner.AllReals {
			return inner, err
		}
		var values []Expr
		for _, r := range inner.Values {
			s := SqrtOf(r)
			values = append(values, s, Neg(s))
		}
		return SolveSet{Values: values}, nil
	}
	return SolveSet{NoClosedForm: true}, nil
}

func numAt(coeffs map[int]Expr, d int) *Num {
	if c, ok := coeffs[d]; ok {
		return c.(*Num)
	}
	return N(0)
}

// QuadraticRoots returns both roots of a*x^2 + b*x + c = 0 by the closed
// formula. With a negative discriminant the roots come back as exact
// complex expressions in i. The caller is responsible for a != 0.
func QuadraticRoots(a, b, c Expr) (Expr, Expr) {
	disc := SubOf(PowOf(b, N(2)), MulOf(N(4), a, c))
	s := SqrtOf(disc)
	den := PowOf(MulOf(N(2), a), N(-1))
	r1 := MulOf(AddOf(Neg(b), s), den)
	r2 := MulOf(SubOf(Neg(b), s), den)
	return r1, r2
}

// cubicRoots solves a3*x^3 + a2*x^2 + a1*x + a0 = 0 numerically through the
// depressed cubic, returning one or three real roots plus a conjugate
// complex pair when the discriminant is positive.
func cubicRoots(a3, a2, a1, a0 *Num) []Expr {
	b := a2.Float64() / a3.Float64()
	c := a1.Float64() / a3.Float64()
	d := a0.Float64() / a3.Float64()
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3
	disc := q*q/4 + p*p*p/27
	const eps = 1e-12
	switch {
	case disc > eps:
		u := math.Cbrt(-q/2 + math.Sqrt(disc))
		v := math.Cbrt(-q/2 - math.Sqrt(disc))
		re := -(u+v)/2 + shift
		im := (u - v) * math.Sqrt(3) / 2
		return []Expr{
			snapFloat(u + v + shift),
			AddOf(snapFloat(re), MulOf(snapFloat(im), ImagUnit)),
			AddOf(snapFloat(re), MulOf(snapFloat(-im), ImagUnit)),
		}
	case disc >= -eps:
		if math.Abs(p) < eps {
			return []Expr{snapFloat(shift)}
		}
		return []Expr{
			snapFloat(3*q/p + shift),
			snapFloat(-3*q/(2*p) + shift),
		}
	default:
		r := 2 * math.Sqrt(-p/3)
		phi := math.Acos(clampUnit(3 * q / (p * r)))
		roots := make([]Expr, 0, 3)
		for k := 0; k < 3; k++ {
			t := r * math.Cos(phi/3-2*math.Pi*float64(k)/3)
			roots = append(roots, snapFloat(t+shift))
		}
		return roots
	}
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// snapFloat converts a float result to an exact integer when it is within
// rounding noise of one.
func snapFloat(f float64) Expr {
	r := math.Round(f)
	if math.Abs(f-r) < 1e-9*math.Max(1, math.Abs(r)) {
		return N(int64(r))
	}
	return NFloat(f)
}

func dedupeExprs(values []Expr) []Expr {
	var out []Expr
	for _, v := range values {
		v = v.Simplify()
		dup := false
		for _, seen := range out {
			if v.Equal(seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// SortValues orders solutions deterministically: numeric values ascending,
// then everything else by rendering.
func SortValues(values []Expr) {
	sort.SliceStable(values, func(i, j int) bool {
		ni, iok := values[i].(*Num)
		nj, jok := values[j].(*Num)
		if iok && jok {
			return numCmp(ni, nj) < 0
		}
		if iok != jok {
			return iok
		}
		return values[i].String() < values[j].String()
	})
}
