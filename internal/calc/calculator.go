package calc

import (
	"math/big"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

// Calculator validates raw text requests and dispatches them to the engine.
type Calculator struct {
	engine Engine
}

func NewCalculator(engine Engine) *Calculator {
	return &Calculator{engine: engine}
}

// Engine exposes the backend for callers that need raw parsing.
func (c *Calculator) Engine() Engine { return c.engine }

func (c *Calculator) parse(text string) (symbol.Expr, error) {
	e, err := c.engine.Parse(text)
	if err != nil {
		return nil, ParseErrorf("invalid expression %q: %v", text, err)
	}
	return e, nil
}

func (c *Calculator) parseTwo(a, b string) (symbol.Expr, symbol.Expr, error) {
	ea, err := c.parse(a)
	if err != nil {
		return nil, nil, err
	}
	eb, err := c.parse(b)
	if err != nil {
		return nil, nil, err
	}
	return ea, eb, nil
}

func (c *Calculator) Add(a, b string) (symbol.Expr, error) {
	ea, eb, err := c.parseTwo(a, b)
	if err != nil {
		return nil, err
	}
	return symbol.AddOf(ea, eb), nil
}

func (c *Calculator) Subtract(a, b string) (symbol.Expr, error) {
	ea, eb, err := c.parseTwo(a, b)
	if err != nil {
		return nil, err
	}
	return symbol.SubOf(ea, eb), nil
}

func (c *Calculator) Multiply(a, b string) (symbol.Expr, error) {
	ea, eb, err := c.parseTwo(a, b)
	if err != nil {
		return nil, err
	}
	return symbol.MulOf(ea, eb), nil
}

func (c *Calculator) Divide(a, b string) (symbol.Expr, error) {
	ea, eb, err := c.parseTwo(a, b)
	if err != nil {
		return nil, err
	}
	if n, ok := eb.(*symbol.Num); ok && n.IsZero() {
		return nil, DomainErrorf("Division by zero is not allowed.")
	}
	return symbol.DivOf(ea, eb), nil
}

func (c *Calculator) Power(base, exp string) (symbol.Expr, error) {
	eb, ee, err := c.parseTwo(base, exp)
	if err != nil {
		return nil, err
	}
	return symbol.PowOf(eb, ee), nil
}

// Root computes the degree-th root of value. The degree must be numeric and
// non-zero; an even degree of a negative number has no real value.
func (c *Calculator) Root(value, degree string) (symbol.Expr, error) {
	ev, ed, err := c.parseTwo(value, degree)
	if err != nil {
		return nil, err
	}
	deg, ok := ed.(*symbol.Num)
	if !ok {
		return nil, ParseErrorf("Root degree must be numeric.")
	}
	if deg.IsZero() {
		return nil, DomainErrorf("Zero root degree is undefined.")
	}
	if deg.IsInteger() && isEven(deg) {
		if v, vok := ev.(*symbol.Num); vok && v.IsNegative() {
			return nil, DomainErrorf("Even root of a negative number is not defined over the reals.")
		}
	}
	return symbol.PowOf(ev, symbol.DivOf(symbol.N(1), deg)), nil
}

func isEven(n *symbol.Num) bool {
	return new(big.Int).Mod(n.Rat().Num(), big.NewInt(2)).Sign() == 0
}

func (c *Calculator) Absolute(value string) (symbol.Expr, error) {
	ev, err := c.parse(value)
	if err != nil {
		return nil, err
	}
	return symbol.FuncOf("abs", ev), nil
}

// Log computes the logarithm of value, natural when base is empty. Numeric
// arguments are checked against the real logarithm's domain; symbolic
// arguments pass through unchecked.
func (c *Calculator) Log(value, base string) (symbol.Expr, error) {
	ev, err := c.parse(value)
	if err != nil {
		return nil, err
	}
	if n, ok := ev.(*symbol.Num); ok && !n.IsPositive() {
		return nil, DomainErrorf("Logarithm is only defined for positive values.")
	}
	if base == "" {
		return symbol.FuncOf("ln", ev), nil
	}
	ebase, err := c.parse(base)
	if err != nil {
		return nil, err
	}
	if n, ok := ebase.(*symbol.Num); ok {
		if !n.IsPositive() || n.IsOne() {
			return nil, DomainErrorf("Log base cannot be 0 or 1.")
		}
	}
	return symbol.DivOf(symbol.FuncOf("ln", ev), symbol.FuncOf("ln", ebase)), nil
}

// QuadraticRoots returns both roots of a*x^2 + b*x + c = 0. The leading
// coefficient must not vanish; a negative discriminant is not an error and
// yields exact complex roots.
func (c *Calculator) QuadraticRoots(a, b, cc string) (symbol.Expr, symbol.Expr, error) {
	ea, err := c.parse(a)
	if err != nil {
		return nil, nil, err
	}
	eb, err := c.parse(b)
	if err != nil {
		return nil, nil, err
	}
	ec, err := c.parse(cc)
	if err != nil {
		return nil, nil, err
	}
	if n, ok := ea.(*symbol.Num); ok && n.IsZero() {
		return nil, nil, DomainErrorf("Coefficient a must be non-zero.")
	}
	r1, r2 := symbol.QuadraticRoots(ea, eb, ec)
	return r1, r2, nil
}

// Limit evaluates the limit of exprText as the variable approaches the
// point (finite or +-oo) from the given direction.
func (c *Calculator) Limit(exprText, varText, pointText, dirText string) (symbol.LimitResult, error) {
	e, err := c.parse(exprText)
	if err != nil {
		return symbol.LimitResult{}, err
	}
	v, err := c.parse(varText)
	if err != nil {
		return symbol.LimitResult{}, err
	}
	sym, ok := v.(*symbol.Sym)
	if !ok {
		return symbol.LimitResult{}, ParseErrorf("Limit variable must be a plain symbol, got %q.", varText)
	}
	point, err := c.parse(pointText)
	if err != nil {
		return symbol.LimitResult{}, err
	}
	dir, ok := symbol.ParseDirection(dirText)
	if !ok {
		return symbol.LimitResult{}, ParseErrorf("Direction must be one of: both, plus, minus.")
	}
	res, err := c.engine.Limit(e, sym.Name(), point, dir)
	if err != nil {
		return symbol.LimitResult{}, ComputationErrorf("limit could not be computed: %v", err)
	}
	return res, nil
}

// EvaluateExpression parses text, applies the substitutions, and simplifies.
func (c *Calculator) EvaluateExpression(text string, subs map[string]string) (symbol.Expr, error) {
	e, err := c.parse(text)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return c.engine.Simplify(e), nil
	}
	bindings := make(map[string]symbol.Expr, len(subs))
	for name, value := range subs {
		b, err := c.parse(value)
		if err != nil {
			return nil, err
		}
		bindings[name] = b
	}
	return c.engine.Substitute(e, bindings), nil
}

// SolveEquation solves `lhs = rhs` (a missing = means `= 0`) for varName,
// inferring the variable when the equation mentions exactly one. A missing
// closed form and an identity are successful outcomes carried in the set.
func (c *Calculator) SolveEquation(text, varName string) (symbol.SolveSet, string, error) {
	lhs, rhs := text, "0"
	if idx := strings.Index(text, "="); idx >= 0 {
		if strings.Contains(text[idx+1:], "=") {
			return symbol.SolveSet{}, "", ParseErrorf("equation %q has more than one '='", text)
		}
		lhs, rhs = text[:idx], text[idx+1:]
	}
	le, err := c.parse(lhs)
	if err != nil {
		return symbol.SolveSet{}, "", err
	}
	re, err := c.parse(rhs)
	if err != nil {
		return symbol.SolveSet{}, "", err
	}
	diff := symbol.SubOf(le, re)
	if varName == "" {
		free := symbol.FreeSymbols(diff)
		switch len(free) {
		case 0:
			varName = "x"
		case 1:
			for name := range free {
				varName = name
			}
		default:
			names := make([]string, 0, len(free))
			for name := range free {
				names = append(names, name)
			}
			sort.Strings(names)
			return symbol.SolveSet{}, "", ParseErrorf("equation has multiple variables (%s); pick one with --for", strings.Join(names, ", "))
		}
	}
	set, err := c.engine.Solve(diff, varName)
	if err != nil {
		return symbol.SolveSet{}, "", ComputationErrorf("equation could not be solved: %v", err)
	}
	symbol.SortValues(set.Values)
	return set, varName, nil
}
