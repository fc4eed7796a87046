package calc

import (
	"sort"

	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

// Engine is the capability surface the calculator needs from a symbolic
// backend. The embedded engine satisfies it; nothing above this package
// touches the backend directly.
type Engine interface {
	Parse(text string) (symbol.Expr, error)
	Simplify(e symbol.Expr) symbol.Expr
	Substitute(e symbol.Expr, bindings map[string]symbol.Expr) symbol.Expr
	Solve(e symbol.Expr, varName string) (symbol.SolveSet, error)
	Limit(e symbol.Expr, varName string, point symbol.Expr, dir symbol.Direction) (symbol.LimitResult, error)
	Evaluate(e symbol.Expr) (float64, bool)
}

// NewEngine returns the built-in symbolic engine.
func NewEngine() Engine { return symbolEngine{} }

type symbolEngine struct{}

func (symbolEngine) Parse(text string) (symbol.Expr, error) {
	return symbol.Parse(text)
}

func (symbolEngine) Simplify(e symbol.Expr) symbol.Expr {
	return symbol.Simplify(e)
}

// Substitute applies bindings in sorted-key order so chained substitutions
// (one value mentioning another bound variable) resolve the same way on
// every call.
func (symbolEngine) Substitute(e symbol.Expr, bindings map[string]symbol.Expr) symbol.Expr {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e = e.Sub(name, bindings[name])
	}
	return e.Simplify()
}

func (symbolEngine) Solve(e symbol.Expr, varName string) (symbol.SolveSet, error) {
	return symbol.Solve(e, varName)
}

func (symbolEngine) Limit(e symbol.Expr, varName string, point symbol.Expr, dir symbol.Direction) (symbol.LimitResult, error) {
	return symbol.Limit(e, varName, point, dir)
}

func (symbolEngine) Evaluate(e symbol.Expr) (float64, bool) {
	n, ok := e.Eval()
	if !ok {
		return 0, false
	}
	return n.Float64(), true
}
