package calc

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

// Figure names a supported geometry formula.
type Figure string

const (
	CircleArea          Figure = "circle_area"
	CircleCircumference Figure = "circle_circumference"
	RectangleArea       Figure = "rectangle_area"
	RectanglePerimeter  Figure = "rectangle_perimeter"
	TriangleArea        Figure = "triangle_area"
	TrianglePerimeter   Figure = "triangle_perimeter"
)

// figureParams is the exact parameter schema per figure. Dispatch never
// accepts extra, missing, or misspelled names.
var figureParams = map[Figure][]string{
	CircleArea:          {"radius"},
	CircleCircumference: {"radius"},
	RectangleArea:       {"width", "height"},
	RectanglePerimeter:  {"width", "height"},
	TriangleArea:        {"side_a", "side_b", "side_c"},
	TrianglePerimeter:   {"side_a", "side_b", "side_c"},
}

// Figures lists the supported figure names in stable order.
func Figures() []string {
	names := make([]string, 0, len(figureParams))
	for f := range figureParams {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// FigureParams returns the parameter names a figure requires.
func FigureParams(figure string) ([]string, bool) {
	schema, ok := figureParams[Figure(figure)]
	return schema, ok
}

// Geometry computes the named figure formula from name=value parameters.
// All lengths must be numeric and positive; triangles must additionally
// satisfy the strict triangle inequality on every pairing.
func (c *Calculator) Geometry(figure string, params map[string]string) (symbol.Expr, error) {
	schema, ok := figureParams[Figure(figure)]
	if !ok {
		return nil, ParseErrorf("unknown figure %q; expected one of: %s", figure, strings.Join(Figures(), ", "))
	}
	for name := range params {
		if !containsName(schema, name) {
			return nil, ParseErrorf("unknown parameter %q for %s", name, figure)
		}
	}
	values := make(map[string]symbol.Expr, len(schema))
	approx := make(map[string]float64, len(schema))
	for _, name := range schema {
		raw, ok := params[name]
		if !ok {
			return nil, ParseErrorf("missing parameter %q for %s", name, figure)
		}
		e, err := c.parse(raw)
		if err != nil {
			return nil, err
		}
		f, ok := c.engine.Evaluate(e)
		if !ok {
			return nil, ParseErrorf("parameter %q must be numeric, got %q", name, raw)
		}
		if f <= 0 {
			return nil, DomainErrorf("Parameter %q must be positive.", name)
		}
		values[name] = e
		approx[name] = f
	}

	switch Figure(figure) {
	case CircleArea:
		return symbol.MulOf(symbol.Pi, symbol.PowOf(values["radius"], symbol.N(2))), nil
	case CircleCircumference:
		return symbol.MulOf(symbol.N(2), symbol.Pi, values["radius"]), nil
	case RectangleArea:
		return symbol.MulOf(values["width"], values["height"]), nil
	case RectanglePerimeter:
		return symbol.MulOf(symbol.N(2), symbol.AddOf(values["width"], values["height"])), nil
	case TriangleArea, TrianglePerimeter:
		a, b, cc := approx["side_a"], approx["side_b"], approx["side_c"]
		if a+b <= cc || a+cc <= b || b+cc <= a {
			return nil, DomainErrorf("Triangle inequality is violated.")
		}
		sa, sb, sc := values["side_a"], values["side_b"], values["side_c"]
		if Figure(figure) == TrianglePerimeter {
			return symbol.AddOf(sa, sb, sc), nil
		}
		// Heron's formula with the exact semi-perimeter
		s := symbol.MulOf(symbol.F(1, 2), symbol.AddOf(sa, sb, sc))
		return symbol.SqrtOf(symbol.MulOf(
			s,
			symbol.SubOf(s, sa),
			symbol.SubOf(s, sb),
			symbol.SubOf(s, sc),
		)), nil
	}
	return nil, ParseErrorf("unknown figure %q", figure)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
