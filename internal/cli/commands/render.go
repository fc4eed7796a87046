package commands

import (
	"strconv"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

// formatExpr renders an expression with the configured precision applied to
// inexact numbers.
func (cc *CommandContext) formatExpr(e symbol.Expr) string {
	if n, ok := e.(*symbol.Num); ok {
		return n.StringDigits(cc.Cfg.Precision)
	}
	return e.String()
}

// approxOf returns a decimal approximation when the expression evaluates
// and its exact rendering is not already a plain integer.
func (cc *CommandContext) approxOf(e symbol.Expr) (string, bool) {
	if n, ok := e.(*symbol.Num); ok && n.IsInteger() {
		return "", false
	}
	f, ok := cc.Calc.Engine().Evaluate(e)
	if !ok {
		return "", false
	}
	return strconv.FormatFloat(f, 'g', cc.Cfg.Precision, 64), true
}

// renderResult prints a single-expression outcome in the active mode.
func (cc *CommandContext) renderResult(operation string, inputs map[string]string, result symbol.Expr) error {
	exact := cc.formatExpr(result)
	approx, hasApprox := cc.approxOf(result)

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		doc := map[string]any{
			"operation": operation,
			"result":    exact,
		}
		if hasApprox {
			doc["approx"] = approx
		}
		for k, v := range inputs {
			doc[k] = v
		}
		return cc.Renderer.JSON(doc)
	}

	cc.Renderer.StatusLine("result", exact)
	if hasApprox && approx != exact {
		cc.Renderer.StatusLine("approx", approx)
	}
	return nil
}
