package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

func NewQuadraticCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "quadratic <a> <b> <c>",
		Short:              "Roots of a*x^2 + b*x + c = 0, complex roots included",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, done, err := operandArgs(cmd, args, 3, 3)
			if done {
				return err
			}
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r1, r2, err := cc.Calc.QuadraticRoots(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return cc.renderRoots([]symbol.Expr{r1, r2}, args)
		},
	}
}

func (cc *CommandContext) renderRoots(roots []symbol.Expr, coeffs []string) error {
	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		rendered := make([]string, len(roots))
		for i, r := range roots {
			rendered[i] = cc.formatExpr(r)
		}
		return cc.Renderer.JSON(map[string]any{
			"operation": "quadratic",
			"a":         coeffs[0],
			"b":         coeffs[1],
			"c":         coeffs[2],
			"roots":     rendered,
		})
	}
	rows := make([][]string, len(roots))
	for i, r := range roots {
		approx, ok := cc.approxOf(r)
		if !ok {
			approx = ""
		}
		rows[i] = []string{cc.formatExpr(r), approx}
	}
	cc.Renderer.Table([]string{"root", "approx"}, rows)
	return nil
}
