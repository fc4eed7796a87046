package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

func NewSolveCmd() *cobra.Command {
	var forVar string
	cmd := &cobra.Command{
		Use:   "solve <equation>",
		Short: "Solve an equation symbolically",
		Long: `Solve an equation for a variable. A missing right-hand side means "= 0",
and the variable is inferred when the equation mentions exactly one:

  leapcalc solve "x^2 - 4"
  leapcalc solve "2*x + 1 = 7"
  leapcalc solve "a*x + b = 0" --for x`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			set, varName, err := cc.Calc.SolveEquation(args[0], forVar)
			if err != nil {
				return err
			}
			return cc.renderSolveSet(set, args[0], varName)
		},
	}
	cmd.Flags().StringVar(&forVar, "for", "", "variable to solve for (inferred when omitted)")
	return cmd
}

func (cc *CommandContext) renderSolveSet(set symbol.SolveSet, equation, varName string) error {
	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		doc := map[string]any{
			"operation": "solve",
			"equation":  equation,
			"var":       varName,
		}
		switch {
		case set.AllReals:
			doc["all_reals"] = true
		case set.NoClosedForm:
			doc["no_closed_form"] = true
		default:
			values := make([]string, len(set.Values))
			for i, v := range set.Values {
				values[i] = cc.formatExpr(v)
			}
			doc["solutions"] = values
		}
		return cc.Renderer.JSON(doc)
	}

	switch {
	case set.AllReals:
		cc.Renderer.StatusLine("result", fmt.Sprintf("every value of %s satisfies the equation", varName))
	case set.NoClosedForm:
		cc.Renderer.StatusLine("result", "no closed-form solution found")
	case len(set.Values) == 0:
		cc.Renderer.StatusLine("result", "no solution")
	default:
		rows := make([][]string, len(set.Values))
		for i, v := range set.Values {
			approx, ok := cc.approxOf(v)
			if !ok {
				approx = ""
			}
			rows[i] = []string{varName, cc.formatExpr(v), approx}
		}
		cc.Renderer.Table([]string{"var", "solution", "approx"}, rows)
	}
	return nil
}
