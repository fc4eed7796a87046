package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/calc"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
)

func NewSimplifyCmd() *cobra.Command {
	var (
		subs  []string
		latex bool
	)
	cmd := &cobra.Command{
		Use:     "simplify <expression>",
		Aliases: []string{"evaluate", "eval"},
		Short:   "Simplify an expression, optionally substituting values",
		Long: `Simplify an expression symbolically, for example:

  leapcalc simplify "2*x + 3*x"
  leapcalc simplify "x^2 + y" --subs x=3 --subs y=1
  leapcalc simplify "sin(pi/3)" --latex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			bindings, err := calc.ParsePairs(subs)
			if err != nil {
				return err
			}
			result, err := cc.Calc.EvaluateExpression(args[0], bindings)
			if err != nil {
				return err
			}
			inputs := map[string]string{"expression": args[0]}
			for k, v := range bindings {
				inputs[k] = v
			}
			if latex {
				if cc.Renderer.EffectiveMode() == output.ModeJSON {
					doc := map[string]any{
						"operation": "simplify",
						"result":    cc.formatExpr(result),
						"latex":     result.LaTeX(),
					}
					for k, v := range inputs {
						doc[k] = v
					}
					return cc.Renderer.JSON(doc)
				}
				cc.Renderer.StatusLine("result", cc.formatExpr(result))
				cc.Renderer.StatusLine("latex", result.LaTeX())
				return nil
			}
			return cc.renderResult("simplify", inputs, result)
		},
	}
	cmd.Flags().StringArrayVar(&subs, "subs", nil, "substitution as name=value, repeatable")
	cmd.Flags().BoolVar(&latex, "latex", false, "also print the LaTeX rendering")
	return cmd
}
