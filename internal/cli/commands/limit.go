package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

func NewLimitCmd() *cobra.Command {
	var (
		varName   string
		to        string
		direction string
	)
	cmd := &cobra.Command{
		Use:   "limit <expression>",
		Short: "Limit of an expression as a variable approaches a point",
		Long: `Evaluate a limit, for example:

  leapcalc limit "sin(x)/x" --to 0
  leapcalc limit "(2*x+1)/(x-3)" --to oo
  leapcalc limit "1/x" --to 0 --direction plus`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			res, err := cc.Calc.Limit(args[0], varName, to, direction)
			if err != nil {
				return err
			}
			return cc.renderLimit(res, map[string]string{
				"expression": args[0],
				"var":        varName,
				"to":         to,
				"direction":  direction,
			})
		},
	}
	cmd.Flags().StringVar(&varName, "var", "x", "limit variable")
	cmd.Flags().StringVar(&to, "to", "0", "point the variable approaches (a value, oo, or -oo)")
	cmd.Flags().StringVar(&direction, "direction", "both", "approach direction: both, plus, or minus")
	return cmd
}

func (cc *CommandContext) renderLimit(res symbol.LimitResult, inputs map[string]string) error {
	switch {
	case res.DoesNotExist:
		if cc.Renderer.EffectiveMode() == output.ModeJSON {
			doc := map[string]any{"operation": "limit", "exists": false}
			for k, v := range inputs {
				doc[k] = v
			}
			return cc.Renderer.JSON(doc)
		}
		cc.Renderer.StatusLine("result", "does not exist")
		return nil
	case res.Unbounded:
		if cc.Renderer.EffectiveMode() == output.ModeJSON {
			doc := map[string]any{
				"operation": "limit",
				"exists":    false,
				"unbounded": cc.formatExpr(res.Value),
			}
			for k, v := range inputs {
				doc[k] = v
			}
			return cc.Renderer.JSON(doc)
		}
		cc.Renderer.StatusLine("result", "unbounded, diverges to "+cc.formatExpr(res.Value))
		return nil
	default:
		return cc.renderResult("limit", inputs, res.Value)
	}
}
