package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/calc"
)

func NewGeometryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geometry <figure> <name=value ...>",
		Short: "Geometry formulas: " + strings.Join(calc.Figures(), ", "),
		Long: `Compute a geometry formula from named parameters, for example:

  leapcalc geometry circle_area radius=2
  leapcalc geometry rectangle_area width=3 height=4
  leapcalc geometry triangle_area side_a=3 side_b=4 side_c=5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			params, err := calc.ParsePairs(args[1:])
			if err != nil {
				return err
			}
			result, err := cc.Calc.Geometry(args[0], params)
			if err != nil {
				return err
			}
			inputs := map[string]string{"figure": args[0]}
			for k, v := range params {
				inputs[k] = v
			}
			return cc.renderResult("geometry", inputs, result)
		},
	}
}
