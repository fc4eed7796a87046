package commands

import (
	"github.com/spf13/cobra"
)

func NewLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "log <value> [base]",
		Short:              "Logarithm, natural unless a base is given",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, done, err := operandArgs(cmd, args, 1, 2)
			if done {
				return err
			}
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			base := ""
			if len(args) == 2 {
				base = args[1]
			}
			result, err := cc.Calc.Log(args[0], base)
			if err != nil {
				return err
			}
			inputs := map[string]string{"value": args[0]}
			if base != "" {
				inputs["base"] = base
			}
			return cc.renderResult("log", inputs, result)
		},
	}
}
