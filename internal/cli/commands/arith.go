package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

func newBinaryCmd(use, short, operation string, run func(cc *CommandContext, a, b string) (symbol.Expr, error)) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, done, err := operandArgs(cmd, args, 2, 2)
			if done {
				return err
			}
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			result, err := run(cc, args[0], args[1])
			if err != nil {
				return err
			}
			cc.Logger.Debug("computed", "operation", operation, "a", args[0], "b", args[1])
			return cc.renderResult(operation, map[string]string{"a": args[0], "b": args[1]}, result)
		},
	}
}

func NewAddCmd() *cobra.Command {
	return newBinaryCmd("add <a> <b>", "Add two values", "add",
		func(cc *CommandContext, a, b string) (symbol.Expr, error) { return cc.Calc.Add(a, b) })
}

func NewSubCmd() *cobra.Command {
	return newBinaryCmd("sub <a> <b>", "Subtract b from a", "sub",
		func(cc *CommandContext, a, b string) (symbol.Expr, error) { return cc.Calc.Subtract(a, b) })
}

func NewMulCmd() *cobra.Command {
	return newBinaryCmd("mul <a> <b>", "Multiply two values", "mul",
		func(cc *CommandContext, a, b string) (symbol.Expr, error) { return cc.Calc.Multiply(a, b) })
}

func NewDivCmd() *cobra.Command {
	return newBinaryCmd("div <a> <b>", "Divide a by b", "div",
		func(cc *CommandContext, a, b string) (symbol.Expr, error) { return cc.Calc.Divide(a, b) })
}

func NewPowCmd() *cobra.Command {
	return newBinaryCmd("pow <base> <exponent>", "Raise base to a power", "pow",
		func(cc *CommandContext, a, b string) (symbol.Expr, error) { return cc.Calc.Power(a, b) })
}

func NewNthRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "root <value> [degree]",
		Short:              "Take the nth root of a value (square root by default)",
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
			degree := "2"
			if len(args) == 2 {
				degree = args[1]
			}
			result, err := cc.Calc.Root(args[0], degree)
			if err != nil {
				return err
			}
			return cc.renderResult("root", map[string]string{"value": args[0], "degree": degree}, result)
		},
	}
	return cmd
}

func NewAbsCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "abs <value>",
		Short:              "Absolute value",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, done, err := operandArgs(cmd, args, 1, 1)
			if done {
				return err
			}
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			result, err := cc.Calc.Absolute(args[0])
			if err != nil {
				return err
			}
			return cc.renderResult("abs", map[string]string{"value": args[0]}, result)
		},
	}
}
