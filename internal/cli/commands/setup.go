// Package commands implements the leapcalc subcommands. Each command
// collects raw text arguments, calls the calculator core, and renders the
// outcome in the configured output mode.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/calc"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
)

type ctxConfigKey struct{}
type ctxRendererKey struct{}

// ContextWithConfig stores the loaded config for commands to pick up.
func ContextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ctxConfigKey{}, cfg)
}

// ContextWithRenderer stores the renderer for commands to pick up.
func ContextWithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, ctxRendererKey{}, r)
}

// CommandContext bundles what every command needs.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Calc     *calc.Calculator
	Renderer *output.Renderer
}

// NewCommandContext assembles the command context from the cobra context,
// falling back to defaults when a command runs outside the root command
// (as in direct command tests).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()
	cfg, ok := ctx.Value(ctxConfigKey{}).(*config.Config)
	if !ok {
		loaded, err := config.Load("", nil)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	renderer, ok := ctx.Value(ctxRendererKey{}).(*output.Renderer)
	if !ok {
		mode, err := output.ParseMode(cfg.Output)
		if err != nil {
			return nil, err
		}
		renderer = output.NewRendererWithTTY(cmd.OutOrStdout(), cmd.ErrOrStderr(), false, mode)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Calc:     calc.NewCalculator(calc.NewEngine()),
		Renderer: renderer,
	}, nil
}

// operandArgs validates the raw argument tokens of a command that parses
// no flags of its own, so negative operands like -4 pass through as values
// instead of being read as shorthand flags. A help flag still prints usage,
// and a leading -- separator is accepted. done means the command is
// finished (help shown or arguments rejected).
func operandArgs(cmd *cobra.Command, args []string, min, max int) (operands []string, done bool, err error) {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return nil, true, cmd.Help()
		}
	}
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) < min || len(args) > max {
		if min == max {
			return nil, true, fmt.Errorf("accepts %d arg(s), received %d", min, len(args))
		}
		return nil, true, fmt.Errorf("accepts between %d and %d args, received %d", min, max, len(args))
	}
	return args, false, nil
}

// All returns every leapcalc subcommand for registration on the root.
func All() []*cobra.Command {
	return []*cobra.Command{
		NewAddCmd(),
		NewSubCmd(),
		NewMulCmd(),
		NewDivCmd(),
		NewPowCmd(),
		NewNthRootCmd(),
		NewAbsCmd(),
		NewLogCmd(),
		NewQuadraticCmd(),
		NewGeometryCmd(),
		NewLimitCmd(),
		NewSimplifyCmd(),
		NewSolveCmd(),
		NewReplCmd(),
		NewInitCmd(),
		NewVersionCmd(),
	}
}
