// Package cli provides the command-line interface for leapcalc.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/cli/commands"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "leapcalc",
		Short: "leapcalc - Symbolic Console Calculator",
		Long: `leapcalc is a symbolic calculator for the terminal.

It keeps results exact where it can (rationals, roots, known trig values,
logarithms) and falls back to decimal approximations where it cannot. It
covers arithmetic, logarithms, quadratic equations, geometry formulas,
limits, and symbolic simplification and equation solving.`,
		Version: commands.Version,
		// Parse root flags while descending so operand commands can take
		// their arguments raw (negative numbers would otherwise be read
		// as shorthand flags).
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			mode, err := output.ParseMode(cfg.Output)
			if err != nil {
				return err
			}
			var renderer *output.Renderer
			if cmd.OutOrStdout() == os.Stdout {
				renderer = output.NewRenderer(mode)
			} else {
				renderer = output.NewRendererWithTTY(cmd.OutOrStdout(), cmd.ErrOrStderr(), false, mode)
			}

			ctx := commands.ContextWithConfig(cmd.Context(), cfg)
			ctx = commands.ContextWithRenderer(ctx, renderer)
			ctx = config.WithLogger(ctx, config.NewLogger(cfg.Verbose))
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if file := config.ConfigFileUsed(); file != "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", file)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Symbolic console calculator
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapcalc.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().Int("precision", 0, "Significant digits for approximations (1-50)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.All()...)
	rootCmd.AddCommand(NewCompletionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCmd creates the completion command.
func NewCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapcalc.

To load completions:

Bash:
  $ source <(leapcalc completion bash)

Zsh:
  $ leapcalc completion zsh > "${fpath[1]}/_leapcalc"

Fish:
  $ leapcalc completion fish | source

PowerShell:
  PS> leapcalc completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
