package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default leapcalc.yaml configuration file",
		Example: `  # Initialize in the current directory
  leapcalc init

  # Initialize in another directory
  leapcalc init my-project

  # Overwrite an existing config
  leapcalc init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runInit(cc, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cc *CommandContext, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "leapcalc.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("leapcalc.yaml already exists. Use --force to overwrite")
	}

	data, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	cc.Renderer.Success("Configuration written to " + configPath)
	cc.Renderer.Println("")
	cc.Renderer.Println("Next steps:")
	cc.Renderer.Println("  1. Adjust precision and output mode in leapcalc.yaml")
	cc.Renderer.Println("  2. Run 'leapcalc simplify \"2*x + 3*x\"' to try it out")
	cc.Renderer.Println("  3. Run 'leapcalc repl' for an interactive session")

	return nil
}
