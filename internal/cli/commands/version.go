package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "leapcalc v%s\n", Version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "build date: %s, commit: %s\n", BuildDate, GitCommit)
		},
	}
}
