package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags "-X .../commands.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the go-timeline-export version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "go-timeline-export %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
