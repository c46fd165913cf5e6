package commands

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-export/internal/analysis"
	"github.com/penwyp/go-timeline-export/internal/presentation/formatter"
)

var statsOutput string

var statsCmd = &cobra.Command{
	Use:   "stats <input-dir>",
	Short: "Summarize timeline exports without writing any files",
	Long: `Scans the input directory, classifies every timeline object, and prints
aggregate statistics: record counts, per-kind date ranges, top activity types
and places, total recorded distance, and total endpoint displacement.

The input tree is never modified and no output files are written.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "table",
		"Output format (table, json)")
}

func runStats(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	f, err := formatter.New(statsOutput)
	if err != nil {
		return err
	}

	initLogging(settings.LogFile)

	inputDir := expandPath(args[0])

	summary, err := analysis.New(inputDir).Run()
	if err != nil {
		return err
	}

	return f.Format(cmd.OutOrStdout(), &formatter.Report{
		RunID:    uuid.New().String(),
		InputDir: inputDir,
		Summary:  summary,
	})
}
