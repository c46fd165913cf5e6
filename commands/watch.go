package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-export/internal/converter"
	"github.com/penwyp/go-timeline-export/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <input-dir> <output-dir>",
	Short: "Convert once, then re-convert whenever exports change",
	Long: `Performs one conversion, then watches the input tree for changes to .json
files and re-runs the conversion after each settled burst of changes.

Unlike a one-shot conversion, a failed rebuild does not stop the watch.
Press q, Esc or Ctrl+C to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := converterConfig(cmd, args)
	if err != nil {
		return err
	}

	return watch.NewSession(converter.New(cfg), cfg.InputDir).Run()
}
