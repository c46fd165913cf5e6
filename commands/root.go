package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-export/internal/config"
	"github.com/penwyp/go-timeline-export/internal/converter"
	"github.com/penwyp/go-timeline-export/internal/util"
)

var (
	// Logging related
	debug bool

	// Output related
	outputFormat string
	delimiter    string

	// Configuration file
	configPath string

	rootCmd = &cobra.Command{
		Use:   "go-timeline-export <input-dir> <output-dir>",
		Short: "Google Semantic Location History export converter",
		Long: `go-timeline-export converts a folder of monthly Google Semantic Location History
JSON exports into two flat tables: activity segments and place visits.

The tool scans the input directory recursively for .json files, extracts every
timeline object, sorts each table by start time, and writes activity.csv and
visit.csv (or a timeline.db SQLite database) into the output directory.

Examples:
  go-timeline-export ~/Takeout/Location\ History ./out   # Convert with default settings
  go-timeline-export --format sqlite ./exports ./out     # Write a SQLite database instead
  go-timeline-export --delimiter ";" ./exports ./out     # Semicolon-separated output
  go-timeline-export stats ./exports                     # Summarize without writing files
  go-timeline-export watch ./exports ./out               # Re-convert on every change`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}
)

func init() {
	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "csv",
		"Output format (csv, sqlite)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", ",",
		"Field delimiter for CSV output (single character)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.go-timeline-export/config.toml)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := converterConfig(cmd, args)
	if err != nil {
		return err
	}

	return converter.New(cfg).Run()
}

// converterConfig merges the config file with explicitly set flags and
// builds the configuration for commands taking <input-dir> <output-dir>.
func converterConfig(cmd *cobra.Command, args []string) (*converter.Config, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	if err := validateFormat(settings.Format); err != nil {
		return nil, err
	}
	delim, err := delimiterRune(settings.Delimiter)
	if err != nil {
		return nil, err
	}

	initLogging(settings.LogFile)

	return &converter.Config{
		InputDir:  expandPath(args[0]),
		OutputDir: expandPath(args[1]),
		Format:    settings.Format,
		Delimiter: delim,
	}, nil
}

// loadSettings reads the config file; flag values set on the command line win.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		settings.Format = outputFormat
	}
	if cmd.Flags().Changed("delimiter") {
		settings.Delimiter = delimiter
	}

	return settings, nil
}

func validateFormat(format string) error {
	switch format {
	case converter.FormatCSV, converter.FormatSQLite:
		return nil
	default:
		return fmt.Errorf("invalid format '%s': must be either 'csv' or 'sqlite'", format)
	}
}

func delimiterRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	return r, nil
}

func initLogging(logFile string) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile = expandPath(logFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
