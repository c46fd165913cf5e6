package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	defaultFormat    = "csv"
	defaultDelimiter = ","
	defaultLogFile   = "~/.go-timeline-export/logs/app.log"
)

// Config holds settings a user can persist instead of repeating flags on
// every invocation. Command-line flags take precedence over file values.
type Config struct {
	Format    string `toml:"format"`
	Delimiter string `toml:"delimiter"`
	LogFile   string `toml:"log_file"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".go-timeline-export", "config.toml")
}

// Load reads the file at path, or the default location when path is empty.
// A missing file at the default location is not an error; an explicitly
// given path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Format:    defaultFormat,
		Delimiter: defaultDelimiter,
		LogFile:   defaultLogFile,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			// A missing file at the default location is fine.
			if explicit {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		} else if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	home, _ := os.UserHomeDir()
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
