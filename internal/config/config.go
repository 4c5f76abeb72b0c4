package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gyeh/subvalidate/internal/tableread"
)

// Config holds all runtime configuration for a subvalidate run.
type Config struct {
	FormatPath            string
	SubmissionPath        string
	OptionsPath           string // optional JSON/YAML file with load options
	DSN                   string // needed only for pg: sources
	LogFormat             string // "text" or "json"
	Verbose               bool
	SkipDatasetValidation bool
}

// FromArgs fills the positional arguments: format, submission and an
// optional load-options file.
func (c *Config) FromArgs(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("expected 2 or 3 arguments, got %d", len(args))
	}
	c.FormatPath = args[0]
	c.SubmissionPath = args[1]
	if len(args) == 3 {
		c.OptionsPath = args[2]
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FormatPath == "" {
		return fmt.Errorf("format path is required")
	}
	if c.SubmissionPath == "" {
		return fmt.Errorf("submission path is required")
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.DSN == "" && (isDatabaseSource(c.FormatPath) || isDatabaseSource(c.SubmissionPath)) {
		return fmt.Errorf("--dsn or SUBVALIDATE_DB_URL is required for %s sources", tableread.PostgresPrefix)
	}
	return nil
}

// LoadOptions returns the load options for this run: those in OptionsPath
// when set, nil (meaning defaults) otherwise.
func (c *Config) LoadOptions() (*tableread.Options, error) {
	if c.OptionsPath == "" {
		return nil, nil
	}
	opts, err := LoadOptionsFile(c.OptionsPath)
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// LoadOptionsFile reads a JSON or YAML object of load options.
func LoadOptionsFile(path string) (tableread.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tableread.Options{}, fmt.Errorf("read options file: %w", err)
	}
	opts, err := tableread.ParseOptions(data)
	if err != nil {
		return tableread.Options{}, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return opts, nil
}

func isDatabaseSource(s string) bool {
	return strings.HasPrefix(s, tableread.PostgresPrefix)
}
