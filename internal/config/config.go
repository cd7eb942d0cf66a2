// Package config loads fngate configuration from YAML with CLI flag
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where fngate looks for configuration when no
// --config flag is given.
const DefaultConfigPath = ".fngate.yaml"

// HistoryConfig controls optional scan-history recording.
type HistoryConfig struct {
	// Enabled turns on per-run recording into the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config holds all fngate settings. The allowlist is always explicit
// configuration passed down to the reporter, never package-level state.
type Config struct {
	// Roots are the directories to scan. Supplied externally; fngate has
	// no built-in default root.
	Roots []string `yaml:"roots"`

	// Extension filters scanned files (".rs" by default)
	Extension string `yaml:"extension"`

	// Threshold is the maximum allowed function length in lines
	Threshold int `yaml:"threshold"`

	// Allowlist holds "path:function" keys exempted from the threshold
	Allowlist []string `yaml:"allowlist"`

	// Workers is the number of files scanned concurrently (1 = sequential)
	Workers int `yaml:"workers"`

	// LogLevel sets diagnostic verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// History contains scan-history settings
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Extension: ".rs",
		Threshold: 100,
		Workers:   1,
		LogLevel:  "info",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  ".fngate/history.db",
		},
	}
}

// LoadConfig loads configuration from the given path. A missing file
// returns defaults without error; a malformed file is an error. Values
// present in the file override defaults, zero values fall back.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(fileCfg.Roots) > 0 {
		cfg.Roots = fileCfg.Roots
	}
	if fileCfg.Extension != "" {
		cfg.Extension = fileCfg.Extension
	}
	if fileCfg.Threshold != 0 {
		cfg.Threshold = fileCfg.Threshold
	}
	if len(fileCfg.Allowlist) > 0 {
		cfg.Allowlist = fileCfg.Allowlist
	}
	if fileCfg.Workers != 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.History.Enabled {
		cfg.History.Enabled = true
	}
	if fileCfg.History.DBPath != "" {
		cfg.History.DBPath = fileCfg.History.DBPath
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flag values into the configuration. Non-nil
// values override; allowlist entries from flags are appended after file
// entries rather than replacing them.
func (c *Config) MergeWithFlags(roots []string, ext *string, threshold *int, allowlist []string, workers *int) {
	if len(roots) > 0 {
		c.Roots = roots
	}
	if ext != nil {
		c.Extension = *ext
	}
	if threshold != nil {
		c.Threshold = *threshold
	}
	if len(allowlist) > 0 {
		c.Allowlist = append(c.Allowlist, allowlist...)
	}
	if workers != nil {
		c.Workers = *workers
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("no root directories configured")
	}
	if c.Extension == "" || !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension must start with a dot, got %q", c.Extension)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be > 0, got %d", c.Threshold)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	for _, entry := range c.Allowlist {
		if !strings.Contains(entry, ":") {
			return fmt.Errorf("allowlist entry %q is not in path:function form", entry)
		}
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
