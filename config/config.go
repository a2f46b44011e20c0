// Package config provides configuration loading and management for calres.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulsedrive/calres/emit"
)

// Config represents the complete calres configuration
type Config struct {
	Dataset DatasetConfig     `yaml:"dataset"`
	Context map[string]string `yaml:"context"`
	Output  OutputConfig      `yaml:"output"`
	Watch   WatchConfig       `yaml:"watch"`
	Log     LogConfig         `yaml:"log"`
}

// DatasetConfig selects the calibration dataset documents
type DatasetConfig struct {
	// Patterns are doublestar globs of dataset YAML documents. Empty means
	// the dataset embedded in the binary.
	Patterns []string `yaml:"patterns"`
}

// OutputConfig configures emitted artifacts
type OutputConfig struct {
	// Dir is the directory generated files are written to
	Dir string `yaml:"dir"`
	// Base is the file stem of generated artifacts
	Base string `yaml:"base"`
	// Formats lists the output formats to emit ("c", "yaml")
	Formats []string `yaml:"formats"`
}

// WatchConfig configures dataset file watching
type WatchConfig struct {
	// Enabled controls whether watch mode regenerates on dataset changes
	Enabled bool `yaml:"enabled"`
	// DebounceDelay is how long to wait for more changes before regenerating
	DebounceDelay string `yaml:"debounce_delay"`
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the slog level name ("debug", "info", "warn", "error")
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Patterns: nil, // embedded dataset
		},
		Context: map[string]string{},
		Output: OutputConfig{
			Dir:     "generated",
			Base:    "inv_cal_const",
			Formats: []string{emit.FormatC},
		},
		Watch: WatchConfig{
			Enabled:       false,
			DebounceDelay: "500ms",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.Base == "" {
		return fmt.Errorf("output.base is required")
	}
	for _, f := range c.Output.Formats {
		if f != emit.FormatC && f != emit.FormatYAML {
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Watch.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Watch.DebounceDelay); err != nil {
			return fmt.Errorf("invalid watch.debounce_delay: %w", err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Dataset.Patterns) > 0 {
		c.Dataset.Patterns = other.Dataset.Patterns
	}

	for name, member := range other.Context {
		c.Context[name] = member
	}

	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Base != "" {
		c.Output.Base = other.Output.Base
	}
	if len(other.Output.Formats) > 0 {
		c.Output.Formats = other.Output.Formats
	}

	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
