// Package config loads the optional tool configuration file.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
	File   string `yaml:"file"`
}

// Config holds tool defaults that can live in a YAML file instead of being
// passed as flags on every invocation. Flags always take precedence.
type Config struct {
	Logging   LoggingConfig `yaml:"logging"`
	PGDataIn  string        `yaml:"pgdata_in"`
	PGDataOut string        `yaml:"pgdata_out"`
}

// Load reads configuration from an io.Reader.
// This is the core logic, separated for testability.
func Load(r io.Reader) (*Config, error) {
	// Set default values
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			File:   "pgctledit.log",
		},
	}

	// If the reader is nil, it's like an empty file, return defaults.
	if r == nil {
		return cfg, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}

	// Unmarshal YAML into the config struct, overwriting defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads configuration from a YAML file by path. An empty or
// missing path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Load(nil)
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(nil)
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}
