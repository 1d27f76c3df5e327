// Package config loads camber-mcp settings from YAML and builds the
// process logger from them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "CAMBER_MCP_CONFIG"
	EnvLogLevel   = "CAMBER_MCP_LOG_LEVEL"
)

// Config represents the application configuration loaded from YAML.
//
// Only ambient behaviour is configurable. The stripe color band, fit degree
// and sample count are fixed in the detection and curve packages.
type Config struct {
	Logging struct {
		// Level is a zerolog level name: trace, debug, info, warn, error.
		Level string `yaml:"level"`

		// Format is "console" for human-readable output or "json".
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Output struct {
		// ProcessedDir is the sibling directory, next to each input image,
		// that receives the annotated copy.
		ProcessedDir string `yaml:"processedDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	cfg.Output.ProcessedDir = "processed"
	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
// Keys missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// FromEnv loads the file named by CAMBER_MCP_CONFIG (defaults when unset)
// and then applies CAMBER_MCP_LOG_LEVEL on top of it.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfigPath); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	return cfg, nil
}

// Validate checks the values that cannot be defaulted at use time.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.Logging.Format)
	}
	if c.Output.ProcessedDir == "" {
		return fmt.Errorf("output.processedDir must not be empty")
	}
	if filepath.IsAbs(c.Output.ProcessedDir) {
		return fmt.Errorf("output.processedDir must be relative to the input directory, got %q", c.Output.ProcessedDir)
	}
	return nil
}
