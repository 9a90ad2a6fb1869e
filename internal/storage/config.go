package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .reef/).
	userConfigFile = ".reefconfig.yaml"

	// Default configuration values
	DefaultAPIURL       = "https://api.shopwave.dev"
	DefaultBuildCommand = "tidepack build"
)

// Config represents user configuration from .reefconfig.yaml.
// This file is user-managed and never written by reef.
type Config struct {
	// APIURL overrides the platform API endpoint.
	APIURL string `yaml:"api_url"`

	// DefaultShop is used by `reef init` when neither --shop nor
	// REEF_SHOP is given.
	DefaultShop string `yaml:"default_shop"`

	// BuildCommand is the bundler invocation for `reef build`.
	BuildCommand string `yaml:"build_command"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		APIURL:       DefaultAPIURL,
		BuildCommand: DefaultBuildCommand,
	}
}

// LoadConfig loads .reefconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .reef/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	return LoadConfigDir(s.root)
}

// LoadConfigDir loads the user config from an arbitrary directory.
// Used before a .reef/ directory exists, e.g. by `reef init`.
func LoadConfigDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, userConfigFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse YAML and merge with defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
