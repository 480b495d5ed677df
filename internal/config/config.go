// =============================================================================
// Invoice Automator - Configuration Module
// =============================================================================
//
// This module loads the main application configuration. Two further pieces
// of configuration live outside this file and are owned by their modules:
// the mapping schema (internal/mapping) and the customer directory
// (internal/directory), both persisted under DataDir.
//
// Secrets (the extraction API key) come from the environment, optionally
// seeded from a .env file by the root command; they never live in
// config.yaml.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// InputDir is the directory scanned for invoice documents to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where export downloads are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// DataDir holds the persisted configuration blobs: mapping.yaml,
	// customers.yaml, and the session's processed invoices.
	// Default: "./data"
	DataDir string `yaml:"data_dir"`

	// CustomerProfile is the default extraction/sanitization profile.
	// Valid values: "standard", "combined". Default: "standard"
	CustomerProfile string `yaml:"customer_profile"`

	// Model is the extraction model identifier passed to the collaborator.
	// Default: "gpt-4o"
	Model string `yaml:"model"`

	// RequestTimeoutSeconds bounds one extraction call.
	// Default: 120
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// MaxConcurrency is the maximum number of documents extracted
	// concurrently. Set to 1 for sequential processing. Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the main configuration from a YAML file, applies defaults and
// validates it. A missing file is not an error: the application runs on
// defaults alone, matching a fresh checkout.
func Load(path string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.CustomerProfile == "" {
		config.CustomerProfile = "standard"
	}
	if config.Model == "" {
		config.Model = "gpt-4o"
	}
	if config.RequestTimeoutSeconds == 0 {
		config.RequestTimeoutSeconds = 120
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validate checks the configuration and creates required directories.
func validate(config *MainConfig) error {
	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.DataDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1")
	}

	return nil
}

// =============================================================================
// PERSISTED BLOB LOCATIONS
// =============================================================================

// MappingPath is the location of the persisted mapping schema.
func (c *MainConfig) MappingPath() string {
	return filepath.Join(c.DataDir, "mapping.yaml")
}

// CustomersPath is the location of the persisted customer directory.
func (c *MainConfig) CustomersPath() string {
	return filepath.Join(c.DataDir, "customers.yaml")
}

// SessionPath is the location of the persisted session results, written
// by process and read by export.
func (c *MainConfig) SessionPath() string {
	return filepath.Join(c.DataDir, "session.yaml")
}
