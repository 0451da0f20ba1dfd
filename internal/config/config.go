// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Output formats understood by the report writer
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config represents the CLI configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Requirement    string `json:"requirement,omitempty" toml:"requirement"`         // Path to requirement (job description) document
	RequirementURL string `json:"requirement_url,omitempty" toml:"requirement_url"` // URL to fetch the requirement text from
	Candidate      string `json:"candidate,omitempty" toml:"candidate"`             // Path to candidate (resume) document

	// Output
	Output string `json:"output,omitempty" toml:"output"` // Report path; stdout when empty
	Format string `json:"format,omitempty" toml:"format"` // json or text

	// Limits
	TopN             int `json:"top_n,omitempty" toml:"top_n"`                         // Keywords listed by the keywords command
	BatchConcurrency int `json:"batch_concurrency,omitempty" toml:"batch_concurrency"` // Parallel analyses in batch mode

	// Server
	Port int `json:"port,omitempty" toml:"port"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty" toml:"use_browser"` // Use headless browser for JS-rendered job pages
	Verbose    bool `json:"verbose,omitempty" toml:"verbose"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON or TOML file, picked by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Requirement != "" && c.RequirementURL != "" {
		return fmt.Errorf("config error: 'requirement' and 'requirement_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Format {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("config error: unknown format %q (want %s or %s)", c.Format, FormatJSON, FormatText)
	}

	// Validate file paths exist (if specified)
	if c.Requirement != "" {
		if _, err := os.Stat(c.Requirement); os.IsNotExist(err) {
			return fmt.Errorf("config error: requirement file not found: %s", c.Requirement)
		}
	}

	if c.Candidate != "" {
		if _, err := os.Stat(c.Candidate); os.IsNotExist(err) {
			return fmt.Errorf("config error: candidate file not found: %s", c.Candidate)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Requirement == "" && result.RequirementURL == "" {
		result.Requirement = defaults.Requirement
		result.RequirementURL = defaults.RequirementURL
	}
	if result.Candidate == "" {
		result.Candidate = defaults.Candidate
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Format == "" {
		if defaults.Format != "" {
			result.Format = defaults.Format
		} else {
			result.Format = FormatJSON
		}
	}

	// Int fields: use default if zero
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.BatchConcurrency == 0 {
		if defaults.BatchConcurrency > 0 {
			result.BatchConcurrency = defaults.BatchConcurrency
		} else {
			result.BatchConcurrency = 4
		}
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
