// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvPort       = "CVGENIE_PORT"
	EnvTemplate   = "CVGENIE_TEMPLATE"
	EnvChromePath = "CVGENIE_CHROME_PATH"
	EnvLogLevel   = "CVGENIE_LOG_LEVEL"
)

// Config represents the settings that can be loaded from a JSON, YAML or TOML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Record is the record file used when a command gets none
	Record string `json:"record,omitempty" yaml:"record,omitempty" toml:"record"`

	// Server
	Port                   int `json:"port,omitempty" yaml:"port,omitempty" toml:"port" validate:"omitempty,min=1,max=65535"`
	RateLimitExportPerHour int `json:"rate_limit_export_per_hour,omitempty" yaml:"rate_limit_export_per_hour,omitempty" toml:"rate_limit_export_per_hour" validate:"omitempty,min=1"`

	// Rendering and export
	DefaultTemplate string `json:"default_template,omitempty" yaml:"default_template,omitempty" toml:"default_template" validate:"omitempty,oneof=professional gradient minimalist"`
	ExportFormat    string `json:"export_format,omitempty" yaml:"export_format,omitempty" toml:"export_format" validate:"omitempty,oneof=pdf png"`
	ExportTimeout   string `json:"export_timeout,omitempty" yaml:"export_timeout,omitempty" toml:"export_timeout"`
	ChromePath      string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" toml:"chrome_path" validate:"omitempty,file"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Record:                 "cv.json",
		Port:                   8080,
		DefaultTemplate:        "professional",
		ExportFormat:           "pdf",
		ExportTimeout:          "30s",
		LogLevel:               "info",
		RateLimitExportPerHour: 30,
	}
}

// LoadConfig loads configuration from a file. The format is chosen by
// extension: .json, .yaml/.yml or .toml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.ExportTimeout != "" {
		d, err := time.ParseDuration(c.ExportTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'export_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'export_timeout' must be positive")
		}
	}
	return nil
}

// Timeout returns ExportTimeout as a duration, or zero when unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.ExportTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ApplyEnv overrides fields from CVGENIE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		c.DefaultTemplate = v
	}
	if v := os.Getenv(EnvChromePath); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Record == "" {
		result.Record = defaults.Record
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.ExportFormat == "" {
		result.ExportFormat = defaults.ExportFormat
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitExportPerHour == 0 {
		result.RateLimitExportPerHour = defaults.RateLimitExportPerHour
	}

	return result
}

// Load resolves the effective configuration: the file at path (when
// non-empty), then environment overrides, then defaults. The result is
// validated.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
