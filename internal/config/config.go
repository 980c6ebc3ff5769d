// Package config provides configuration file handling for inistore.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thirteen37/inistore/internal/ini"
	"gopkg.in/yaml.v3"
)

// Line ending names accepted in the configuration file.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Config represents the inistore configuration file.
type Config struct {
	// LineEnding is "lf" or "crlf" and applies to every file written.
	LineEnding string `yaml:"line_ending,omitempty"`

	// LogLevel and LogFormat configure logging (see internal/log).
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`

	// Format is the default format for export and import.
	Format string `yaml:"format,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LineEnding: LineEndingLF,
		LogLevel:   "warn",
		LogFormat:  "text",
		Format:     "json",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/inistore/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "inistore", "config.yaml"), nil
}

// Load reads a Config from a file. Fields missing from the file keep their
// defaults, and a missing file yields Default().
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return cfg, nil
}

// Marshal returns the Config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the Config to a file, creating its directory.
func (c *Config) Save(filename string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks field values that cannot be checked by type.
func (c *Config) Validate() error {
	if _, err := ParseLineEnding(c.LineEnding); err != nil {
		return err
	}
	return nil
}

// LineEndingString returns the configured line terminator.
func (c *Config) LineEndingString() string {
	nl, err := ParseLineEnding(c.LineEnding)
	if err != nil {
		return ini.LF
	}
	return nl
}

// ParseLineEnding maps "lf" or "crlf" (any case) to the terminator. An empty
// name means LF.
func ParseLineEnding(name string) (string, error) {
	switch strings.ToLower(name) {
	case LineEndingLF, "":
		return ini.LF, nil
	case LineEndingCRLF:
		return ini.CRLF, nil
	default:
		return "", fmt.Errorf("unknown line ending %q (want %s or %s)", name, LineEndingLF, LineEndingCRLF)
	}
}
