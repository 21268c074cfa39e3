package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".eksiscraper"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .eksiscraper configuration file.
// Every field is optional; CLI flags take precedence over file values.
type File struct {
	// DelayMs is the courtesy delay between requests in milliseconds.
	DelayMs int `yaml:"delay,omitempty"`

	// MaxRetries is the number of fetch attempts per page.
	MaxRetries int `yaml:"maxRetries,omitempty"`

	// OutputDir is the directory for generated CSV files.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Silent suppresses informational console output.
	Silent bool `yaml:"silent,omitempty"`

	// NoArchive disables the SQLite session archive.
	NoArchive bool `yaml:"noArchive,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this based on whether the path was explicitly specified
// by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply overlays the file's settings onto cfg.
// Only values actually present in the file (non-zero after unmarshal)
// are applied, so defaults and explicit flags survive.
func (cf *File) Apply(cfg *Config) {
	if cf.DelayMs > 0 {
		cfg.Delay = time.Duration(cf.DelayMs) * time.Millisecond
	}
	if cf.MaxRetries > 0 {
		cfg.MaxRetries = cf.MaxRetries
	}
	if cf.OutputDir != "" {
		cfg.OutputDir = cf.OutputDir
	}
	if cf.Silent {
		cfg.Silent = true
	}
	if cf.NoArchive {
		cfg.NoArchive = true
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .eksiscraper in the current directory
//  3. Look for .eksiscraper in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
