package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults;
// changes to them are intentional when this test is updated.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Delay is 2000ms", func(t *testing.T) {
		t.Parallel()
		if cfg.Delay != 2000*time.Millisecond {
			t.Errorf("expected Delay to be 2s, got %v", cfg.Delay)
		}
	})

	t.Run("default MaxRetries is 3", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxRetries != 3 {
			t.Errorf("expected MaxRetries to be 3, got %d", cfg.MaxRetries)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default OutputDir is data", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "data" {
			t.Errorf("expected OutputDir to be 'data', got %q", cfg.OutputDir)
		}
	})

	t.Run("default Silent is false", func(t *testing.T) {
		t.Parallel()
		if cfg.Silent {
			t.Error("expected Silent to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests modify specific fields to exercise single validation rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Targets = []string{"https://eksisozluk.com/test--1"}
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no targets", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Targets = nil
		if err := cfg.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("negative delay", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Delay = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidDelay) {
			t.Errorf("expected ErrInvalidDelay, got %v", err)
		}
	})

	t.Run("zero delay is allowed", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Delay = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("zero retries", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxRetries = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxRetries) {
			t.Errorf("expected ErrInvalidMaxRetries, got %v", err)
		}
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})
}

// TestLoadConfigFile tests YAML config file loading and overlay.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies settings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := "delay: 3000\nmaxRetries: 5\noutputDir: exports\nsilent: true\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cfg.Targets = []string{"https://eksisozluk.com/test--1"}
		cf.Apply(cfg)

		if cfg.Delay != 3000*time.Millisecond {
			t.Errorf("expected delay 3s, got %v", cfg.Delay)
		}
		if cfg.MaxRetries != 5 {
			t.Errorf("expected max retries 5, got %d", cfg.MaxRetries)
		}
		if cfg.OutputDir != "exports" {
			t.Errorf("expected output dir 'exports', got %q", cfg.OutputDir)
		}
		if !cfg.Silent {
			t.Error("expected silent to be true")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("delay: [not a number"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})

	t.Run("empty file leaves defaults untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.Delay != DefaultDelay || cfg.MaxRetries != DefaultMaxRetries {
			t.Errorf("expected defaults preserved, got delay=%v retries=%d", cfg.Delay, cfg.MaxRetries)
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path that exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("delay: 1000\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
