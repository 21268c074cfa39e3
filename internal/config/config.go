package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the behavior of the original command-line tool where
// applicable and are chosen to stay under the target site's abuse
// detection thresholds.
const (
	// DefaultDelay is the courtesy delay between successive requests.
	// The site enforces a minimum pacing between requests; 2 seconds is
	// conservative enough to avoid triggering rate limiting during
	// normal operation. Can be adjusted via the --delay CLI flag.
	DefaultDelay = 2000 * time.Millisecond

	// DefaultMaxRetries is the number of fetch attempts per page before
	// the page is recorded as failed and skipped.
	DefaultMaxRetries = 3

	// DefaultTimeout is the per-request timeout. 30 seconds is generous
	// for a clearnet site but the target is slow under load and short
	// timeouts would turn transient slowness into recorded failures.
	DefaultTimeout = 30 * time.Second

	// DefaultOutputDir is the directory where CSV files are written.
	DefaultOutputDir = "data"

	// AppName is the application name used for XDG directory paths.
	AppName = "eksiscraper"

	// LogFileName is the append-only diagnostic log file, written next
	// to the output data by default.
	LogFileName = "eksiscraper.log"
)

// Config holds all configuration options for a scrape run.
// It is populated from CLI flags and the optional config file, then
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// Delay is the courtesy delay between successive HTTP requests.
	// This is rate-limiting policy, not error handling: backoff waits
	// after 429/403 responses come on top of it.
	Delay time.Duration

	// MaxRetries is the number of fetch attempts per page.
	MaxRetries int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Silent suppresses informational console output. The log file
	// still captures everything regardless of this setting.
	Silent bool

	// Output is an explicit output CSV path. When empty, a filename is
	// generated from the topic title, page count and timestamp.
	Output string

	// OutputDir is the directory for generated output files.
	// Ignored when Output is set to an explicit path.
	OutputDir string

	// Markdown switches the end-of-run summary to Markdown format.
	Markdown bool

	// NoArchive disables saving the session to the local SQLite archive.
	NoArchive bool

	// ArchiveDir is the directory holding the SQLite archive database.
	// Defaults to the XDG data directory.
	ArchiveDir string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .eksiscraper in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// Targets is the list of topic URLs to scrape.
	Targets []string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (delay, retries,
// timeout). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Delay:      DefaultDelay,
		MaxRetries: DefaultMaxRetries,
		Timeout:    DefaultTimeout,
		OutputDir:  DefaultOutputDir,
		ArchiveDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for eksiscraper.
// On Linux: ~/.local/share/eksiscraper
// On macOS: ~/Library/Application Support/eksiscraper
// On Windows: %LOCALAPPDATA%\eksiscraper
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first specific error describing what is invalid;
// fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
