package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/batu-os/eksiscraper/internal/config"
	"github.com/batu-os/eksiscraper/internal/database"
	"github.com/batu-os/eksiscraper/internal/export"
	"github.com/batu-os/eksiscraper/internal/fetch"
	"github.com/batu-os/eksiscraper/internal/log"
	"github.com/batu-os/eksiscraper/internal/model"
	"github.com/batu-os/eksiscraper/internal/report"
	"github.com/batu-os/eksiscraper/internal/scrape"
)

// errNoEntries signals that a run finished without collecting a single
// entry. Scripts rely on the resulting non-zero exit code.
var errNoEntries = errors.New("no entries collected")

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [topic-url]...",
		Short: "Scrape all entries of an Ekşi Sözlük topic",
		Long: `Scrape fetches every page of a topic sequentially, extracts the
entries, and writes them to a CSV file in the output directory.

Pages that return 429 or 403 are retried with increasing backoff; pages
that still fail are skipped and listed in a companion "_errors" CSV so
partial results remain usable.

Examples:
  # Scrape a single topic
  eksiscraper scrape https://eksisozluk.com/pena--31782

  # Slow down to 5 seconds between requests
  eksiscraper scrape --delay 5000 https://eksisozluk.com/pena--31782

  # Write to an explicit file and print a Markdown summary
  eksiscraper scrape -o pena.csv -m https://eksisozluk.com/pena--31782

Configuration file (.eksiscraper) example:
  delay: 3000
  maxRetries: 5
  outputDir: scrapes
  silent: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runScrapeCmd,
	}

	// Request pacing flags
	cmd.Flags().Int("delay", int(config.DefaultDelay/time.Millisecond),
		"Courtesy delay between requests in milliseconds")
	cmd.Flags().IntP("max-retries", "r", config.DefaultMaxRetries,
		"Fetch attempts per page before the page is skipped")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output CSV file name (default: derived from topic title and timestamp)")
	cmd.Flags().StringP("output-dir", "d", config.DefaultOutputDir,
		"Directory for generated CSV and log files")
	cmd.Flags().BoolP("silent", "s", false,
		"Suppress console output (the log file still captures everything)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the run summary as Markdown (mutually exclusive with --json)")

	// Archive flags
	cmd.Flags().Bool("no-archive", false,
		"Skip saving the session to the local SQLite archive")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .eksiscraper in current or home directory)")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonSummary, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if jsonSummary && cfg.Markdown {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	// Dual-sink logging: the file gets everything, the console respects
	// --silent. A missing log file degrades to console-only logging.
	logPath := filepath.Join(cfg.OutputDir, config.LogFileName)
	logger, closeLog, err := log.New(logPath, cfg.Silent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: log file unavailable: %v\n", err)
	}
	defer closeLog() //nolint:errcheck // Best effort flush on exit
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	client := fetch.NewClient(
		fetch.WithDelay(cfg.Delay),
		fetch.WithTimeout(cfg.Timeout),
	)
	fetcher := fetch.NewFetcher(client,
		fetch.WithMaxRetries(cfg.MaxRetries),
		fetch.WithLogger(logger),
	)
	scraper := scrape.NewScraper(client,
		scrape.WithScraperLogger(logger),
		scrape.WithFetcher(fetcher),
	)

	return runScrape(ctx, cfg, jsonSummary, logger, scraper)
}

// topicScraper is the part of scrape.Scraper the run loop depends on.
type topicScraper interface {
	Scrape(ctx context.Context, rawURL string) (*model.Session, error)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. File values apply first, then flags the user set
// explicitly override them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. Otherwise a missing file just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	delayMs, err := cmd.Flags().GetInt("delay")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("delay") || configPath == "" {
		cfg.Delay = time.Duration(delayMs) * time.Millisecond
	}

	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries, err = cmd.Flags().GetInt("max-retries")
		if err != nil {
			return nil, err
		}
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("silent") {
		cfg.Silent, err = cmd.Flags().GetBool("silent")
		if err != nil {
			return nil, err
		}
	}

	cfg.Markdown, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("no-archive") {
		cfg.NoArchive, err = cmd.Flags().GetBool("no-archive")
		if err != nil {
			return nil, err
		}
	}

	// Positional arguments are the topic URLs
	cfg.Targets = args

	return cfg, nil
}

// runScrape executes the scrape for every target and exports the results.
func runScrape(ctx context.Context, cfg *config.Config, jsonSummary bool, logger *slog.Logger, scraper topicScraper) error {
	logger.Info("starting run",
		"targets", cfg.Targets,
		"delay", cfg.Delay,
		"maxRetries", cfg.MaxRetries,
		"outputDir", cfg.OutputDir,
	)

	// Open the session archive unless disabled
	var db *database.ArchiveDB
	if !cfg.NoArchive {
		var err error
		db, err = database.Open(cfg.ArchiveDir, database.DefaultOptions())
		if err != nil {
			// The archive is a convenience; a broken database should not
			// block the scrape itself.
			logger.Warn("session archive unavailable", "dir", cfg.ArchiveDir, "error", err)
		} else {
			defer db.Close()
			logger.Info("session archive opened", "dir", cfg.ArchiveDir)
		}
	}

	exporter := export.NewExporter(cfg.OutputDir, export.WithLogger(logger))

	if cfg.Output != "" && len(cfg.Targets) > 1 {
		logger.Warn("explicit output name applies to the first target only", "output", cfg.Output)
	}

	totalEntries := 0
	for i, target := range cfg.Targets {
		session, err := scraper.Scrape(ctx, target)
		if err != nil && session == nil {
			logger.Error("scrape failed", "target", target, "error", err)
			continue
		}

		filename := ""
		if cfg.Output != "" && i == 0 {
			filename = cfg.Output
		}

		// Export failures past the exporter's own fallback mean nothing was
		// saved; the run must fail even though entries were collected.
		entryPath, exportErr := exporter.Export(session, filename)
		if exportErr != nil {
			logger.Error("export failed", "target", target, "error", exportErr)
			return fmt.Errorf("failed to save entries for %s: %w", target, exportErr)
		}
		if _, errFileErr := exporter.ExportErrors(session, entryPath); errFileErr != nil {
			logger.Error("error export failed", "target", target, "error", errFileErr)
		}

		if !cfg.Silent {
			if reportErr := printSummary(session, cfg.Markdown, jsonSummary); reportErr != nil {
				logger.Error("summary output failed", "target", target, "error", reportErr)
			}
		}

		if db != nil {
			if _, saveErr := db.SaveSession(ctx, session); saveErr != nil {
				logger.Error("failed to archive session", "target", target, "error", saveErr)
			}
		}

		totalEntries += len(session.Entries)

		// A cancelled run still exports what it collected before stopping.
		if err != nil {
			if totalEntries == 0 {
				return errors.Join(err, errNoEntries)
			}
			return err
		}
	}

	if totalEntries == 0 {
		return errNoEntries
	}

	return nil
}

// printSummary writes the end-of-run report to stdout in the requested
// format.
func printSummary(session *model.Session, markdown, jsonSummary bool) error {
	var w report.Writer
	switch {
	case jsonSummary:
		w = report.NewJSONWriter(os.Stdout)
	case markdown:
		w = report.NewMarkdownWriter(os.Stdout)
	default:
		w = report.NewSimpleWriter(os.Stdout)
	}

	_, err := w.Write(session)
	return err
}
