// Package main provides the entry point for the eksiscraper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for eksiscraper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eksiscraper",
		Short: "Ekşi Sözlük topic scraper",
		Long: `eksiscraper collects every entry of an Ekşi Sözlük topic and exports
the result as CSV. Requests are paced with a configurable courtesy delay,
rate-limited pages are retried with backoff, and pages that still fail
are recorded in a companion error file.

Completed runs are also archived in a local SQLite database so repeated
scrapes of the same topic accumulate a deduplicated entry history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
