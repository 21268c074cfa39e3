package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batu-os/eksiscraper/internal/config"
	"github.com/batu-os/eksiscraper/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived scrape sessions",
		Long: `History lists the scrape sessions stored in the local SQLite archive,
newest first. Use --url to restrict the listing to a single topic.

Examples:
  # Show every archived session
  eksiscraper history

  # Show sessions for one topic
  eksiscraper history --url https://eksisozluk.com/pena--31782`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("url", "u", "",
		"Only list sessions for this topic URL")
	cmd.Flags().String("archive-dir", config.XDGDataDir(),
		"Directory holding the SQLite archive database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	baseURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}
	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return err
	}

	// Listing requires an existing archive; never create one here.
	db, err := database.Open(archiveDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no session archive found (run a scrape first): %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions(cmd.Context(), baseURL)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived sessions.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-30s %6s %8s %6s %7s\n",
		"DATE", "TOPIC", "PAGES", "ENTRIES", "DUPS", "ERRORS")
	for _, meta := range sessions {
		fmt.Fprintf(out, "%-20s %-30s %6d %8d %6d %7d\n",
			meta.ScrapedAt.Format("2006-01-02 15:04:05"),
			truncate(meta.TopicTitle, 30),
			meta.TotalPages,
			meta.EntryCount,
			meta.DuplicateCount,
			meta.ErrorCount,
		)
	}

	return nil
}

// truncate shortens s to max runes with an ellipsis. Topic titles are
// Turkish text, so cutting on bytes could split a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
