package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/batu-os/eksiscraper/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showErrors controls whether the failed-pages section is shown.
	showErrors bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowErrors configures the writer to list failed pages individually.
func WithShowErrors(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showErrors = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showErrors: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the session report in human-readable format.
func (w *SimpleWriter) Write(session *model.Session) (int, error) {
	var sb strings.Builder

	summary := session.Summarize()

	w.writeHeader(&sb, session)
	w.writeSummary(&sb, session, summary)
	w.writeTopAuthors(&sb, summary)
	w.writeErrors(&sb, session)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scrape information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, session *model.Session) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SCRAPE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Topic:       %s\n", session.TopicTitle))
	sb.WriteString(fmt.Sprintf("URL:         %s\n", session.BaseURL))
	sb.WriteString(fmt.Sprintf("Scrape Date: %s\n", session.ScrapedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Pages:       %d\n", session.TotalPages))

	if len(session.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Status:      PARTIAL - %d page fetch failure(s)\n", len(session.Errors)))
	} else {
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the aggregate counters section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, session *model.Session, summary model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Entries:        %d\n", summary.TotalEntries))
	sb.WriteString(fmt.Sprintf("  Unique authors: %d\n", summary.UniqueAuthors))
	sb.WriteString(fmt.Sprintf("  Favorites:      %d\n", summary.TotalFavorites))
	sb.WriteString(fmt.Sprintf("  Duplicates:     %d\n", summary.Duplicates))
	sb.WriteString(fmt.Sprintf("  Fetch errors:   %d\n", summary.ErrorCount))
	sb.WriteString("\n")
}

// writeTopAuthors writes the most active authors section.
func (w *SimpleWriter) writeTopAuthors(sb *strings.Builder, summary model.Summary) {
	if len(summary.TopAuthors) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("TOP AUTHORS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i, author := range summary.TopAuthors {
		sb.WriteString(fmt.Sprintf("  %d. %s (%d entries)\n", i+1, author.Author, author.Count))
	}
	sb.WriteString("\n")
}

// writeErrors writes the failed pages section.
func (w *SimpleWriter) writeErrors(sb *strings.Builder, session *model.Session) {
	if len(session.Errors) == 0 || !w.showErrors {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILED PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, ferr := range session.Errors {
		sb.WriteString(fmt.Sprintf("  page %d: %s\n", ferr.Page, ferr.Reason))
	}
	sb.WriteString("\n")
}
