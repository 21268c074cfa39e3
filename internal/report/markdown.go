package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/batu-os/eksiscraper/internal/model"
)

// MarkdownWriter outputs session reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the session report in Markdown format.
func (w *MarkdownWriter) Write(session *model.Session) (int, error) {
	md := markdown.NewMarkdown(w.output)

	summary := session.Summarize()

	w.writeHeader(md, session)
	w.writeSummary(md, session, summary)
	w.writeTopAuthors(md, summary)
	w.writeErrors(md, session)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scrape information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, session *model.Session) {
	md.H1("Scrape Report: " + session.TopicTitle)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Topic URL", "`" + session.BaseURL + "`"},
			{"Scrape Date", session.ScrapedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages", strconv.Itoa(session.TotalPages)},
			{"Status", w.getStatusText(session)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on session state.
func (w *MarkdownWriter) getStatusText(session *model.Session) string {
	if len(session.Errors) > 0 {
		return "⚠️ Partial (" + strconv.Itoa(len(session.Errors)) + " page failure(s))"
	}
	return "✅ Complete"
}

// writeSummary writes the aggregate counters section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, session *model.Session, summary model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Entries", strconv.Itoa(summary.TotalEntries)},
			{"Unique authors", strconv.Itoa(summary.UniqueAuthors)},
			{"Favorites", strconv.Itoa(summary.TotalFavorites)},
			{"Duplicates dropped", strconv.Itoa(summary.Duplicates)},
			{"Fetch errors", strconv.Itoa(summary.ErrorCount)},
		},
	})
	md.PlainText("")

	switch {
	case summary.TotalEntries == 0:
		md.Cautionf("No entries were collected. Check the failed pages below.")
	case summary.ErrorCount > 0:
		md.Warningf("%d page(s) could not be fetched; the export is incomplete.", summary.ErrorCount)
	default:
		md.Tip("All pages were fetched successfully.")
	}
	md.PlainText("")
}

// writeTopAuthors writes the most active authors section.
func (w *MarkdownWriter) writeTopAuthors(md *markdown.Markdown, summary model.Summary) {
	if len(summary.TopAuthors) == 0 {
		return
	}

	md.H2("Top Authors")
	md.PlainText("")

	rows := make([][]string, len(summary.TopAuthors))
	for i, author := range summary.TopAuthors {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			author.Author,
			strconv.Itoa(author.Count),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Author", "Entries"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors writes the failed pages section.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, session *model.Session) {
	if len(session.Errors) == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")

	rows := make([][]string, len(session.Errors))
	for i, ferr := range session.Errors {
		rows[i] = []string{
			strconv.Itoa(ferr.Page),
			ferr.Reason,
			"`" + ferr.URL + "`",
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Page", "Error", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}
