package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/batu-os/eksiscraper/internal/model"
)

// timestampLayout is used in generated file names. It sorts
// lexicographically so directory listings stay chronological.
const timestampLayout = "20060102_150405"

// entryHeader is the fixed column set of the entry file. Consumers key
// on these names, so the order never changes.
var entryHeader = []string{
	"entry_id",
	"author",
	"author_id",
	"favorite_count",
	"page_number",
	"content",
	"date",
}

// errorHeader is the fixed column set of the error file.
var errorHeader = []string{"page", "error", "url"}

// Exporter writes sessions as CSV files under a target directory.
//
// Design decision: Every file is written through a UTF-8 BOM encoder.
// Excel assumes a legacy code page for plain CSV and mangles Turkish
// characters without the mark; other tools tolerate it.
type Exporter struct {
	outputDir string
	logger    *slog.Logger

	// now stamps generated file names. Replaceable in tests.
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for export progress.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter that writes into outputDir.
// The directory is created on first write if it does not exist.
func NewExporter(outputDir string, opts ...Option) *Exporter {
	e := &Exporter{
		outputDir: outputDir,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// DefaultFilename derives the entry file name from the session:
// "<title>_<N>page_<timestamp>.csv". A session without a usable title
// falls back to "error_<timestamp>.csv".
func (e *Exporter) DefaultFilename(session *model.Session) string {
	stamp := e.now().Format(timestampLayout)
	if session.TopicTitle == "" {
		return fmt.Sprintf("error_%s.csv", stamp)
	}
	return fmt.Sprintf("%s_%dpage_%s.csv", session.TopicTitle, session.TotalPages, stamp)
}

// Export writes the session's entries to a CSV file and returns the
// path written. An empty filename selects DefaultFilename. A session
// without entries still produces a header-only file so the caller has
// an artifact to point at.
func (e *Exporter) Export(session *model.Session, filename string) (string, error) {
	if filename == "" {
		filename = e.DefaultFilename(session)
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	path := filepath.Join(e.outputDir, filename)
	if err := e.writeCSV(path, entryHeader, entryRecords(session.Entries)); err != nil {
		// The derived name can be unwritable (exotic characters the
		// filesystem rejects). Retry once under a neutral name before
		// giving up, so a finished scrape is not lost to a bad title.
		fallback := filepath.Join(e.outputDir, fmt.Sprintf("error_%s.csv", e.now().Format(timestampLayout)))
		e.logger.Warn("export failed, retrying with fallback name",
			"path", path, "fallback", fallback, "error", err)
		if retryErr := e.writeCSV(fallback, entryHeader, entryRecords(session.Entries)); retryErr != nil {
			return "", retryErr
		}
		path = fallback
	}

	e.logger.Info("entries exported", "path", path, "entries", len(session.Entries))
	return path, nil
}

// ExportErrors writes the session's fetch errors next to the entry
// file, named "<base>_errors.csv". It returns an empty path when the
// session has no errors; a clean scrape leaves no error file behind.
func (e *Exporter) ExportErrors(session *model.Session, entryPath string) (string, error) {
	if len(session.Errors) == 0 {
		return "", nil
	}

	base := strings.TrimSuffix(filepath.Base(entryPath), ".csv")
	path := filepath.Join(e.outputDir, base+"_errors.csv")
	if err := e.writeCSV(path, errorHeader, errorRecords(session.Errors)); err != nil {
		return "", err
	}

	e.logger.Warn("fetch errors exported", "path", path, "errors", len(session.Errors))
	return path, nil
}

// writeCSV writes a header and records to path through a BOM encoder.
func (e *Exporter) writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(bomWriter(f))
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}

// bomWriter prefixes the stream with a UTF-8 byte order mark.
func bomWriter(w io.Writer) io.Writer {
	return unicode.UTF8BOM.NewEncoder().Writer(w)
}

// entryRecords converts entries to CSV rows in entryHeader order.
func entryRecords(entries []model.Entry) [][]string {
	records := make([][]string, 0, len(entries))
	for _, entry := range entries {
		records = append(records, []string{
			entry.ID,
			entry.Author,
			entry.AuthorID,
			strconv.Itoa(entry.FavoriteCount),
			strconv.Itoa(entry.PageNumber),
			entry.Content,
			entry.Date,
		})
	}
	return records
}

// errorRecords converts fetch errors to CSV rows in errorHeader order.
func errorRecords(errs []model.FetchError) [][]string {
	records := make([][]string, 0, len(errs))
	for _, ferr := range errs {
		records = append(records, []string{
			strconv.Itoa(ferr.Page),
			ferr.Reason,
			ferr.URL,
		})
	}
	return records
}
