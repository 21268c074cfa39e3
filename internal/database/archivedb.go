package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/batu-os/eksiscraper/internal/model"
)

// ArchiveDB provides SQLite-based storage for scrape sessions and their
// entries.
//
// Design decision: We use a single database file for all topics rather
// than one file per topic. Entries are keyed by their site-wide entry ID,
// so re-scraping a topic upserts in place and cross-topic queries stay
// possible.
type ArchiveDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ArchiveDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; it keeps
	// readers unblocked while a session is being written.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an ArchiveDB at the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned.
func Open(dbDir string, opts Options) (*ArchiveDB, error) {
	dbPath := filepath.Join(dbDir, "eksiscraper.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite takes the mode as a query parameter: rwc allows
	// creating the file, rw requires it to exist.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &ArchiveDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *ArchiveDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *ArchiveDB) createTables() error {
	schema := `
	-- Sessions record one scrape run per row
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		base_url TEXT NOT NULL,
		topic_title TEXT NOT NULL,
		total_pages INTEGER NOT NULL,
		entry_count INTEGER NOT NULL,
		duplicate_count INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		scraped_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_url ON sessions(base_url);
	CREATE INDEX IF NOT EXISTS idx_sessions_scraped ON sessions(scraped_at);

	-- Entries are keyed by their site-wide ID; re-scrapes upsert in place
	CREATE TABLE IF NOT EXISTS entries (
		entry_id TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		author_id TEXT,
		favorite_count INTEGER NOT NULL DEFAULT 0,
		page_number INTEGER NOT NULL,
		content TEXT NOT NULL,
		date TEXT,
		topic_title TEXT NOT NULL,
		last_session_id INTEGER NOT NULL,
		FOREIGN KEY(last_session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_author ON entries(author);
	CREATE INDEX IF NOT EXISTS idx_entries_topic ON entries(topic_title);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSession stores a completed session and upserts all of its entries.
// Returns the session row ID. Entries without an ID should already have
// been filtered out by the scraper; any that slip through are skipped.
func (adb *ArchiveDB) SaveSession(ctx context.Context, session *model.Session) (int64, error) {
	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
	INSERT INTO sessions (base_url, topic_title, total_pages, entry_count, duplicate_count, error_count)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		session.BaseURL,
		session.TopicTitle,
		session.TotalPages,
		len(session.Entries),
		session.Duplicates,
		len(session.Errors),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	sessionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO entries (entry_id, author, author_id, favorite_count, page_number, content, date, topic_title, last_session_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(entry_id) DO UPDATE SET
		author = excluded.author,
		author_id = excluded.author_id,
		favorite_count = excluded.favorite_count,
		page_number = excluded.page_number,
		content = excluded.content,
		date = excluded.date,
		topic_title = excluded.topic_title,
		last_session_id = excluded.last_session_id
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare entry upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range session.Entries {
		if entry.ID == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			entry.ID,
			entry.Author,
			entry.AuthorID,
			entry.FavoriteCount,
			entry.PageNumber,
			entry.Content,
			entry.Date,
			session.TopicTitle,
			sessionID,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}

	return sessionID, nil
}

// GetEntry retrieves an archived entry by its site-wide ID.
// Returns nil without error when the entry is not archived.
func (adb *ArchiveDB) GetEntry(ctx context.Context, entryID string) (*model.Entry, error) {
	query := `
	SELECT entry_id, author, author_id, favorite_count, page_number, content, date
	FROM entries
	WHERE entry_id = ?
	`

	var entry model.Entry
	err := adb.db.QueryRowContext(ctx, query, entryID).Scan(
		&entry.ID,
		&entry.Author,
		&entry.AuthorID,
		&entry.FavoriteCount,
		&entry.PageNumber,
		&entry.Content,
		&entry.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return &entry, nil
}

// TopicEntries returns all archived entries for a topic title, ordered
// by page and then by entry ID.
func (adb *ArchiveDB) TopicEntries(ctx context.Context, topicTitle string) ([]model.Entry, error) {
	query := `
	SELECT entry_id, author, author_id, favorite_count, page_number, content, date
	FROM entries
	WHERE topic_title = ?
	ORDER BY page_number, entry_id
	`

	rows, err := adb.db.QueryContext(ctx, query, topicTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var entry model.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Author,
			&entry.AuthorID,
			&entry.FavoriteCount,
			&entry.PageNumber,
			&entry.Content,
			&entry.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// SessionMetadata contains summary information about an archived session.
type SessionMetadata struct {
	// ID is the session row ID in the database.
	ID int64

	// BaseURL is the normalized topic URL that was scraped.
	BaseURL string

	// TopicTitle is the derived topic title.
	TopicTitle string

	// TotalPages is the page count discovered for the run.
	TotalPages int

	// EntryCount is the number of unique entries collected.
	EntryCount int

	// DuplicateCount is the number of entries dropped as duplicates.
	DuplicateCount int

	// ErrorCount is the number of page fetch failures.
	ErrorCount int

	// ScrapedAt is when the session was archived.
	ScrapedAt time.Time
}

// ListSessions returns metadata for archived sessions, newest first.
// An empty baseURL lists sessions for every topic.
func (adb *ArchiveDB) ListSessions(ctx context.Context, baseURL string) ([]SessionMetadata, error) {
	query := `
	SELECT id, base_url, topic_title, total_pages, entry_count, duplicate_count, error_count, scraped_at
	FROM sessions
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if baseURL != "" {
		query += " AND base_url = ?"
		args = append(args, baseURL)
	}

	query += " ORDER BY scraped_at DESC, id DESC"

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionMetadata
	for rows.Next() {
		var meta SessionMetadata
		var scrapedAt string

		if err := rows.Scan(
			&meta.ID,
			&meta.BaseURL,
			&meta.TopicTitle,
			&meta.TotalPages,
			&meta.EntryCount,
			&meta.DuplicateCount,
			&meta.ErrorCount,
			&scrapedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		meta.ScrapedAt = parseTimestamp(scrapedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// HasRecentSession checks whether a topic was scraped within the given
// duration. Useful for skipping redundant re-scrapes.
func (adb *ArchiveDB) HasRecentSession(ctx context.Context, baseURL string, within time.Duration) (bool, error) {
	query := `
	SELECT COUNT(*) FROM sessions
	WHERE base_url = ? AND scraped_at > datetime('now', ?)
	`

	modifier := fmt.Sprintf("-%d seconds", int(within.Seconds()))

	var count int
	if err := adb.db.QueryRowContext(ctx, query, baseURL, modifier).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check recent session: %w", err)
	}

	return count > 0, nil
}

// CountEntries returns the total number of archived entries.
func (adb *ArchiveDB) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := adb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending
// on configuration. If no format matches, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
