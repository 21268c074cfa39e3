package database

import (
	"context"
	"testing"
	"time"

	"github.com/batu-os/eksiscraper/internal/model"
)

func openTestDB(t *testing.T) *ArchiveDB {
	t.Helper()

	adb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := adb.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	return adb
}

func archivedSession() *model.Session {
	session := model.NewSession("https://eksisozluk.com/pena--31782")
	session.TopicTitle = "pena"
	session.TotalPages = 2
	session.Duplicates = 1
	session.Entries = []model.Entry{
		{ID: "1", Author: "alice", AuthorID: "10", FavoriteCount: 3, Content: "one", Date: "01.01.2024", PageNumber: 1},
		{ID: "2", Author: "bob", AuthorID: "11", FavoriteCount: 0, Content: "two", Date: "01.01.2024", PageNumber: 2},
	}
	session.Errors = []model.FetchError{
		{Page: 3, Reason: "HTTP 503", URL: "https://eksisozluk.com/pena--31782?p=3"},
	}
	return session
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database file", func(t *testing.T) {
		t.Parallel()
		openTestDB(t)
	})

	t.Run("fails when creation is disabled and no file exists", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

// TestSaveSession tests session archiving and entry upserts.
func TestSaveSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores session and entries", func(t *testing.T) {
		t.Parallel()

		adb := openTestDB(t)
		id, err := adb.SaveSession(ctx, archivedSession())
		if err != nil {
			t.Fatalf("save session: %v", err)
		}
		if id == 0 {
			t.Error("expected a non-zero session id")
		}

		count, err := adb.CountEntries(ctx)
		if err != nil {
			t.Fatalf("count entries: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 entries, got %d", count)
		}

		entry, err := adb.GetEntry(ctx, "1")
		if err != nil {
			t.Fatalf("get entry: %v", err)
		}
		if entry == nil {
			t.Fatal("expected entry 1 to exist")
		}
		if entry.Author != "alice" || entry.FavoriteCount != 3 {
			t.Errorf("unexpected entry: %+v", entry)
		}
	})

	t.Run("re-scrape upserts entries in place", func(t *testing.T) {
		t.Parallel()

		adb := openTestDB(t)
		if _, err := adb.SaveSession(ctx, archivedSession()); err != nil {
			t.Fatalf("first save: %v", err)
		}

		updated := archivedSession()
		updated.Entries[0].FavoriteCount = 9
		if _, err := adb.SaveSession(ctx, updated); err != nil {
			t.Fatalf("second save: %v", err)
		}

		count, err := adb.CountEntries(ctx)
		if err != nil {
			t.Fatalf("count entries: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 entries after re-scrape, got %d", count)
		}

		entry, err := adb.GetEntry(ctx, "1")
		if err != nil {
			t.Fatalf("get entry: %v", err)
		}
		if entry.FavoriteCount != 9 {
			t.Errorf("expected updated favorite count 9, got %d", entry.FavoriteCount)
		}
	})

	t.Run("skips entries without an id", func(t *testing.T) {
		t.Parallel()

		adb := openTestDB(t)
		session := archivedSession()
		session.Entries = append(session.Entries, model.Entry{Author: "ghost", Content: "no id", PageNumber: 1})

		if _, err := adb.SaveSession(ctx, session); err != nil {
			t.Fatalf("save session: %v", err)
		}

		count, err := adb.CountEntries(ctx)
		if err != nil {
			t.Fatalf("count entries: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 entries, got %d", count)
		}
	})
}

// TestTopicEntries tests reading back archived entries.
func TestTopicEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adb := openTestDB(t)

	if _, err := adb.SaveSession(ctx, archivedSession()); err != nil {
		t.Fatalf("save session: %v", err)
	}

	entries, err := adb.TopicEntries(ctx, "pena")
	if err != nil {
		t.Fatalf("topic entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "2" {
		t.Errorf("unexpected order: %v, %v", entries[0].ID, entries[1].ID)
	}

	none, err := adb.TopicEntries(ctx, "unknown-topic")
	if err != nil {
		t.Fatalf("topic entries: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no entries for an unknown topic, got %d", len(none))
	}
}

// TestListSessions tests session metadata queries.
func TestListSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adb := openTestDB(t)

	if _, err := adb.SaveSession(ctx, archivedSession()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if _, err := adb.SaveSession(ctx, archivedSession()); err != nil {
		t.Fatalf("save session: %v", err)
	}

	sessions, err := adb.ListSessions(ctx, "")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	latest := sessions[0]
	if latest.TopicTitle != "pena" || latest.TotalPages != 2 {
		t.Errorf("unexpected metadata: %+v", latest)
	}
	if latest.EntryCount != 2 || latest.DuplicateCount != 1 || latest.ErrorCount != 1 {
		t.Errorf("unexpected counters: %+v", latest)
	}
	if latest.ScrapedAt.IsZero() {
		t.Error("expected a parsed scrape timestamp")
	}
	if latest.ID <= sessions[1].ID {
		t.Errorf("expected newest session first, got ids %d then %d", latest.ID, sessions[1].ID)
	}

	filtered, err := adb.ListSessions(ctx, "https://eksisozluk.com/pena--31782")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 filtered sessions, got %d", len(filtered))
	}
}

// TestHasRecentSession tests the re-scrape guard.
func TestHasRecentSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adb := openTestDB(t)

	recent, err := adb.HasRecentSession(ctx, "https://eksisozluk.com/pena--31782", time.Hour)
	if err != nil {
		t.Fatalf("check recent: %v", err)
	}
	if recent {
		t.Error("expected no recent session in an empty archive")
	}

	if _, err := adb.SaveSession(ctx, archivedSession()); err != nil {
		t.Fatalf("save session: %v", err)
	}

	recent, err = adb.HasRecentSession(ctx, "https://eksisozluk.com/pena--31782", time.Hour)
	if err != nil {
		t.Fatalf("check recent: %v", err)
	}
	if !recent {
		t.Error("expected the fresh session to count as recent")
	}
}
