package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/batu-os/eksiscraper/internal/fetch"
)

func pagerClient(t *testing.T) *fetch.Client {
	t.Helper()
	return fetch.NewClient(fetch.WithDelay(0), fetch.WithTimeout(5*time.Second))
}

// TestDiscoverPageCount tests pagination discovery against live servers.
func TestDiscoverPageCount(t *testing.T) {
	t.Parallel()

	t.Run("reads the pager marker", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("p"); got != "1" {
				t.Errorf("expected first page request, got p=%q", got)
			}
			_, _ = w.Write([]byte(topicPage("5")))
		}))
		defer server.Close()

		d := NewDiscoverer(pagerClient(t))
		if got := d.DiscoverPageCount(context.Background(), server.URL); got != 5 {
			t.Errorf("expected 5 pages, got %d", got)
		}
	})

	t.Run("missing marker falls back to one page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(topicPage(""))) // no pager element
		}))
		defer server.Close()

		d := NewDiscoverer(pagerClient(t))
		if got := d.DiscoverPageCount(context.Background(), server.URL); got != 1 {
			t.Errorf("expected 1 page, got %d", got)
		}
	})

	t.Run("malformed marker falls back to one page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(topicPage("many")))
		}))
		defer server.Close()

		d := NewDiscoverer(pagerClient(t))
		if got := d.DiscoverPageCount(context.Background(), server.URL); got != 1 {
			t.Errorf("expected 1 page, got %d", got)
		}
	})

	t.Run("fetch failure falls back to one page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		d := NewDiscoverer(pagerClient(t))
		if got := d.DiscoverPageCount(context.Background(), server.URL); got != 1 {
			t.Errorf("expected 1 page, got %d", got)
		}
	})

	t.Run("unreachable server falls back to one page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		d := NewDiscoverer(pagerClient(t))
		if got := d.DiscoverPageCount(context.Background(), server.URL); got != 1 {
			t.Errorf("expected 1 page, got %d", got)
		}
	})
}
