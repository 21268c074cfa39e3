package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/batu-os/eksiscraper/internal/fetch"
	"github.com/batu-os/eksiscraper/internal/topic"
)

// pagerSelector identifies the pager element carrying the topic's total
// page count in its data-pagecount attribute.
const pagerSelector = "div.pager"

// Discoverer determines a topic's total page count.
type Discoverer struct {
	// client performs the single probe request.
	client *fetch.Client

	// logger for structured logging.
	logger *slog.Logger
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDiscovererLogger sets a custom logger for the discoverer.
func WithDiscovererLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// NewDiscoverer creates a Discoverer using the given client.
func NewDiscoverer(client *fetch.Client, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscoverPageCount fetches page 1 and reads the pager's page count.
// It never fails: every error path degrades to returning 1, because a
// wrong estimate here only shortens the crawl, it cannot corrupt it.
// A single attempt suffices for the same reason, so this bypasses the
// fetcher's retry loop.
func (d *Discoverer) DiscoverPageCount(ctx context.Context, baseURL string) int {
	resp, err := d.client.Get(ctx, topic.PageURL(baseURL, 1))
	if err != nil {
		d.logger.Error("error getting page count, assuming single page", "error", err)
		return 1
	}
	if resp.StatusCode() != http.StatusOK {
		d.logger.Warn("could not determine page count, assuming single page",
			"status", resp.StatusCode(),
		)
		return 1
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		d.logger.Error("error parsing page count, assuming single page", "error", err)
		return 1
	}

	if val, ok := doc.Find(pagerSelector).Attr("data-pagecount"); ok {
		if pages, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && pages > 0 {
			d.logger.Info("topic page count discovered", "pages", pages)
			return pages
		}
		d.logger.Warn("unreadable page count attribute, assuming single page", "value", val)
		return 1
	}

	// No pager means a single-page topic.
	d.logger.Info("topic has a single page")
	return 1
}
