package scrape

import (
	"context"
	"log/slog"

	"github.com/batu-os/eksiscraper/internal/fetch"
	"github.com/batu-os/eksiscraper/internal/model"
	"github.com/batu-os/eksiscraper/internal/topic"
)

// Scraper drives one complete topic scrape: normalize, discover the page
// count, then fetch, parse and merge every page in order.
//
// A Scraper owns no session state; each Scrape call builds a fresh
// Session, so concurrent scrapes of different URLs can share nothing but
// must each use their own Scraper (the underlying client paces requests
// per instance).
type Scraper struct {
	// fetcher retrieves pages with retry and backoff.
	fetcher *fetch.Fetcher

	// parser extracts entries from fetched markup.
	parser *Parser

	// discoverer determines the total page count.
	discoverer *Discoverer

	// logger for structured logging.
	logger *slog.Logger

	// normalize validates and canonicalizes the input URL.
	// Replaceable in tests, where targets live on loopback addresses.
	normalize func(string) (string, error)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithScraperLogger sets the logger used by the scraper and, unless they
// were overridden, by the components it constructs.
func WithScraperLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithFetcher replaces the default fetcher.
func WithFetcher(fetcher *fetch.Fetcher) Option {
	return func(s *Scraper) {
		s.fetcher = fetcher
	}
}

// NewScraper creates a Scraper on top of the given client.
// All page retrievals go through that single client so the courtesy
// delay applies across the whole session.
func NewScraper(client *fetch.Client, opts ...Option) *Scraper {
	s := &Scraper{
		logger:    slog.Default(),
		normalize: topic.Normalize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = fetch.NewFetcher(client, fetch.WithLogger(s.logger))
	}
	s.parser = NewParser(WithParserLogger(s.logger))
	s.discoverer = NewDiscoverer(client, WithDiscovererLogger(s.logger))

	return s
}

// Scrape retrieves every page of the topic at rawURL and returns the
// deduplicated session result.
//
// Only two conditions abort a scrape: an input URL outside the target
// domain (topic.ErrInvalidURL) and context cancellation, which returns
// the partial session together with the context's error. Every other
// failure is absorbed into the session's FetchError list and the scrape
// continues with the remaining pages.
//
// Deduplication is an explicit ordered pass: the first occurrence of an
// entry ID wins, later occurrences increment the duplicate counter and
// are dropped. Entries without an ID cannot be verified against the
// seen set and are dropped the same way.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*model.Session, error) {
	baseURL, err := s.normalize(rawURL)
	if err != nil {
		s.logger.Error("invalid topic URL", "url", rawURL, "error", err)
		return nil, err
	}

	session := model.NewSession(baseURL)
	session.TopicTitle = topic.DeriveTitle(baseURL)

	s.logger.Info("starting scrape", "url", baseURL, "title", session.TopicTitle)

	session.TotalPages = s.discoverer.DiscoverPageCount(ctx, baseURL)

	seen := make(map[string]struct{})
	for page := 1; page <= session.TotalPages; page++ {
		select {
		case <-ctx.Done():
			s.logger.Warn("scrape cancelled", "page", page, "reason", ctx.Err())
			return session, ctx.Err()
		default:
		}

		pageURL := topic.PageURL(baseURL, page)
		s.logger.Info("processing page", "page", page, "totalPages", session.TotalPages)

		markup, fetchErrs := s.fetcher.FetchPage(ctx, pageURL, page)
		session.Errors = append(session.Errors, fetchErrs...)
		if markup == "" {
			s.logger.Warn("skipping page, fetch failed", "page", page)
			continue
		}

		entries, parseErr := s.parser.ParsePage(markup, page)
		if parseErr != nil {
			parseErr.URL = pageURL
			session.Errors = append(session.Errors, *parseErr)
		}

		accepted := 0
		for _, entry := range entries {
			if entry.ID == "" {
				session.Duplicates++
				continue
			}
			if _, dup := seen[entry.ID]; dup {
				session.Duplicates++
				continue
			}
			seen[entry.ID] = struct{}{}
			session.Entries = append(session.Entries, entry)
			accepted++
		}

		if accepted > 0 {
			s.logger.Info("added entries", "page", page, "count", accepted)
		} else if len(entries) > 0 {
			s.logger.Warn("no new entries on page, all duplicates", "page", page)
		}
	}

	s.logger.Info("scrape completed",
		"entries", len(session.Entries),
		"duplicates", session.Duplicates,
		"errors", len(session.Errors),
	)

	return session, nil
}
