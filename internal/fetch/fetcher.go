package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/batu-os/eksiscraper/internal/model"
)

// Backoff multipliers per response class. The wait before retry attempt
// n (0-indexed) is (n+1) times the multiplier.
const (
	rateLimitBackoff = 10 * time.Second
	forbiddenBackoff = 5 * time.Second
)

// Fetcher retrieves individual topic pages with retry and backoff.
// It never fails past its own boundary: every failure is reported as a
// recorded FetchError value and the page is simply absent from the
// result. The orchestrator accumulates the records; Fetcher keeps no
// state between calls.
type Fetcher struct {
	// client performs the actual paced HTTP requests.
	client *Client

	// maxRetries is the number of attempts per page.
	maxRetries int

	// logger for structured logging.
	logger *slog.Logger

	// sleep waits out backoff intervals. Injectable so tests can count
	// waits instead of serving them.
	sleep func(ctx context.Context, d time.Duration) error
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithMaxRetries sets the number of fetch attempts per page.
func WithMaxRetries(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxRetries = n
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher using the given client.
func NewFetcher(client *Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:     client,
		maxRetries: 3,
		logger:     slog.Default(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// sleepContext waits for the duration or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FetchPage retrieves one topic page, retrying up to the configured
// attempt count. It returns the page HTML (empty when every attempt
// failed) together with the FetchErrors recorded along the way.
//
// State machine per attempt:
//   - 200: success, return the body immediately
//   - 429: rate limited, back off (attempt+1) x 10s, retry
//   - 403: forbidden, back off (attempt+1) x 5s, retry
//   - 404: terminal, record and return immediately
//   - other status: record, retry without backoff
//   - transport error: retry; recorded only on the final attempt
//
// A successful attempt can still return earlier attempts' records: a 500
// followed by a 200 yields both the body and one FetchError.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string, page int) (string, []model.FetchError) {
	var recorded []model.FetchError

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		lastAttempt := attempt == f.maxRetries-1

		resp, err := f.client.Get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-fetch; report whatever is recorded so far.
				return "", recorded
			}
			f.logger.Error("error fetching page",
				"page", page,
				"attempt", attempt+1,
				"maxRetries", f.maxRetries,
				"error", err,
			)
			if lastAttempt {
				recorded = append(recorded, model.FetchError{Page: page, Reason: err.Error(), URL: pageURL})
			}
			continue
		}

		switch status := resp.StatusCode(); status {
		case http.StatusOK:
			f.logger.Info("page fetched", "page", page, "attempt", attempt+1)
			return resp.String(), recorded

		case http.StatusTooManyRequests:
			wait := time.Duration(attempt+1) * rateLimitBackoff
			f.logger.Warn("rate limited",
				"page", page,
				"wait", wait,
				"attempt", attempt+1,
				"maxRetries", f.maxRetries,
			)
			if lastAttempt {
				recorded = append(recorded, model.HTTPFetchError(page, status, pageURL))
				continue
			}
			if err := f.sleep(ctx, wait); err != nil {
				return "", recorded
			}

		case http.StatusForbidden:
			wait := time.Duration(attempt+1) * forbiddenBackoff
			f.logger.Warn("access denied",
				"page", page,
				"wait", wait,
				"attempt", attempt+1,
				"maxRetries", f.maxRetries,
			)
			if lastAttempt {
				recorded = append(recorded, model.HTTPFetchError(page, status, pageURL))
				continue
			}
			if err := f.sleep(ctx, wait); err != nil {
				return "", recorded
			}

		case http.StatusNotFound:
			// No point retrying a page that does not exist.
			f.logger.Error("page not found", "page", page, "url", pageURL)
			recorded = append(recorded, model.HTTPFetchError(page, status, pageURL))
			return "", recorded

		default:
			f.logger.Error("unexpected status", "page", page, "status", status)
			recorded = append(recorded, model.HTTPFetchError(page, status, pageURL))
		}
	}

	return "", recorded
}
