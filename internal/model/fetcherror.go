package model

import "fmt"

// FetchError records one failed page fetch or page-level parse failure.
// It is created when a page's retries are exhausted, when a terminal HTTP
// status is hit, or when a document cannot be parsed at all. A FetchError
// is never mutated after creation; the Session accumulates them and the
// exporter writes them out verbatim.
type FetchError struct {
	// Page is the topic page number the failure occurred on. Always >= 1.
	Page int `json:"page"`

	// Reason is a free-text classification of the failure,
	// e.g. "404 Not Found", "HTTP 503" or "parse error: ...".
	Reason string `json:"error"`

	// URL is the full page URL that failed.
	URL string `json:"url"`
}

// HTTPFetchError creates a FetchError for a non-success HTTP status.
func HTTPFetchError(page int, status int, url string) FetchError {
	reason := fmt.Sprintf("HTTP %d", status)
	if status == 404 {
		reason = "404 Not Found"
	}
	return FetchError{Page: page, Reason: reason, URL: url}
}

// String returns a human-readable description for logging.
func (e FetchError) String() string {
	return fmt.Sprintf("page %d: %s (%s)", e.Page, e.Reason, e.URL)
}
