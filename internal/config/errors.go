package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no topic URL is specified.
	ErrNoTarget = errors.New("no target specified: provide a topic URL")

	// ErrInvalidDelay is returned when the request delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxRetries is returned when the retry count is not
	// positive. At least one attempt per page is required.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or less would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
)
