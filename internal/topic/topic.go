package topic

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Domain is the only host this scraper accepts. Subdomains of it
// (e.g. www.) are accepted as well.
const Domain = "eksisozluk.com"

// ErrInvalidURL is returned when the input URL does not belong to the
// target forum domain. This error is fatal to a scrape call.
var ErrInvalidURL = errors.New("invalid topic URL: not an " + Domain + " address")

// defaultTitle is used when sanitization leaves nothing usable.
const defaultTitle = "topic"

// maxTitleLength caps the derived title so generated filenames stay well
// under filesystem path limits.
const maxTitleLength = 100

// Normalize validates a raw topic URL and strips its query string.
// The rest of the URL is preserved exactly as given: no case folding,
// no trailing-slash handling, no re-encoding.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	host := strings.ToLower(u.Hostname())
	if host != Domain && !strings.HasSuffix(host, "."+Domain) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	base := raw
	if i := strings.Index(raw, "?"); i >= 0 {
		base = raw[:i]
	}
	return base, nil
}

// PageURL addresses one page of a topic by appending the page parameter.
func PageURL(baseURL string, page int) string {
	return baseURL + "?p=" + strconv.Itoa(page)
}

// invalidFilenameChars are characters rejected by at least one supported
// filesystem (the Windows set, which is a superset of the POSIX one).
const invalidFilenameChars = `<>:"/\|?*`

// DeriveTitle turns a topic URL into a filename-safe title: the last path
// segment with the numeric-ID suffix ("--123456") removed, word
// separators collapsed to underscores, filename-invalid characters
// stripped, and the result capped at 100 runes. Falls back to "topic"
// when nothing survives sanitization.
//
// DeriveTitle is pure and idempotent: applying it to its own output
// yields the same output. This matters because callers cannot always
// tell whether a string is still a URL or an already-derived title.
func DeriveTitle(baseURL string) string {
	title := baseURL

	// Drop the query string and reduce to the last path segment.
	if i := strings.Index(title, "?"); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSuffix(title, "/")
	if i := strings.LastIndex(title, "/"); i >= 0 {
		title = title[i+1:]
	}

	// The slug ends in "--<numeric id>"; everything from the first
	// occurrence of the separator onward is the ID, not the title.
	if i := strings.Index(title, "--"); i >= 0 {
		title = title[:i]
	}

	// Hyphens are the site's word separators, spaces may appear in
	// hand-typed input; both become a single filename-safe token.
	title = strings.ReplaceAll(title, "-", " ")
	title = strings.ReplaceAll(title, " ", "_")

	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return -1
		}
		return r
	}, title)

	title = strings.Trim(title, "_. ")
	if utf8.RuneCountInString(title) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}
	// Truncation can expose a trailing separator; trim again so the
	// function stays idempotent.
	title = strings.Trim(title, "_. ")

	if title == "" {
		return defaultTitle
	}
	return title
}
