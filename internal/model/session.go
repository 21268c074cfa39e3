package model

import (
	"sort"
	"time"
)

// Session is the result of one complete scrape run. It exclusively owns
// its Entry and FetchError collections; no other component retains
// references to them beyond the call that produced them. A Session is
// fully rebuilt on every scrape invocation, never reused incrementally.
type Session struct {
	// BaseURL is the normalized topic URL without query parameters.
	BaseURL string `json:"base_url"`

	// TopicTitle is the filename-safe display name derived from the URL.
	TopicTitle string `json:"topic_title"`

	// TotalPages is the page count reported by the topic's pager,
	// or 1 when the pager was absent or unreadable.
	TotalPages int `json:"total_pages"`

	// Entries holds the accepted entries in page order, and within a page
	// in document order. The set of entry IDs is duplicate-free.
	Entries []Entry `json:"entries"`

	// Errors holds every FetchError recorded during the run.
	Errors []FetchError `json:"errors,omitempty"`

	// Duplicates counts entries dropped during deduplication, including
	// entries without an ID.
	Duplicates int `json:"duplicates"`

	// ScrapedAt is when the scrape started.
	ScrapedAt time.Time `json:"scraped_at"`
}

// NewSession creates an empty Session for the given normalized URL.
func NewSession(baseURL string) *Session {
	return &Session{
		BaseURL:   baseURL,
		Entries:   make([]Entry, 0),
		Errors:    make([]FetchError, 0),
		ScrapedAt: time.Now(),
	}
}

// AuthorCount pairs an author name with the number of entries they posted.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// Summary holds aggregate statistics for a Session. It always
// distinguishes partial success from full success: ErrorCount is non-zero
// whenever any page failed, even if entries were still collected.
type Summary struct {
	TotalEntries   int           `json:"total_entries"`
	UniqueAuthors  int           `json:"unique_authors"`
	TotalFavorites int           `json:"total_favorites"`
	TopAuthors     []AuthorCount `json:"top_authors,omitempty"`
	Duplicates     int           `json:"duplicates"`
	ErrorCount     int           `json:"error_count"`
}

// topAuthorLimit is how many authors Summary reports, matching the
// "top 5 authors" section of the CLI summary output.
const topAuthorLimit = 5

// Summarize computes aggregate statistics over the session's entries.
func (s *Session) Summarize() Summary {
	byAuthor := make(map[string]int)
	favorites := 0
	for _, entry := range s.Entries {
		favorites += entry.FavoriteCount
		if entry.Author != "" {
			byAuthor[entry.Author]++
		}
	}

	top := make([]AuthorCount, 0, len(byAuthor))
	for author, count := range byAuthor {
		top = append(top, AuthorCount{Author: author, Count: count})
	}
	// Ties broken alphabetically so the output is deterministic.
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Author < top[j].Author
	})
	if len(top) > topAuthorLimit {
		top = top[:topAuthorLimit]
	}

	return Summary{
		TotalEntries:   len(s.Entries),
		UniqueAuthors:  len(byAuthor),
		TotalFavorites: favorites,
		TopAuthors:     top,
		Duplicates:     s.Duplicates,
		ErrorCount:     len(s.Errors),
	}
}
