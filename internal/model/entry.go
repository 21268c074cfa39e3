package model

import "strconv"

// Entry represents a single post within a topic.
// Optional fields use the empty string as their explicit absent value;
// there are no "missing keys" as in a loosely-typed map.
type Entry struct {
	// ID is the opaque unique identifier of the entry as published by the
	// site (the data-id attribute). Entries without an ID cannot be
	// verified against the seen-ID set and are dropped during
	// deduplication.
	ID string `json:"entry_id"`

	// Author is the display name of the poster. Optional.
	Author string `json:"author,omitempty"`

	// AuthorID is the site-internal numeric identifier of the poster.
	// Optional, kept as a string because it is opaque to us.
	AuthorID string `json:"author_id,omitempty"`

	// FavoriteCount is the number of favorites the entry has received.
	// Never negative; zero when the attribute is absent or malformed.
	FavoriteCount int `json:"favorite_count"`

	// Content is the free-text body of the entry. Optional.
	Content string `json:"content,omitempty"`

	// Date is the timestamp exactly as displayed by the source.
	// We deliberately do not parse it: the site localizes and reformats
	// dates, and downstream consumers want the original text.
	Date string `json:"date,omitempty"`

	// PageNumber is the topic page the entry was found on. Always >= 1.
	PageNumber int `json:"page_number"`
}

// NewEntry creates an Entry for the given page with its favorite count
// parsed from the raw attribute value. Absent or malformed counts default
// to zero and negative counts are clamped to zero, so FavoriteCount is
// always valid after construction.
func NewEntry(id string, page int, rawFavorites string) Entry {
	count, err := strconv.Atoi(rawFavorites)
	if err != nil || count < 0 {
		count = 0
	}
	return Entry{
		ID:            id,
		FavoriteCount: count,
		PageNumber:    page,
	}
}
