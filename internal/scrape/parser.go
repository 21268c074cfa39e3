package scrape

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/batu-os/eksiscraper/internal/model"
)

// Structural markers in the topic page markup. The site has kept these
// stable for years; they are the same selectors its own frontend uses.
const (
	entryListSelector = "ul#entry-item-list"
	entryItemSelector = "li#entry-item"
	contentSelector   = "div.content"
	dateSelector      = "footer a.entry-date"
)

// Parser extracts entry records from topic page markup.
// Internal per-entry problems degrade to empty fields and never abort
// the page; only a document that cannot be parsed at all is reported.
type Parser struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLogger sets a custom logger for the parser.
func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePage extracts all entries from one page's markup.
//
// A missing entry-list container is a warning, not an error: pages
// outside the topic range render without one. A document-level parse
// failure returns an empty slice plus a FetchError with a parse-error
// classification; the caller fills in the page URL.
//
// Entries without a data-id attribute are still returned. Dropping them
// is the deduplicating aggregator's decision, not the parser's.
func (p *Parser) ParsePage(markup string, page int) ([]model.Entry, *model.FetchError) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		p.logger.Error("error parsing page", "page", page, "error", err)
		return []model.Entry{}, &model.FetchError{
			Page:   page,
			Reason: "parse error: " + err.Error(),
		}
	}

	list := doc.Find(entryListSelector)
	if list.Length() == 0 {
		p.logger.Warn("no entry list found", "page", page)
		return []model.Entry{}, nil
	}

	items := list.Find(entryItemSelector)
	p.logger.Info("found entries", "page", page, "count", items.Length())

	entries := make([]model.Entry, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		entry := model.NewEntry(
			item.AttrOr("data-id", ""),
			page,
			item.AttrOr("data-favorite-count", "0"),
		)
		entry.Author = item.AttrOr("data-author", "")
		entry.AuthorID = item.AttrOr("data-author-id", "")

		if content := item.Find(contentSelector); content.Length() > 0 {
			entry.Content = collapseText(content.Nodes...)
		}

		// The date link sits inside the entry footer; either may be
		// missing, which leaves the date absent rather than failing.
		if date := item.Find(dateSelector); date.Length() > 0 {
			entry.Date = collapseText(date.Nodes...)
		}

		entries = append(entries, entry)
	})

	return entries, nil
}
