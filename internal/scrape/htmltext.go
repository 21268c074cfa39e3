package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// collapseText extracts the visible text beneath the given nodes with
// each text fragment trimmed and fragments joined by single spaces.
// Entry bodies span nested links and formatting tags whose indentation
// whitespace is not part of the content.
func collapseText(nodes ...*html.Node) string {
	var fragments []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				fragments = append(fragments, trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}

	return strings.Join(fragments, " ")
}
