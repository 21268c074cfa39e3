// Package scrape turns fetched topic pages into deduplicated entries.
//
// # Components
//
//   - Parser: extracts structured entry records from one page's markup
//   - Discoverer: determines a topic's total page count from its pager
//   - Scraper: drives the full session, page by page
//
// # Ordering
//
// The Scraper processes pages strictly sequentially, 1..N. This is a
// deliberate design constraint, not an incidental limitation: the source
// enforces a minimum delay between successive requests, and concurrent
// fetches would defeat that pacing. Ordering also decides deduplication
// outcomes: entries arrive in page order and within a page in document
// order, and the first occurrence of an entry ID wins, so reordering
// pages would change which duplicate survives.
//
// Design decision: We use goquery for markup extraction rather than
// walking the node tree by hand because:
//  1. The site's markup is selector-friendly (stable ids and classes)
//  2. Attribute access with defaults maps directly onto the entry model
//  3. It correctly handles the malformed HTML real pages contain
package scrape
