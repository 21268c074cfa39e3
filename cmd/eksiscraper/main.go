// Package main provides the entry point for the eksiscraper CLI.
//
// eksiscraper collects every entry of an Ekşi Sözlük topic and exports
// the result as CSV. It paces its requests, retries rate-limited pages
// with backoff, and records failed pages in a companion error file.
//
// Usage:
//
//	eksiscraper scrape <topic-url>
//	eksiscraper scrape --delay 3000 --output entries.csv <topic-url>
//
// See --help for all available options.
package main

// main is the entry point for eksiscraper.
func main() {
	Execute()
}
