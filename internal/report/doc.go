// Package report renders scrape session summaries.
//
// A report is the human-facing counterpart of the CSV export: it tells
// the operator how a run went (entries collected, duplicates dropped,
// pages that failed) without opening the data files. Writers exist for
// plain terminal text, Markdown, and JSON.
package report
