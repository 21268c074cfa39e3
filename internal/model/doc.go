// Package model defines the core data structures used throughout eksiscraper.
//
// This package contains the following main types:
//   - Entry: Represents a single post scraped from a topic page
//   - FetchError: Records a failed page fetch or parse
//   - Session: The result of one complete scrape run
//   - Summary: Aggregate statistics derived from a Session
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetch, scrape, export, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for database storage
// and to map directly onto the CSV export columns.
package model
