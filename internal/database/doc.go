// Package database provides SQLite-based archival of scrape sessions.
//
// Every completed scrape can be recorded locally so repeated runs against
// the same topic accumulate a deduplicated entry archive instead of only
// leaving CSV files behind. The archive lives in the XDG data directory
// by default and is safe to delete at any time.
package database
