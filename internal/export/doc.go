// Package export writes scrape sessions to CSV files.
//
// The package produces two artifacts per session: an entry file holding
// every unique entry in page order, and an error file listing the pages
// that could not be fetched. Both files carry a UTF-8 byte order mark so
// spreadsheet applications decode Turkish text correctly.
package export
