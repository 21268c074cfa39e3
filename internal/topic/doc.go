// Package topic validates and canonicalizes topic URLs.
//
// A topic URL looks like https://eksisozluk.com/baslik-ismi--123456 and
// addresses a single discussion thread. This package provides:
//   - Normalize: strip query parameters and reject foreign hosts
//   - DeriveTitle: turn the URL path into a filename-safe title
//   - PageURL: address an individual page of the topic
//
// Design decision: Normalization is deliberately minimal. Beyond dropping
// the query string we preserve the URL exactly as given (case, trailing
// slash, percent-encoding), because the site treats the slug as opaque
// and rewriting it risks addressing a different topic.
package topic
