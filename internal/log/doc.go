// Package log provides the dual-sink logging setup for eksiscraper.
//
// Every component logs through an injected *slog.Logger rather than a
// process-wide singleton, which keeps tests isolated and lets library
// consumers supply their own logger.
//
// The CLI wires two sinks together with TeeHandler:
//   - an append-only log file capturing all diagnostic detail at debug level
//   - a console stream whose verbosity is gated by the silent option
//
// Design decision: We implement fan-out as an slog.Handler wrapper rather
// than an io.MultiWriter because the two sinks have different levels and
// formats; a byte-level tee could not filter per destination.
package log
