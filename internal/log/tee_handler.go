package log

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// TeeHandler fans out log records to multiple underlying handlers.
// Each handler keeps its own level filtering, so a debug-level file
// handler and a warn-level console handler can share one logger.
type TeeHandler struct {
	// handlers receive every record they are individually enabled for.
	handlers []slog.Handler
}

// NewTeeHandler creates a TeeHandler over the given handlers.
// Nil handlers are skipped so callers can pass optional sinks directly.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	hs := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return &TeeHandler{handlers: hs}
}

// Enabled reports whether at least one underlying handler accepts
// records at the given level.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every underlying handler that is enabled
// for its level. All handlers are attempted even if one fails; the
// combined error is returned.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new TeeHandler with the attributes added to every
// underlying handler.
func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: hs}
}

// WithGroup returns a new TeeHandler with the group applied to every
// underlying handler.
func (t *TeeHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: hs}
}

// New creates the standard eksiscraper logger: an append-only log file at
// debug level plus stderr at info level, or warn level when silent is
// set. The returned close function flushes and closes the log file.
//
// If the log file cannot be opened the console sink is still returned,
// with the open error, so callers can decide whether that is fatal.
func New(logPath string, silent bool) (*slog.Logger, func() error, error) {
	consoleLevel := slog.LevelInfo
	if silent {
		consoleLevel = slog.LevelWarn
	}
	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: consoleLevel})

	if dir := filepath.Dir(logPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return slog.New(console), func() error { return nil },
				fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // Log path comes from config
	if err != nil {
		return slog.New(console), func() error { return nil },
			fmt.Errorf("failed to open log file: %w", err)
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewTeeHandler(fileHandler, console))
	return logger, file.Close, nil
}
