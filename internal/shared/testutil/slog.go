// Package testutil provides test helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureState struct {
	mu      sync.Mutex
	records []LogRecord
}

// CaptureHandler is a slog.Handler that records everything it receives,
// so tests can assert on log output without parsing JSON.
type CaptureHandler struct {
	state *captureState
	attrs []slog.Attr
}

// NewCaptureLogger returns a logger and a function returning the records
// captured so far.
func NewCaptureLogger() (*slog.Logger, func() []LogRecord) {
	state := &captureState{}
	drain := func() []LogRecord {
		state.mu.Lock()
		defer state.mu.Unlock()
		out := make([]LogRecord, len(state.records))
		copy(out, state.records)
		return out
	}
	return slog.New(&CaptureHandler{state: state}), drain
}

// Enabled implements slog.Handler; everything is captured.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.records = append(h.state.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs implements slog.Handler
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{state: h.state, attrs: merged}
}

// WithGroup implements slog.Handler; groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Messages returns just the messages of the given records.
func Messages(records []LogRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message
	}
	return out
}
