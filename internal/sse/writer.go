// Package sse frames events onto a text/event-stream response. Each frame is
// a single "data: <json>\n\n" block flushed immediately so the caller sees
// partial output while the upstream is still generating it.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// doneSentinel terminates the stream; no further frames follow it.
const doneSentinel = "[DONE]"

// Writer encodes events as SSE frames on an http.ResponseWriter.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewWriter wraps a response writer. Headers are written lazily on the first
// frame so callers can still send a plain error response before any frame.
func NewWriter(w http.ResponseWriter) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// Started reports whether any frame has been written.
func (s *Writer) Started() bool {
	return s.started
}

// Event marshals v and writes it as one data frame.
func (s *Writer) Event(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sse marshal: %w", err)
	}
	return s.writeFrame(string(payload))
}

// Done writes the terminal sentinel frame.
func (s *Writer) Done() error {
	return s.writeFrame(doneSentinel)
}

func (s *Writer) writeFrame(data string) error {
	if !s.started {
		header := s.w.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("sse write: %w", err)
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
