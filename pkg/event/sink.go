package event

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Sink receives normalized events, one per accepted log line.
// Implementations are not required to be safe for concurrent use; the
// parser calls Emit sequentially.
type Sink interface {
	Emit(ev *Event) error
}

// TextSink writes events as single human-readable lines.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a Sink that writes text lines to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes one event line.
func (s *TextSink) Emit(ev *Event) error {
	process := ev.ProcessName
	if process == "" {
		process = "-"
	}
	_, err := fmt.Fprintf(s.w, "%s %s %s <%s> %s: %s\n",
		ev.Timestamp.Format(time.RFC3339),
		ev.ComputerName,
		ev.Agent,
		ev.Status,
		process,
		ev.Action)
	return err
}

// JSONSink writes events as a stream of JSON objects, one per line.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a Sink that writes JSON lines to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit encodes one event.
func (s *JSONSink) Emit(ev *Event) error {
	return s.enc.Encode(ev)
}

// MemorySink collects events in memory. Useful for tests and for callers
// that want the whole timeline before rendering.
type MemorySink struct {
	Events []*Event
}

// Emit appends the event.
func (s *MemorySink) Emit(ev *Event) error {
	s.Events = append(s.Events, ev)
	return nil
}
