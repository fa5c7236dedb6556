// Package parser turns raw application firewall log lines into normalized
// events. One Session handles one file's line stream; it carries the
// inferred year, the last month seen (for year rollover), and the previous
// full record (for expanding repetition markers).
package parser

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/appfwlog/appfwlog/pkg/event"
	"github.com/appfwlog/appfwlog/pkg/tokenizer"
)

// Stats counts the outcomes of one parsing session.
type Stats struct {
	Lines            int // lines handed to ProcessLine
	Events           int // events delivered to the sink
	NoMatch          int // lines fitting neither shape
	InvalidTimestamp int // lines whose date/time was not calendar-valid
	MissingPrior     int // repeated markers with nothing to repeat
	DecodeAnomalies  int // actions with invalid byte sequences, repaired
}

// Session is the per-file parsing state. It is not safe for concurrent use
// and must not be shared across files: allocate one Session per file.
type Session struct {
	resolver *YearResolver
	sink     event.Sink
	log      *zap.SugaredLogger
	source   string

	yearInUse int        // 0 until resolved, then fixed apart from rollover
	lastMonth time.Month // 0 until the first record is seen
	prev      *tokenizer.Record
	stats     Stats
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for per-line anomaly reporting.
func WithLogger(log *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSource tags emitted events with the file they came from.
func WithSource(path string) SessionOption {
	return func(s *Session) {
		s.source = path
	}
}

// NewSession creates a parsing session that resolves its year through
// resolver and delivers events to sink.
func NewSession(resolver *YearResolver, sink event.Sink, opts ...SessionOption) *Session {
	s := &Session{
		resolver: resolver,
		sink:     sink,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a snapshot of the session's counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// ProcessLine tokenizes one raw line and steps the state machine. A line
// yields at most one event. Per-line failures are returned (and logged) but
// never poison the session; the caller simply feeds the next line.
func (s *Session) ProcessLine(line string) error {
	s.stats.Lines++

	rec, ok := tokenizer.Tokenize(line)
	if !ok {
		s.stats.NoMatch++
		s.log.Debugf("skipping unparsable line: %q", line)
		return fmt.Errorf("%w: %q", ErrNoMatch, line)
	}

	return s.processRecord(rec)
}

func (s *Session) processRecord(rec *tokenizer.Record) error {
	switch rec.Kind {
	case tokenizer.KindLogLine, tokenizer.KindRepeated:
	default:
		s.log.Warnf("unable to parse record, unknown kind: %s", rec.Kind)
		return fmt.Errorf("%w: %s", ErrUnknownRecordKind, rec.Kind)
	}

	// The year is resolved once per session, on the first record.
	if s.yearInUse == 0 {
		s.yearInUse = s.resolver.Resolve()
	}

	// Year rollover: the log wraps December into January without ever
	// stating the new year, so any month decrease bumps the year. There
	// is deliberately no sanity cap; an out-of-order month sequence
	// increments cumulatively.
	month := rec.Month
	if s.lastMonth == 0 {
		s.lastMonth = month
	}
	if month < s.lastMonth {
		s.yearInUse++
	}

	ts, err := ComposeTimestamp(
		s.yearInUse, month, rec.Day, rec.Hour, rec.Minute, rec.Second)

	// Bookkeeping happens whether or not the timestamp composed: a bad
	// date still advances the month cursor and, for a full record,
	// becomes the expansion source for later repetition markers.
	s.lastMonth = month
	if rec.Kind == tokenizer.KindLogLine {
		s.prev = rec
	}

	if err != nil {
		s.stats.InvalidTimestamp++
		s.log.Debugf("skipping line with invalid timestamp: %v", err)
		return err
	}

	// A repetition marker reuses every field of the previous full record;
	// only the timestamp is its own.
	acting := rec
	if rec.Kind == tokenizer.KindRepeated {
		if s.prev == nil {
			s.stats.MissingPrior++
			s.log.Warnf("repeated marker before any full record, dropping line")
			return ErrMissingPriorRecord
		}
		acting = s.prev
	}

	action, clean := tokenizer.DecodeAction(acting.Action)
	if !clean {
		s.stats.DecodeAnomalies++
		s.log.Warnf("action text contains invalid byte sequences, replaced with U+FFFD")
	}

	ev := &event.Event{
		Timestamp:    ts,
		ComputerName: acting.ComputerName,
		Agent:        acting.Agent,
		Status:       acting.Status,
		ProcessName:  acting.TrimmedProcessName(),
		Action:       action,
		Source:       s.source,
	}

	if err := s.sink.Emit(ev); err != nil {
		return fmt.Errorf("emitting event: %w", err)
	}
	s.stats.Events++
	return nil
}
