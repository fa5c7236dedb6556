// Package tokenizer classifies raw macOS application firewall log lines.
//
// The log knows exactly two physical line shapes: a full record carrying
// host, agent, status, process and action fields, and a terse repetition
// marker that only restates the time of day. Anything else is rejected.
package tokenizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which grammar shape a line matched.
type Kind int

const (
	// KindNone means the line matched neither shape.
	KindNone Kind = iota

	// KindLogLine is a full firewall record.
	// Example: "Nov  2 04:07:35 DarkTemplar-2.local socketfilterfw[112] <Info>: Dropbox: Allow (in:0 out:2)"
	KindLogLine

	// KindRepeated is a repetition marker carrying only a new timestamp.
	// Example: "Nov 29 22:18:29 --- last message repeated 1 time ---"
	KindRepeated
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLogLine:
		return "logline"
	case KindRepeated:
		return "repeated"
	default:
		return "none"
	}
}

// Record holds the fields extracted from a single log line.
//
// Only the timestamp fields are populated for every kind. A KindRepeated
// record carries ProcessName (the marker text between the separators) and
// nothing else; the caller is expected to fill in the remaining fields from
// the previous full record.
type Record struct {
	Kind  Kind
	Month time.Month
	Day   int

	Hour   int
	Minute int
	Second int

	ComputerName string
	Agent        string
	Status       string

	// ProcessName is captured raw and may carry boundary whitespace.
	// Use TrimmedProcessName for the cleaned value.
	ProcessName string

	// Action is the raw remainder of the line. It is not guaranteed to be
	// valid UTF-8; see DecodeAction.
	Action string
}

// TrimmedProcessName returns ProcessName with boundary whitespace removed.
func (r *Record) TrimmedProcessName() string {
	return strings.TrimSpace(r.ProcessName)
}

// Grammar for the two line shapes. Submatch order mirrors field order in
// the log: month, day, hour, minute, second, then the shape-specific tail.
// The "process:" segment is optional: the firewall's own housekeeping lines
// (including the init line the detector keys on) go straight from status to
// action without naming a process.
var (
	logLinePattern = regexp.MustCompile(
		`^([A-Za-z]{3})\s+(\d{1,2})\s+(\d{2}):(\d{2}):(\d{2})\s+(\S+)\s+(\S+)\s+<([^>]+)>:(?:([^:]*):)?[ \t]*(.*)$`)

	repeatedPattern = regexp.MustCompile(
		`^([A-Za-z]{3})\s+(\d{1,2})\s+(\d{2}):(\d{2}):(\d{2})\s+---([^-]+)---\s*$`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Tokenize attempts to match line against the full-record shape first, then
// the repeated-marker shape. It reports ok=false when neither shape matches;
// malformed input is never an error, only a non-match.
func Tokenize(line string) (*Record, bool) {
	if m := logLinePattern.FindStringSubmatch(line); m != nil {
		rec, ok := newRecord(KindLogLine, m[1], m[2], m[3], m[4], m[5])
		if !ok {
			return nil, false
		}
		rec.ComputerName = m[6]
		rec.Agent = m[7]
		rec.Status = m[8]
		rec.ProcessName = m[9]
		rec.Action = m[10]
		return rec, true
	}

	if m := repeatedPattern.FindStringSubmatch(line); m != nil {
		rec, ok := newRecord(KindRepeated, m[1], m[2], m[3], m[4], m[5])
		if !ok {
			return nil, false
		}
		rec.ProcessName = m[6]
		return rec, true
	}

	return nil, false
}

func newRecord(kind Kind, month, day, hour, minute, second string) (*Record, bool) {
	m, ok := monthsByName[strings.ToLower(month)]
	if !ok {
		return nil, false
	}

	// The digit counts are enforced by the grammar, so these cannot fail.
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	min, _ := strconv.Atoi(minute)
	sec, _ := strconv.Atoi(second)

	return &Record{
		Kind:   kind,
		Month:  m,
		Day:    d,
		Hour:   h,
		Minute: min,
		Second: sec,
	}, true
}
