package parser

import (
	"os"
	"time"
)

// FileTimes exposes the metadata times of the file being parsed. Either
// accessor may report ok=false when the underlying metadata is unavailable.
type FileTimes interface {
	// CreationTime returns the file's creation time, if known.
	CreationTime() (time.Time, bool)

	// ModificationTime returns the file's last modification time, if known.
	ModificationTime() (time.Time, bool)
}

// StatTimes is a FileTimes backed by os.Stat. Creation time is not portably
// available through os.FileInfo, so only the modification time is reported.
type StatTimes struct {
	Path string
}

// CreationTime always reports unavailable.
func (s StatTimes) CreationTime() (time.Time, bool) {
	return time.Time{}, false
}

// ModificationTime returns the stat mtime, or ok=false if stat fails.
func (s StatTimes) ModificationTime() (time.Time, bool) {
	fi, err := os.Stat(s.Path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

// YearResolver produces the initial year for a log whose lines carry no
// year of their own. Resolution order, first hit wins:
//
//  1. an externally supplied hint,
//  2. file creation time, then modification time, read in Location,
//  3. the current UTC year.
//
// The clock fallback guarantees Resolve never fails.
type YearResolver struct {
	// Hint is an externally supplied year; zero means no hint.
	Hint int

	// Files supplies file metadata times. May be nil.
	Files FileTimes

	// Location converts metadata times to a calendar year. Nil means UTC.
	Location *time.Location

	// Now is the clock used for the final fallback. Nil means time.Now.
	Now func() time.Time
}

// Resolve returns a positive year.
func (r *YearResolver) Resolve() int {
	if r.Hint > 0 {
		return r.Hint
	}

	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	if r.Files != nil {
		if t, ok := r.Files.CreationTime(); ok && !t.IsZero() {
			return t.In(loc).Year()
		}
		if t, ok := r.Files.ModificationTime(); ok && !t.IsZero() {
			return t.In(loc).Year()
		}
	}

	now := r.Now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Year()
}
