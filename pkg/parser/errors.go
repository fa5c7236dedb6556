package parser

import "errors"

// Sentinel errors for the per-line failure kinds. None of these abort a
// file: the offending line is skipped and parsing continues.
var (
	// ErrNoMatch means a line fit neither grammar shape.
	ErrNoMatch = errors.New("line matches no known log line shape")

	// ErrUnknownRecordKind means the tokenizer produced a kind the state
	// machine does not dispatch on.
	ErrUnknownRecordKind = errors.New("unknown record kind")

	// ErrInvalidTimestamp means the composed date/time is not a valid
	// calendar instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrMissingPriorRecord means a repeated-marker line arrived before
	// any full record was seen.
	ErrMissingPriorRecord = errors.New("repeated marker with no prior record")
)
