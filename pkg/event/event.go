// Package event defines the normalized firewall event produced by parsing
// and the sinks that receive it.
package event

import "time"

// Event is one normalized application firewall record. Events are
// constructed fresh per accepted log line; ownership passes to the sink on
// Emit.
type Event struct {
	// Timestamp is the absolute instant of the record, composed in UTC
	// from the line's month/day/time and the inferred year.
	Timestamp time.Time `json:"timestamp"`

	// ComputerName is the host that wrote the record.
	ComputerName string `json:"computer_name"`

	// Agent is the logging agent, e.g. "socketfilterfw[112]".
	Agent string `json:"agent"`

	// Status is the severity tag between angle brackets, e.g. "Info".
	Status string `json:"status"`

	// ProcessName names the entity the action applies to, whitespace
	// trimmed. Empty for the firewall's own housekeeping records.
	ProcessName string `json:"process_name"`

	// Action is the free-text action, decoded permissively: invalid byte
	// sequences have been replaced with U+FFFD.
	Action string `json:"action"`

	// Source is the file the record came from, when known.
	Source string `json:"source,omitempty"`
}
