// Package detector decides whether a file is a macOS application firewall
// log. The decision is made from the first line alone: the firewall always
// opens a fresh log by recording the creation of the log file itself, so a
// file that does not start with that exact record is some other format.
package detector

import (
	"github.com/appfwlog/appfwlog/pkg/tokenizer"
)

const (
	// initAction is the action text of the first record the firewall
	// writes after creating its log file.
	initAction = "creating /var/log/appfirewall.log"

	// initStatus is the status the init record is logged under.
	initStatus = "Error"
)

// Detect reports whether firstLine identifies an application firewall log.
//
// The line must tokenize as a full record whose action and status match the
// well-known init record exactly. Detect is a one-shot gate: it is only
// meaningful for the first candidate line of a file and is never consulted
// again once a file has been accepted.
func Detect(firstLine string) bool {
	rec, ok := tokenizer.Tokenize(firstLine)
	if !ok || rec.Kind != tokenizer.KindLogLine {
		return false
	}
	return rec.Action == initAction && rec.Status == initStatus
}
