// Package parser turns call log text into validated call records.
package parser

import "time"

// CallRecord is a single call parsed from one log line.
type CallRecord struct {
	// PhoneNumber is the called number, decimal digits only.
	PhoneNumber string

	// Start is when the call began. Start is always before End.
	Start time.Time

	// End is when the call ended.
	End time.Time

	// LineNum is the 1-based line number in the source log.
	LineNum int
}

// Duration returns the elapsed time of the call.
func (r CallRecord) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
