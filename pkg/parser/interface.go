package parser

import "context"

// RecordSource provides an iterator over parsed call records.
// Implementations must be safe for sequential access (not concurrent).
type RecordSource interface {
	// Next returns the next call record.
	// Returns io.EOF when no more records are available.
	// An invalid line is returned as a *LineError; it is never skipped.
	Next(ctx context.Context) (*CallRecord, error)

	// Close releases any resources held by the source.
	Close() error
}
