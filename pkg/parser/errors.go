package parser

import (
	"errors"
	"fmt"
)

// Error kinds. Every parse failure wraps exactly one of these.
var (
	// ErrInvalidArgument marks a well-formed line that breaks a business rule
	// (non-digit phone number, start not before end).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedTimestamp marks a timestamp field that does not follow
	// the dd-mm-yyyy HH:mm:ss format.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedLine marks a line that is not three comma-separated fields.
	ErrMalformedLine = errors.New("malformed line")
)

// LineError reports which log line failed to parse.
type LineError struct {
	// Source is the log name (file path or "<stdin>"), may be empty.
	Source string

	// LineNum is the 1-based line number.
	LineNum int

	// Line is the raw line content.
	Line string

	// Err is the underlying error.
	Err error
}

func (e *LineError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.LineNum, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.LineNum, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by invalid log content,
// as opposed to an I/O or configuration problem.
func IsInputError(err error) bool {
	var lineErr *LineError
	return errors.As(err, &lineErr)
}
