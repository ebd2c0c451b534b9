package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineSize is the longest line, in bytes, a ReaderSource accepts.
const MaxLineSize = 1024 * 1024

// ReaderSource implements RecordSource over an io.Reader, one record per line.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	lineNum int
	err     error
}

// NewReaderSource creates a RecordSource reading from r.
// The name is used in error messages (for example a file path).
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	s := &ReaderSource{
		name:    name,
		scanner: scanner,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// NewFileSource opens path and returns a RecordSource over its lines.
func NewFileSource(path string) (*ReaderSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening call log %s: %w", path, err)
	}
	return NewReaderSource(f, path), nil
}

// Name returns the source name.
func (s *ReaderSource) Name() string {
	return s.name
}

// Next returns the next call record.
// The newline ending the last line does not start a new record, but any
// other blank line is a malformed line.
func (s *ReaderSource) Next(ctx context.Context) (*CallRecord, error) {
	if s.err != nil {
		return nil, s.err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				s.err = &LineError{
					Source:  s.name,
					LineNum: s.lineNum + 1,
					Err:     fmt.Errorf("%w: line longer than %d bytes", ErrMalformedLine, MaxLineSize),
				}
				return nil, s.err
			}
			s.err = fmt.Errorf("reading %s: %w", s.displayName(), err)
			return nil, s.err
		}
		s.err = io.EOF
		return nil, io.EOF
	}

	s.lineNum++
	line := strings.TrimSuffix(s.scanner.Text(), "\r")

	rec, err := ParseLine(line)
	if err != nil {
		s.err = &LineError{
			Source:  s.name,
			LineNum: s.lineNum,
			Line:    line,
			Err:     err,
		}
		return nil, s.err
	}

	rec.LineNum = s.lineNum
	return &rec, nil
}

// Close releases the underlying reader if it is closable.
func (s *ReaderSource) Close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

func (s *ReaderSource) displayName() string {
	if s.name == "" {
		return "call log"
	}
	return s.name
}
