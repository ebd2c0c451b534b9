package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var phoneNumberPattern = regexp.MustCompile(`^[0-9]+$`)

// ParseLine parses one log line of the form
// <digits>,<dd-mm-yyyy HH:mm:ss>,<dd-mm-yyyy HH:mm:ss>.
func ParseLine(line string) (CallRecord, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) != 3 {
		return CallRecord{}, fmt.Errorf("%w: expected 3 comma-separated fields, got %d", ErrMalformedLine, len(fields))
	}

	phone := fields[0]
	if !phoneNumberPattern.MatchString(phone) {
		return CallRecord{}, fmt.Errorf("%w: phone number contains invalid characters: %q", ErrInvalidArgument, phone)
	}

	start, err := ParseTimestamp(fields[1])
	if err != nil {
		return CallRecord{}, fmt.Errorf("call start: %w", err)
	}

	end, err := ParseTimestamp(fields[2])
	if err != nil {
		return CallRecord{}, fmt.Errorf("call end: %w", err)
	}

	if !start.Before(end) {
		return CallRecord{}, fmt.Errorf("%w: call start is not before call end", ErrInvalidArgument)
	}

	return CallRecord{
		PhoneNumber: phone,
		Start:       start,
		End:         end,
	}, nil
}

// ParseLog parses a complete log held in memory.
// The empty string is a valid log with no calls.
func ParseLog(log string) ([]CallRecord, error) {
	if log == "" {
		return nil, nil
	}

	src := NewReaderSource(strings.NewReader(log), "")
	defer src.Close()

	return ReadAll(context.Background(), src)
}

// ReadAll drains a RecordSource. It stops at the first error.
func ReadAll(ctx context.Context, src RecordSource) ([]CallRecord, error) {
	var records []CallRecord
	for {
		rec, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
}
