package parser

import (
	"fmt"
	"regexp"
	"time"
)

// Fixed call log timestamp format.
const (
	TimestampLayout  = "02-01-2006 15:04:05"
	TimestampPattern = `^\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2}$`
)

// TimestampParser validates and parses call timestamps.
// The pattern guards the shape (zero padding, no fractional seconds) that
// time.Parse alone would accept loosely.
type TimestampParser struct {
	pattern *regexp.Regexp
	layout  string
}

// NewTimestampParser creates a parser for the given pattern and layout.
func NewTimestampParser(pattern *regexp.Regexp, layout string) *TimestampParser {
	return &TimestampParser{
		pattern: pattern,
		layout:  layout,
	}
}

var defaultTimestampParser = NewTimestampParser(regexp.MustCompile(TimestampPattern), TimestampLayout)

// Parse parses s. Failures wrap ErrMalformedTimestamp.
func (p *TimestampParser) Parse(s string) (time.Time, error) {
	if !p.pattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q does not match dd-mm-yyyy HH:mm:ss", ErrMalformedTimestamp, s)
	}

	ts, err := time.Parse(p.layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing %q: %v", ErrMalformedTimestamp, s, err)
	}

	return ts, nil
}

// ParseTimestamp parses s in the fixed call log format.
func ParseTimestamp(s string) (time.Time, error) {
	return defaultTimestampParser.Parse(s)
}
