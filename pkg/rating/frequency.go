package rating

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ccollicutt/telbill/pkg/parser"
)

// Counts returns the number of calls per phone number.
func Counts(records []parser.CallRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.PhoneNumber]++
	}
	return counts
}

// MostCalled returns the phone number with the most calls.
// Ties go to the numerically largest number. Returns false for an empty log.
func MostCalled(records []parser.CallRecord) (string, bool) {
	counts := Counts(records)

	var best string
	bestCount := 0
	for number, count := range counts {
		if count > bestCount || (count == bestCount && CompareNumbers(number, best) > 0) {
			best = number
			bestCount = count
		}
	}

	return best, bestCount > 0
}

// CompareNumbers compares two digit strings as integers of any length and
// returns -1, 0 or +1. Equal values with different leading zeros fall back
// to string order, so only identical strings compare equal.
func CompareNumbers(a, b string) int {
	if cmp := decimal.RequireFromString(a).Cmp(decimal.RequireFromString(b)); cmp != 0 {
		return cmp
	}
	return strings.Compare(a, b)
}
