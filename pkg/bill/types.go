// Package bill totals the cost of a call log.
package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ccollicutt/telbill/pkg/parser"
	"github.com/ccollicutt/telbill/pkg/rating"
)

// Bill is the outcome of rating one call log.
type Bill struct {
	// Total is the amount due.
	Total decimal.Decimal

	// FreeNumber is the most called number, whose calls cost nothing.
	// Empty for an empty log.
	FreeNumber string

	// Calls holds every record in log order with its charge.
	Calls []RatedCall

	// Numbers summarizes calls per phone number, ordered by number.
	Numbers []NumberSummary

	// Stats provides context about the run.
	Stats Stats
}

// RatedCall is a call record with its charge.
type RatedCall struct {
	Record parser.CallRecord

	// Charge is the rated price. Zero for free calls, which are not rated.
	Charge rating.Charge

	// Free is true when the call belongs to the free number.
	Free bool
}

// NumberSummary aggregates the calls to one phone number.
type NumberSummary struct {
	PhoneNumber string
	Calls       int
	Amount      decimal.Decimal
	Free        bool
}

// Stats describes a calculation run.
type Stats struct {
	// Records is the number of call records in the log.
	Records int

	// FreeCalls is how many records were excluded as free.
	FreeCalls int

	// StartTime is when the calculation began.
	StartTime time.Time

	// EndTime is when the calculation completed.
	EndTime time.Time
}

// IsEmpty returns true if the log had no calls.
func (b *Bill) IsEmpty() bool {
	return b.Stats.Records == 0
}

// HasCharge returns true if anything is owed.
func (b *Bill) HasCharge() bool {
	return b.Total.IsPositive()
}
