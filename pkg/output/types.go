// Package output provides formatting and output generation for bills.
package output

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ccollicutt/telbill/pkg/bill"
	"github.com/ccollicutt/telbill/pkg/parser"
)

// Report is the complete bill output.
type Report struct {
	// Summary provides the total and aggregate counts.
	Summary Summary

	// Numbers lists per-number subtotals.
	Numbers []NumberLine

	// Calls lists every call in log order.
	Calls []CallLine

	// Metadata provides context about the calculation.
	Metadata Metadata
}

// Summary provides aggregate figures.
type Summary struct {
	// Total is the amount due.
	Total decimal.Decimal

	// FreeNumber is the most called number, billed at zero.
	FreeNumber string

	// Records is the number of calls in the log.
	Records int

	// BilledCalls is the number of calls that were rated.
	BilledCalls int

	// FreeCalls is the number of calls to the free number.
	FreeCalls int
}

// NumberLine is the subtotal for one phone number.
type NumberLine struct {
	PhoneNumber string
	Calls       int
	Amount      decimal.Decimal
	Free        bool
}

// CallLine is a single rated call.
type CallLine struct {
	LineNum      int
	PhoneNumber  string
	Start        time.Time
	End          time.Time
	Duration     time.Duration
	DayMinutes   int
	NightMinutes int
	LongMinutes  int
	Amount       decimal.Decimal
	Free         bool
}

// Metadata provides context about the calculation run.
type Metadata struct {
	// Source is the log that was rated (file path or "<stdin>").
	Source string

	// CalculatedAt is when the calculation completed.
	CalculatedAt time.Time

	// Duration is how long the calculation took.
	Duration time.Duration
}

// NewReport creates a Report from a bill.
func NewReport(b *bill.Bill, source string) *Report {
	report := &Report{
		Summary: Summary{
			Total:       b.Total,
			FreeNumber:  b.FreeNumber,
			Records:     b.Stats.Records,
			BilledCalls: b.Stats.Records - b.Stats.FreeCalls,
			FreeCalls:   b.Stats.FreeCalls,
		},
		Numbers: make([]NumberLine, 0, len(b.Numbers)),
		Calls:   make([]CallLine, 0, len(b.Calls)),
		Metadata: Metadata{
			Source:       source,
			CalculatedAt: b.Stats.EndTime,
			Duration:     b.Stats.EndTime.Sub(b.Stats.StartTime),
		},
	}

	for _, n := range b.Numbers {
		report.Numbers = append(report.Numbers, NumberLine{
			PhoneNumber: n.PhoneNumber,
			Calls:       n.Calls,
			Amount:      n.Amount,
			Free:        n.Free,
		})
	}

	for _, call := range b.Calls {
		report.Calls = append(report.Calls, CallLine{
			LineNum:      call.Record.LineNum,
			PhoneNumber:  call.Record.PhoneNumber,
			Start:        call.Record.Start,
			End:          call.Record.End,
			Duration:     call.Record.Duration(),
			DayMinutes:   call.Charge.DayMinutes,
			NightMinutes: call.Charge.NightMinutes,
			LongMinutes:  call.Charge.LongMinutes,
			Amount:       call.Charge.Amount,
			Free:         call.Free,
		})
	}

	return report
}

// HasCharge returns true if anything is owed.
func (r *Report) HasCharge() bool {
	return r.Summary.Total.IsPositive()
}

// formatMoney renders an amount with two decimals.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatTimestamp renders a time in the call log format.
func formatTimestamp(t time.Time) string {
	return t.Format(parser.TimestampLayout)
}
