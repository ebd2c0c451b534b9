package rating

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ccollicutt/telbill/pkg/parser"
)

var secondsPerMinute = decimal.NewFromInt(60)

// Charge is the price of one call with its minute breakdown.
type Charge struct {
	// DayMinutes and NightMinutes count time-of-day minutes by rate.
	DayMinutes   int
	NightMinutes int

	// LongMinutes counts minutes billed at the long-call rate.
	LongMinutes int

	// Amount is the total price of the call.
	Amount decimal.Decimal
}

// Rater prices calls under a tariff. It holds no per-call state and is safe
// for concurrent use.
type Rater struct {
	tariff Tariff
}

// NewRater creates a Rater for the given tariff.
func NewRater(tariff Tariff) *Rater {
	return &Rater{tariff: tariff}
}

// Rate prices a single call.
//
// The first minute is rated by the start clock time. Each of the following
// included minutes is charged in full when the call is still running one
// second into it, at the rate in effect at that instant. Minutes past the
// included ones are charged at the long-call rate, partial minutes rounded up.
func (r *Rater) Rate(rec parser.CallRecord) Charge {
	var c Charge

	rate, day := r.tariff.minuteRate(rec.Start)
	c.add(rate, day)

	for i := 1; i < r.tariff.IncludedMinutes; i++ {
		minuteStart := rec.Start.Add(time.Duration(i)*time.Minute + time.Second)
		if minuteStart.After(rec.End) {
			break
		}
		rate, day := r.tariff.minuteRate(minuteStart)
		c.add(rate, day)
	}

	included := time.Duration(r.tariff.IncludedMinutes) * time.Minute
	if duration := rec.Duration(); duration > included {
		seconds := decimal.NewFromInt(int64(duration / time.Second))
		minutes := seconds.Div(secondsPerMinute).Ceil()
		extra := minutes.Sub(decimal.NewFromInt(int64(r.tariff.IncludedMinutes)))

		c.LongMinutes = int(extra.IntPart())
		c.Amount = c.Amount.Add(r.tariff.LongCallRate.Mul(extra))
	}

	return c
}

func (c *Charge) add(rate decimal.Decimal, day bool) {
	if day {
		c.DayMinutes++
	} else {
		c.NightMinutes++
	}
	c.Amount = c.Amount.Add(rate)
}
