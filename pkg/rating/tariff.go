// Package rating prices individual calls and resolves the free number.
package rating

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff holds per-minute prices and the day window.
type Tariff struct {
	// DayRate is charged for minutes that begin inside the day window.
	DayRate decimal.Decimal

	// NightRate is charged for minutes that begin outside the day window.
	NightRate decimal.Decimal

	// LongCallRate is the flat rate for every minute after IncludedMinutes.
	LongCallRate decimal.Decimal

	// DayStart and DayEnd bound the day window [DayStart, DayEnd) as
	// offsets from midnight.
	DayStart time.Duration
	DayEnd   time.Duration

	// IncludedMinutes is how many minutes are billed at the time-of-day rate.
	IncludedMinutes int
}

// DefaultTariff returns the tariff every call log is billed with.
func DefaultTariff() Tariff {
	return Tariff{
		DayRate:         decimal.NewFromInt(1),
		NightRate:       decimal.RequireFromString("0.5"),
		LongCallRate:    decimal.RequireFromString("0.2"),
		DayStart:        8 * time.Hour,
		DayEnd:          16 * time.Hour,
		IncludedMinutes: 5,
	}
}

// InDayWindow reports whether the clock time of ts falls in [DayStart, DayEnd).
// The date part of ts is ignored.
func (t Tariff) InDayWindow(ts time.Time) bool {
	clock := time.Duration(ts.Hour())*time.Hour +
		time.Duration(ts.Minute())*time.Minute +
		time.Duration(ts.Second())*time.Second
	return clock >= t.DayStart && clock < t.DayEnd
}

// minuteRate returns the time-of-day rate for a minute starting at ts.
func (t Tariff) minuteRate(ts time.Time) (decimal.Decimal, bool) {
	if t.InDayWindow(ts) {
		return t.DayRate, true
	}
	return t.NightRate, false
}
