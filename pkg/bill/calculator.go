package bill

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ccollicutt/telbill/internal/logging"
	"github.com/ccollicutt/telbill/pkg/parser"
	"github.com/ccollicutt/telbill/pkg/rating"
)

// Calculator rates call logs. It keeps no state between logs and is safe
// for concurrent use.
type Calculator struct {
	rater  *rating.Rater
	logger *zap.Logger
}

// Option configures calculator behavior.
type Option func(*Calculator)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a calculator using the default tariff.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		rater:  rating.NewRater(rating.DefaultTariff()),
		logger: logging.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Calculate returns the total cost of the calls in log.
// An empty log costs exactly zero. Parse failures are returned as
// *parser.LineError and no partial total is produced.
func (c *Calculator) Calculate(log string) (decimal.Decimal, error) {
	if log == "" {
		return decimal.Zero, nil
	}

	src := parser.NewReaderSource(strings.NewReader(log), "")
	defer src.Close()

	b, err := c.Run(context.Background(), src)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return b.Total, nil
}

// Run reads every record from src and produces the bill.
// All records are parsed before any is rated.
func (c *Calculator) Run(ctx context.Context, src parser.RecordSource) (*Bill, error) {
	b := &Bill{
		Total: decimal.Zero,
		Stats: Stats{StartTime: time.Now()},
	}

	records, err := parser.ReadAll(ctx, src)
	if err != nil {
		return nil, err
	}

	b.Stats.Records = len(records)
	b.FreeNumber, _ = rating.MostCalled(records)

	b.Calls = make([]RatedCall, 0, len(records))
	for _, rec := range records {
		call := RatedCall{Record: rec}

		if rec.PhoneNumber == b.FreeNumber {
			call.Free = true
			b.Stats.FreeCalls++
		} else {
			call.Charge = c.rater.Rate(rec)
			b.Total = b.Total.Add(call.Charge.Amount)
		}

		c.logger.Debug("rated call",
			zap.Int("line", rec.LineNum),
			zap.String("number", rec.PhoneNumber),
			zap.Duration("duration", rec.Duration()),
			zap.Bool("free", call.Free),
			zap.Stringer("amount", call.Charge.Amount),
		)

		b.Calls = append(b.Calls, call)
	}

	b.Numbers = summarize(b.Calls)
	b.Stats.EndTime = time.Now()

	c.logger.Info("bill calculated",
		zap.Int("records", b.Stats.Records),
		zap.Int("free_calls", b.Stats.FreeCalls),
		zap.String("free_number", b.FreeNumber),
		zap.String("total", b.Total.StringFixed(2)),
	)

	return b, nil
}

// summarize groups rated calls by phone number.
func summarize(calls []RatedCall) []NumberSummary {
	byNumber := make(map[string]*NumberSummary)
	for _, call := range calls {
		s, ok := byNumber[call.Record.PhoneNumber]
		if !ok {
			s = &NumberSummary{
				PhoneNumber: call.Record.PhoneNumber,
				Amount:      decimal.Zero,
				Free:        call.Free,
			}
			byNumber[call.Record.PhoneNumber] = s
		}
		s.Calls++
		s.Amount = s.Amount.Add(call.Charge.Amount)
	}

	out := make([]NumberSummary, 0, len(byNumber))
	for _, s := range byNumber {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return rating.CompareNumbers(out[i].PhoneNumber, out[j].PhoneNumber) < 0
	})
	return out
}
