package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintln(w, formatMoney(report.Summary.Total))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Telephone Bill ===")
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Log: %s\n", report.Metadata.Source)
	}
	fmt.Fprintln(w)

	if len(report.Numbers) == 0 {
		fmt.Fprintln(w, "No calls")
		fmt.Fprintln(w)
	}

	for _, n := range report.Numbers {
		f.formatNumber(&n, w)
	}

	if f.opts.Verbose && len(report.Calls) > 0 {
		fmt.Fprintln(w, "Calls:")
		for _, call := range report.Calls {
			f.formatCall(&call, w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Total: %s (%d calls, %d billed, %d free)\n",
		formatMoney(report.Summary.Total),
		report.Summary.Records,
		report.Summary.BilledCalls,
		report.Summary.FreeCalls)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatNumber(n *NumberLine, w io.Writer) {
	if n.Free {
		fmt.Fprintf(w, "%-20s %4d call(s)  free (most called)\n", n.PhoneNumber, n.Calls)
		return
	}
	fmt.Fprintf(w, "%-20s %4d call(s)  %10s\n", n.PhoneNumber, n.Calls, formatMoney(n.Amount))
}

func (f *TextFormatter) formatCall(call *CallLine, w io.Writer) {
	if call.Free {
		fmt.Fprintf(w, "  line %d: %s %s - %s (%s) free\n",
			call.LineNum,
			call.PhoneNumber,
			formatTimestamp(call.Start),
			formatTimestamp(call.End),
			call.Duration)
		return
	}

	fmt.Fprintf(w, "  line %d: %s %s - %s (%s) day=%d night=%d long=%d %s\n",
		call.LineNum,
		call.PhoneNumber,
		formatTimestamp(call.Start),
		formatTimestamp(call.End),
		call.Duration,
		call.DayMinutes,
		call.NightMinutes,
		call.LongMinutes,
		formatMoney(call.Amount))
}
