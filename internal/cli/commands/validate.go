package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/telbill/pkg/parser"
	"github.com/ccollicutt/telbill/pkg/rating"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <log-file>",
		Short: "Validate a call log",
		Long: `Validate a call log without rating it.

Checks every line for:
  - Three comma-separated fields
  - A phone number made of digits only
  - Timestamps in dd-mm-yyyy HH:mm:ss format
  - A start strictly before the end

Reports the number of calls, distinct numbers and the number whose
calls would be free. Use "-" to read from standard input.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, err := openLog(cmd, args[0])
	if err != nil {
		return err
	}
	defer source.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", source.Name())

	records, err := parser.ReadAll(ctx, source)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nCall log valid!\n")
	fmt.Fprintf(out, "  Calls:            %d\n", len(records))
	fmt.Fprintf(out, "  Distinct numbers: %d\n", len(rating.Counts(records)))

	if free, ok := rating.MostCalled(records); ok {
		fmt.Fprintf(out, "  Free number:      %s\n", free)
	}

	return nil
}
