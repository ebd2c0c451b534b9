// Package cli provides the command-line interface for telbill.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/telbill/internal/cli/commands"
	"github.com/ccollicutt/telbill/pkg/parser"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitRejected = 1 // the call log contained an invalid line
	ExitError    = 2 // configuration or runtime error
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if parser.IsInputError(err) {
		return ExitRejected
	}
	return ExitError
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "telbill",
		Short: "Calculate telephone bills from call logs",
		Long: `telbill calculates the cost of a telephone call log.

Pricing:
  - 1.00 per minute between 08:00:00 and 16:00:00, 0.50 otherwise
  - Minutes after the fifth cost 0.20 each
  - Calls to the most called number are free`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCalculateCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
