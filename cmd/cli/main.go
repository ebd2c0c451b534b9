// telbill - Telephone Bill Calculator
//
// telbill rates a log of telephone calls and prints the amount due.
// Calls to the most called number are free.
package main

import (
	"os"

	"github.com/ccollicutt/telbill/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
