package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the holding history as CSV to stdout" }
func (*exportCmd) Usage() string {
	return `dvt export

  Writes the holding history to stdout in the CSV interchange format.
  See 'dvt topic import-export' for the format.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	gateway, err := newGateway()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := loadLedger(gateway)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holding history: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := divtrack.ExportHistory(os.Stdout, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting holding history: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
