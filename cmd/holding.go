package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack/renderer"
)

type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display every recorded purchase lot" }
func (*holdingCmd) Usage() string {
	return `dvt holding

  Displays the purchase history, one row per recorded lot.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.HoldingMarkdown(ledger.HoldingRows()))
	return subcommands.ExitSuccess
}
