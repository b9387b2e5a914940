package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack/renderer"
)

type earningsCmd struct{}

func (*earningsCmd) Name() string     { return "earnings" }
func (*earningsCmd) Synopsis() string { return "display reconstructed earnings per security" }
func (*earningsCmd) Usage() string {
	return `dvt earnings

  Replays the dividend history of every security and displays the
  reconstructed holding, earning, and dividend figures.
`
}

func (c *earningsCmd) SetFlags(f *flag.FlagSet) {}

func (c *earningsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	gateway, err := newGateway()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := loadReconstructed(gateway)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.EarningMarkdown(ledger.EarningRows()))
	return subcommands.ExitSuccess
}
