package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack"
	"github.com/yhlin/divtrack/renderer"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display portfolio-wide statistics" }
func (*statsCmd) Usage() string {
	return `dvt stats

  Displays the portfolio totals: market value, earning, cash dividends,
  and the overall earning rate.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	row, err := ledger.StatisticsRow()
	if errors.Is(err, divtrack.ErrNoCostBasis) {
		fmt.Println("No purchases recorded yet, nothing to report.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.StatisticsMarkdown(row))
	return subcommands.ExitSuccess
}
