package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack/renderer"
)

type eventsCmd struct{}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "display the dividend events behind the earnings" }
func (*eventsCmd) Usage() string {
	return `dvt events

  Displays every dividend event that fell inside an accrual window,
  grouped per security.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {}

func (c *eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.EventTreeMarkdown(ledger.EventTree()))
	return subcommands.ExitSuccess
}
