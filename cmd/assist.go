package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack/agent"
	"github.com/yhlin/divtrack/renderer"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `dvt assist [question]

  Starts an interactive session with the AI assistant, grounded on the
  current reports. Requires Gemini API credentials in the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

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

	// Seed the assistant with every report so it sees what the user
	// sees.
	var reports strings.Builder
	reports.WriteString(renderer.HoldingMarkdown(ledger.HoldingRows()))
	reports.WriteString(renderer.EarningMarkdown(ledger.EarningRows()))
	if row, err := ledger.StatisticsRow(); err == nil {
		reports.WriteString(renderer.StatisticsMarkdown(row))
	}
	reports.WriteString(renderer.EventTreeMarkdown(ledger.EventTree()))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, reports.String())
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
