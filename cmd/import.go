package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add purchase lots from a CSV file" }
func (*importCmd) Usage() string {
	return `dvt import -file <csv>

  Adds every purchase lot of the given CSV file to the holding history.
  Lots are added on top of the existing history; importing the same
  file twice duplicates them.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "file", "", "CSV file to import lots from")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

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
	before := ledger.Len()

	in, err := os.Open(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	if err := divtrack.ImportHistory(in, ledger, gateway); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving holding history: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %q: %d securities tracked (%d new)\n", c.input, ledger.Len(), ledger.Len()-before)
	return subcommands.ExitSuccess
}
