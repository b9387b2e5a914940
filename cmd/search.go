package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack/finmind"
)

// searchCmd implements the 'search' subcommand against the TWSE
// listed-company directory.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the TWSE directory for a security" }
func (*searchCmd) Usage() string {
	return `dvt search <query>

  Searches the TWSE listed-company directory by id or name and prints
  ready-to-use 'dvt add' commands for the results. Needs no API token.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	entries, err := finmind.StockDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching TWSE directory: %v\n", err)
		return subcommands.ExitFailure
	}

	matches := finmind.SearchDirectory(entries, query)
	if len(matches) == 0 {
		fmt.Printf("No results found for '%s'.\n", query)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(matches), query)
	for _, entry := range matches {
		fmt.Printf("%s  %s\n", entry.SecurityID, entry.Name)
		fmt.Printf("    $ dvt add -id %s -quantity 1 -price <twd>\n\n", entry.SecurityID)
	}
	return subcommands.ExitSuccess
}
