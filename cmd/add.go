package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/yhlin/divtrack"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	id       string
	date     string
	quantity string
	price    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a purchase lot of a security" }
func (*addCmd) Usage() string {
	return `dvt add -id <security> [-date <date>] -quantity <lots> -price <twd>

  Records a purchase of a Taiwan-listed security in the holding
  history. The quantity is in lots of 1000 shares and the price is the
  average per-share purchase price in TWD.

Usage Examples:
# 2000 shares of Taiwan Cement at 42.5 TWD on 2020-01-15.
$ dvt add -id 1101 -date 2020-01-15 -quantity 2 -price 42.5

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Security id, e.g. 2330")
	f.StringVar(&c.date, "date", divtrack.Today().String(), "Purchase date")
	f.StringVar(&c.quantity, "quantity", "", "Purchased quantity, in lots of 1000 shares")
	f.StringVar(&c.price, "price", "", "Average per-share purchase price in TWD")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.quantity == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -id, -quantity and -price are required.")
		return subcommands.ExitUsageError
	}

	on, err := divtrack.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
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

	if err := ledger.AddLot(gateway, c.id, on, quantity, divtrack.M(price)); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding lot: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving holding history: %v\n", err)
		return subcommands.ExitFailure
	}

	record := ledger.Record(c.id)
	fmt.Printf("Recorded %s lot(s) of %s (%s) at %s on %s\n", quantity, c.id, record.Name(), price, on)
	return subcommands.ExitSuccess
}
