// Package cmd implements the dvt CLI to track dividends of
// Taiwan-listed securities.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/yhlin/divtrack"
	"github.com/yhlin/divtrack/finmind"
)

// Commands lists every subcommand of the application. A main package
// registers them all on its commander.
var Commands = []subcommands.Command{
	&addCmd{},
	&holdingCmd{},
	&earningsCmd{},
	&statsCmd{},
	&eventsCmd{},
	&exportCmd{},
	&importCmd{},
	&searchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables.

// HistoryFileEnv overrides the default holding history location; the
// -file flag takes precedence.
const HistoryFileEnv = "DIVTRACK_LEDGER_FILE"

var historyFile = flag.String("file", defaultHistoryFile(), "Path to the holding history file (CSV format)")

func defaultHistoryFile() string {
	if path := os.Getenv(HistoryFileEnv); path != "" {
		return path
	}
	return "holding_history.csv"
}

// newGateway creates the FinMind market-data gateway from the API
// token in the environment.
func newGateway() (divtrack.MarketData, error) {
	token := os.Getenv(finmind.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("%s environment variable is not set, get a token at https://finmindtrade.com", finmind.TokenEnv)
	}
	return finmind.New(token), nil
}

// loadLedger reads the holding history file into a fresh ledger. A
// missing file is an empty ledger, so the first 'add' just works.
func loadLedger(gateway divtrack.MarketData) (*divtrack.Ledger, error) {
	ledger := divtrack.NewLedger()

	f, err := os.Open(*historyFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("holding history %q does not exist, starting empty", *historyFile)
		return ledger, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := divtrack.ImportHistory(f, ledger, gateway); err != nil {
		return nil, fmt.Errorf("cannot load holding history %q: %w", *historyFile, err)
	}
	return ledger, nil
}

// saveLedger writes the ledger back to the holding history file.
func saveLedger(ledger *divtrack.Ledger) error {
	f, err := os.Create(*historyFile)
	if err != nil {
		return err
	}
	if err := divtrack.ExportHistory(f, ledger); err != nil {
		f.Close()
		return fmt.Errorf("cannot write holding history %q: %w", *historyFile, err)
	}
	return f.Close()
}

// loadReconstructed loads the ledger and replays dividend histories and
// prices from the gateway, the state every report renders from.
func loadReconstructed(gateway divtrack.MarketData) (*divtrack.Ledger, error) {
	ledger, err := loadLedger(gateway)
	if err != nil {
		return nil, err
	}
	if err := ledger.Recalculate(gateway, divtrack.Today()); err != nil {
		return nil, fmt.Errorf("cannot reconstruct earnings: %w", err)
	}
	return ledger, nil
}
