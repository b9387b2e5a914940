package divtrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the history import/export
// format: a flat UTF-8 CSV file, one row per purchase lot, with the
// quantity persisted in shares (normalized).

var historyHeader = []string{"security_id", "security_name", "date", "quantity", "avg_price"}

// ExportHistory writes every purchase lot of every security to w in
// the history format, header first. The caller is expected to truncate
// any existing file: an export replaces the previous one wholesale.
func ExportHistory(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return fmt.Errorf("cannot write history header: %w", err)
	}
	for record := range l.AllRecords() {
		for _, lot := range record.Lots() {
			row := []string{
				record.ID(),
				record.Name(),
				lot.Date.String(),
				strconv.FormatInt(lot.Quantity, 10),
				lot.AvgPrice.Decimal().String(),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("cannot write history row for %s: %w", record.ID(), err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportHistory reads lots in the history format from r and replays
// them through AddLot, converting the persisted share quantity back to
// lot units. Rows are additive to whatever the ledger already holds;
// import never clears existing state.
//
// The first malformed row aborts the whole import with an error naming
// the line.
func ImportHistory(r io.Reader, l *Ledger, gateway MarketData) error {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("cannot read history header: %w", err)
	}
	if len(header) != len(historyHeader) {
		return fmt.Errorf("malformed history header: got %d columns, want %d", len(header), len(historyHeader))
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: cannot read history row: %w", line, err)
		}

		on, err := ParseDate(row[2])
		if err != nil {
			return fmt.Errorf("line %d: malformed date: %w", line, err)
		}
		shares, err := decimal.NewFromString(row[3])
		if err != nil {
			return fmt.Errorf("line %d: malformed quantity %q: %w", line, row[3], err)
		}
		price, err := decimal.NewFromString(row[4])
		if err != nil {
			return fmt.Errorf("line %d: malformed avg_price %q: %w", line, row[4], err)
		}

		// The file persists shares; AddLot expects lot units.
		lots := shares.Div(decimal.NewFromInt(LotSize))
		if err := l.AddLot(gateway, row[0], on, lots, M(price)); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}
