package divtrack

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoCostBasis is returned by StatisticsRow when the portfolio-wide
// buying price is zero, leaving the earning rate undefined.
var ErrNoCostBasis = errors.New("no cost basis: total buying price is zero")

// HoldingRow is one purchase lot, flattened for the holding-history view.
type HoldingRow struct {
	SecurityID   string
	SecurityName string
	Date         Date
	Quantity     int64 // shares
	AvgPrice     Money
}

// EarningRow is the per-security earning summary.
type EarningRow struct {
	SecurityID    string
	SecurityName  string
	Quantity      int64 // reconstructed shares held
	CurrentPrice  Money
	TotalEarning  Money
	CashEarning   Money
	StockDividend int64 // shares gained purely from stock dividends
}

// StatisticsRow aggregates the whole portfolio.
type StatisticsRow struct {
	TotalValue        Money           // sum of current market values
	TotalEarning      Money           // sum of total earnings
	TotalCashDividend Money           // sum of cumulative cash earnings
	EarningRate       decimal.Decimal // total earning / total buying price, in percent
}

// EventNode is the dividend-event drill-down for one security: a label
// and one description line per earning event.
type EventNode struct {
	Label  string
	Events []string
}

// HoldingRows projects every purchase lot into a flat row, securities
// in ascending id order, lots in insertion order. The row count always
// equals the number of lots added.
func (l *Ledger) HoldingRows() []HoldingRow {
	var rows []HoldingRow
	for record := range l.AllRecords() {
		for _, lot := range record.lots {
			rows = append(rows, HoldingRow{
				SecurityID:   record.id,
				SecurityName: record.name,
				Date:         lot.Date,
				Quantity:     lot.Quantity,
				AvgPrice:     lot.AvgPrice,
			})
		}
	}
	return rows
}

// EarningRows projects the reconstructed state of every security into
// the earning-summary view. Figures are meaningful only after a
// recalculation; before one, holdings are zero.
func (l *Ledger) EarningRows() []EarningRow {
	var rows []EarningRow
	for record := range l.AllRecords() {
		rows = append(rows, EarningRow{
			SecurityID:    record.id,
			SecurityName:  record.name,
			Quantity:      record.holding.Quantity,
			CurrentPrice:  record.holding.Price,
			TotalEarning:  record.TotalEarning(),
			CashEarning:   record.cashEarning,
			StockDividend: record.StockDividendQuantity(),
		})
	}
	return rows
}

// StatisticsRow aggregates market value, earning, and cash dividends
// across all securities. The earning rate is total earning over total
// buying price, in percent rounded to two decimals; a zero cost basis
// returns ErrNoCostBasis.
func (l *Ledger) StatisticsRow() (StatisticsRow, error) {
	var row StatisticsRow
	var totalBuying Money
	for record := range l.AllRecords() {
		row.TotalValue = row.TotalValue.Add(record.TotalMarketValue())
		row.TotalEarning = row.TotalEarning.Add(record.TotalEarning())
		row.TotalCashDividend = row.TotalCashDividend.Add(record.cashEarning)
		totalBuying = totalBuying.Add(record.TotalBuyingPrice())
	}
	if totalBuying.IsZero() {
		return StatisticsRow{}, ErrNoCostBasis
	}
	row.EarningRate = row.TotalEarning.Decimal().
		Div(totalBuying.Decimal()).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return row, nil
}

// EventTree builds the dividend-event drill-down: one node per
// security with a description line per reconstructed earning event.
func (l *Ledger) EventTree() []EventNode {
	var tree []EventNode
	for record := range l.AllRecords() {
		node := EventNode{Label: fmt.Sprintf("%s, %s", record.id, record.name)}
		for _, event := range record.events {
			node.Events = append(node.Events, fmt.Sprintf(
				"%s reference %d shares, stock %s, cash %s",
				event.ExDate, event.ReferenceQuantity, event.StockRate, event.CashRate))
		}
		tree = append(tree, node)
	}
	return tree
}
