package divtrack

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// stockDividendScale converts a stock-distribution rate into shares
// gained per share held. Stock rates are quoted per 1000 shares while
// the ledger tracks 1000-share lots, which nets out to this constant.
var stockDividendScale = decimal.RequireFromString("0.1")

// PriceFunc returns the latest known price per share for the security
// being reconstructed.
type PriceFunc func() (Money, error)

// Reconstruction is the result of replaying a security's dividend
// history against its lot timeline.
type Reconstruction struct {
	Holding     Holding
	Events      []EarningEvent
	CashEarning Money
}

// Reconstruct replays the dividend-distribution history against the
// purchase lots and returns the present-day holding, the earning
// events, and the cumulative cash earning. It is a pure function of
// its inputs (latestPrice is expected to be idempotent within a run).
//
// Lots are walked in ascending date order, each one extending the
// running share count. A lot's accrual window spans from its purchase
// date to the next lot's purchase date (the last lot runs to asOf);
// only distributions strictly inside the window apply, so a
// distribution dated exactly on a purchase date is excluded.
//
// For each in-window distribution, against the shares held before it:
//   - a positive cash rate accrues trunc(rate x shares) cash;
//   - a positive stock rate adds trunc(rate x shares x 0.1) shares,
//     compounding into later windows.
//
// An EarningEvent is recorded for every in-window distribution,
// whether or not either rate was positive.
//
// The holding price is refreshed via latestPrice after every lot's
// window. The call is idempotent and cheap (lookups are memoized), so
// only the last one matters; the per-lot refresh mirrors how the
// holding is assembled incrementally.
func Reconstruct(lots Lots, history []DividendEvent, latestPrice PriceFunc, asOf Date) (Reconstruction, error) {
	var rec Reconstruction
	if len(lots) == 0 {
		return rec, nil
	}

	sorted := lots.SortedByDate()
	for i, lot := range sorted {
		rec.Holding.Quantity += lot.Quantity

		windowStart := lot.Date
		windowEnd := asOf
		if i < len(sorted)-1 {
			windowEnd = sorted[i+1].Date
		}

		for _, div := range history {
			if !div.ExDate.After(windowStart) || !div.ExDate.Before(windowEnd) {
				continue
			}
			before := rec.Holding.Quantity
			shares := decimal.NewFromInt(before)
			if div.CashRate.IsPositive() {
				rec.CashEarning = rec.CashEarning.Add(M(div.CashRate.Mul(shares).IntPart()))
			}
			if div.StockRate.IsPositive() {
				rec.Holding.Quantity += div.StockRate.Mul(shares).Mul(stockDividendScale).IntPart()
			}
			rec.Events = append(rec.Events, EarningEvent{
				ReferenceQuantity: before,
				CashRate:          div.CashRate,
				StockRate:         div.StockRate,
				ExDate:            div.ExDate,
			})
		}

		price, err := latestPrice()
		if err != nil {
			return Reconstruction{}, err
		}
		rec.Holding.Price = price
	}
	return rec, nil
}

// Recalculate rebuilds the reconstructed state of every record from
// its purchase lots and the gateway's dividend history, as of the
// given date.
//
// All records are reset first, then processed in ascending
// security-id order. Records without lots are skipped (they stay
// zeroed). The pass is not atomic: the first gateway failure aborts
// it, leaving records processed earlier reconstructed and the rest
// reset.
func (l *Ledger) Recalculate(gateway MarketData, asOf Date) error {
	for record := range l.AllRecords() {
		record.reset()
	}
	for record := range l.AllRecords() {
		earliest, ok := record.lots.EarliestDate()
		if !ok {
			continue
		}
		history, err := gateway.DividendHistory(record.id, earliest)
		if err != nil {
			return fmt.Errorf("cannot fetch dividend history for %s: %w", record.id, err)
		}
		rec, err := Reconstruct(record.lots, history, func() (Money, error) {
			return gateway.LatestPrice(record.id)
		}, asOf)
		if err != nil {
			return fmt.Errorf("cannot reconstruct earnings for %s: %w", record.id, err)
		}
		record.holding = rec.Holding
		record.events = rec.Events
		record.cashEarning = rec.CashEarning
		log.Printf("%s %s: %d shares, cash earning %s, %d dividend events",
			record.id, record.name, record.holding.Quantity, record.cashEarning, len(record.events))
	}
	return nil
}
