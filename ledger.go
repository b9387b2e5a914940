package divtrack

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the root aggregate: one SecurityRecord per distinct
// security id, created lazily on first lot insertion.
//
// The ledger is a purely in-memory structure; persistence happens only
// through the CSV history import/export.
type Ledger struct {
	records map[string]*SecurityRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]*SecurityRecord)}
}

// AddLot appends a purchase of lotQuantity lots of a security at
// avgPrice per share on the given date. The quantity is stored
// normalized to shares (lotQuantity x LotSize, truncated).
//
// If the security has not been seen before, its display name is looked
// up through the gateway and a record with a zeroed holding is
// created; a failed lookup aborts the add. Beyond that there is no
// validation: zero or negative quantities pass through as entered.
func (l *Ledger) AddLot(gateway MarketData, securityID string, on Date, lotQuantity decimal.Decimal, avgPrice Money) error {
	record, ok := l.records[securityID]
	if !ok {
		name, err := gateway.LookupName(securityID)
		if err != nil {
			return fmt.Errorf("cannot add lot for %s: %w", securityID, err)
		}
		record = &SecurityRecord{id: securityID, name: name}
		l.records[securityID] = record
	}
	record.lots = append(record.lots, PurchaseLot{
		Date:     on,
		Quantity: lotQuantity.Mul(decimal.NewFromInt(LotSize)).IntPart(),
		AvgPrice: avgPrice,
	})
	return nil
}

// Record returns the record for a security id, or nil if unseen.
func (l *Ledger) Record(securityID string) *SecurityRecord {
	return l.records[securityID]
}

// Len returns the number of distinct securities in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// AllRecords iterates over the security records in ascending
// security-id order.
func (l *Ledger) AllRecords() iter.Seq[*SecurityRecord] {
	return func(yield func(*SecurityRecord) bool) {
		ids := slices.Collect(maps.Keys(l.records))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(l.records[id]) {
				return
			}
		}
	}
}

// Reset drops every record, returning the ledger to its empty state.
func (l *Ledger) Reset() {
	l.records = make(map[string]*SecurityRecord)
}
