package divtrack

import "sort"

// LotSize is the number of shares per traded lot on the Taiwan stock
// exchange. User-facing quantities are entered in lots; the ledger
// tracks everything in shares.
const LotSize = 1000

// PurchaseLot represents a single purchase of a security.
// Lots are immutable once created: the per-security history is append-only.
type PurchaseLot struct {
	Date     Date  // purchase date
	Quantity int64 // shares (lots x LotSize)
	AvgPrice Money // average price paid per share
}

// Cost is the total cost of the lot (quantity x average price).
func (l PurchaseLot) Cost() Money { return l.AvgPrice.Mul(l.Quantity) }

// Lots is the purchase history of a security, in insertion order.
type Lots []PurchaseLot

// EarliestDate returns the earliest purchase date across the lots.
// It returns false if there are no lots.
func (l Lots) EarliestDate() (Date, bool) {
	if len(l) == 0 {
		return Date{}, false
	}
	earliest := l[0].Date
	for _, lot := range l {
		if lot.Date.Before(earliest) {
			earliest = lot.Date
		}
	}
	return earliest, true
}

// SortedByDate returns a copy of the lots sorted ascending by purchase
// date. The sort is stable: same-day lots keep their insertion order.
func (l Lots) SortedByDate() Lots {
	sorted := make(Lots, len(l))
	copy(sorted, l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// TotalQuantity is the sum of shares across all lots.
func (l Lots) TotalQuantity() int64 {
	var total int64
	for _, lot := range l {
		total += lot.Quantity
	}
	return total
}

// TotalCost is the sum of lot costs, i.e. the cost basis.
func (l Lots) TotalCost() Money {
	var total Money
	for _, lot := range l {
		total = total.Add(lot.Cost())
	}
	return total
}
