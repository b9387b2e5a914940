package divtrack

import "github.com/shopspring/decimal"

// Holding is the reconstructed present-day position for a security.
// It is recomputed wholesale on each recalculation, never patched
// incrementally.
type Holding struct {
	Quantity int64 // shares
	Price    Money // latest known price per share
}

// MarketValue is the current market value of the holding.
func (h Holding) MarketValue() Money { return h.Price.Mul(h.Quantity) }

// EarningEvent records one dividend distribution that fell inside a
// lot's accrual window during reconstruction. Every candidate
// distribution in range is recorded, paying or not.
type EarningEvent struct {
	ReferenceQuantity int64           // shares held when the distribution occurred
	CashRate          decimal.Decimal // cash distribution per share
	StockRate         decimal.Decimal // stock distribution per 1000 shares
	ExDate            Date            // ex-dividend trading date
}

// SecurityRecord holds everything the ledger knows about one security:
// the purchase-lot history and the state reconstructed from it.
//
// The holding, earning events and cash earning are always derived
// together from the lots; reconstruction resets all three before
// replaying so they can never be individually stale.
type SecurityRecord struct {
	id          string
	name        string
	lots        Lots
	holding     Holding
	events      []EarningEvent
	cashEarning Money
}

func (r *SecurityRecord) ID() string                   { return r.id }
func (r *SecurityRecord) Name() string                 { return r.name }
func (r *SecurityRecord) Lots() Lots                   { return r.lots }
func (r *SecurityRecord) Holding() Holding             { return r.holding }
func (r *SecurityRecord) EarningEvents() []EarningEvent { return r.events }

// CashEarning is the cumulative cash dividend accrued over all
// reconstructed distributions.
func (r *SecurityRecord) CashEarning() Money { return r.cashEarning }

// reset zeroes the reconstructed state ahead of a replay.
func (r *SecurityRecord) reset() {
	r.holding = Holding{}
	r.events = nil
	r.cashEarning = Money{}
}

// TotalBuyingQuantity is the sum of shares across all purchase lots.
func (r *SecurityRecord) TotalBuyingQuantity() int64 { return r.lots.TotalQuantity() }

// TotalBuyingPrice is the cost basis: the sum of quantity x price over
// all purchase lots.
func (r *SecurityRecord) TotalBuyingPrice() Money { return r.lots.TotalCost() }

// AvgBuyingPrice is the average price paid per share, weighted by lot
// quantity. It is zero when no shares were bought.
func (r *SecurityRecord) AvgBuyingPrice() Money {
	quantity := r.lots.TotalQuantity()
	if quantity == 0 {
		return Money{}
	}
	return r.lots.TotalCost().Div(quantity)
}

// TotalMarketValue is the current market value of the reconstructed
// holding.
func (r *SecurityRecord) TotalMarketValue() Money { return r.holding.MarketValue() }

// TotalEarning is the overall profit and loss for the security:
// cash dividends plus market value minus cost basis.
func (r *SecurityRecord) TotalEarning() Money {
	return r.cashEarning.Add(r.TotalMarketValue()).Sub(r.TotalBuyingPrice())
}

// StockDividendQuantity is the number of shares gained purely from
// stock dividends: the reconstructed quantity minus the bought one.
func (r *SecurityRecord) StockDividendQuantity() int64 {
	return r.holding.Quantity - r.TotalBuyingQuantity()
}
