package divtrack

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownSecurity is returned by a gateway when a security id does
// not resolve to a listed security.
var ErrUnknownSecurity = errors.New("unknown security")

// ErrPriceUnavailable is returned by a gateway when no recent closing
// price exists for a security.
var ErrPriceUnavailable = errors.New("no recent price available")

// DividendEvent is one row of a security's dividend-distribution
// history as supplied by the market data gateway.
type DividendEvent struct {
	ExDate    Date            // ex-dividend trading date
	CashRate  decimal.Decimal // cash distribution per share
	StockRate decimal.Decimal // stock distribution per 1000 shares
}

// MarketData is the gateway contract the core consumes. The finmind
// subpackage implements it against the FinMind data API; tests
// substitute deterministic fakes.
//
// Calls are synchronous and blocking. Failures are not recovered
// locally; they propagate and abort the in-progress operation.
type MarketData interface {
	// LookupName resolves a security id to its display name.
	// It wraps ErrUnknownSecurity when the id is unknown.
	LookupName(securityID string) (string, error)

	// DividendHistory returns the dividend distributions for a
	// security starting from a date. Order is not guaranteed; the
	// core only range-filters by date.
	DividendHistory(securityID string, from Date) ([]DividendEvent, error)

	// LatestPrice returns the most recent close within a short
	// trailing window. It wraps ErrPriceUnavailable when no recent
	// price exists.
	LatestPrice(securityID string) (Money, error)
}
