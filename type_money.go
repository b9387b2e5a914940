package divtrack

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single currency every amount in the ledger is
// expressed in. Taiwan-listed equities trade in New Taiwan dollars.
const Currency = "TWD"

// Money represents a monetary value in the ledger currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the ledger's go-money currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, Currency).Currency()
}

// String returns the money value formatted with the currency symbol.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Fixed2 returns the bare money value rounded to two decimal places,
// the precision used by the tabular views.
func (m Money) Fixed2() string { return m.value.StringFixed(2) }

// Decimal returns the exact decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Mul returns the money value multiplied by a share quantity.
func (m Money) Mul(quantity int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(quantity))}
}

// Div returns the money value divided by a share quantity.
// The quantity must not be zero.
func (m Money) Div(quantity int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(quantity))}
}

func (m Money) MarshalJSON() ([]byte, error)     { return m.value.MarshalJSON() }
func (m *Money) UnmarshalJSON(data []byte) error { return m.value.UnmarshalJSON(data) }
