package divtrack

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedPrice(price Money) PriceFunc {
	return func() (Money, error) { return price, nil }
}

func TestReconstruct_StockDividendCompounding(t *testing.T) {
	// 1000 shares bought on 2020-01-01, a stock rate of 1.0 on
	// 2020-06-01 adds trunc(1.0 * 1000 * 0.1) = 100 shares.
	lots := Lots{{Date: MustParseDate("2020-01-01"), Quantity: 1000, AvgPrice: M(50)}}
	history := []DividendEvent{
		{ExDate: MustParseDate("2020-06-01"), StockRate: dec("1.0")},
	}

	rec, err := Reconstruct(lots, history, fixedPrice(M(60)), MustParseDate("2021-01-01"))
	if err != nil {
		t.Fatalf("Reconstruct() error: %v", err)
	}
	if rec.Holding.Quantity != 1100 {
		t.Errorf("holding quantity = %d, want 1100", rec.Holding.Quantity)
	}
	if len(rec.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.Events))
	}
	if rec.Events[0].ReferenceQuantity != 1000 {
		t.Errorf("reference quantity = %d, want 1000", rec.Events[0].ReferenceQuantity)
	}
	if !rec.CashEarning.IsZero() {
		t.Errorf("cash earning = %s, want zero", rec.CashEarning)
	}
}

func TestReconstruct_Windows(t *testing.T) {
	lots := Lots{
		{Date: MustParseDate("2020-01-10"), Quantity: 1000, AvgPrice: M(50)},
		{Date: MustParseDate("2020-07-10"), Quantity: 2000, AvgPrice: M(55)},
	}
	asOf := MustParseDate("2021-01-10")

	testCases := []struct {
		name         string
		history      []DividendEvent
		wantQuantity int64
		wantCash     int64
		wantEvents   int
	}{
		{
			name:         "no history",
			wantQuantity: 3000,
		},
		{
			name: "distribution on first purchase date is excluded",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-01-10"), CashRate: dec("2")},
			},
			wantQuantity: 3000,
		},
		{
			name: "distribution on second purchase date is excluded",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-07-10"), CashRate: dec("2")},
			},
			wantQuantity: 3000,
		},
		{
			name: "distribution on asOf date is excluded",
			history: []DividendEvent{
				{ExDate: MustParseDate("2021-01-10"), CashRate: dec("2")},
			},
			wantQuantity: 3000,
		},
		{
			name: "cash accrues on shares held before the next lot",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-06-01"), CashRate: dec("2.5")},
			},
			wantQuantity: 3000,
			wantCash:     2500, // 2.5 x 1000
			wantEvents:   1,
		},
		{
			name: "cash in the last window sees both lots",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-08-01"), CashRate: dec("2.5")},
			},
			wantQuantity: 3000,
			wantCash:     7500, // 2.5 x 3000
			wantEvents:   1,
		},
		{
			name: "stock dividend compounds into the next window",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-06-01"), StockRate: dec("1")}, // +100 shares
				{ExDate: MustParseDate("2020-08-01"), CashRate: dec("1")},  // on 3100 shares
			},
			wantQuantity: 3100,
			wantCash:     3100,
			wantEvents:   2,
		},
		{
			name: "truncation of fractional payouts",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-06-01"), CashRate: dec("0.0015"), StockRate: dec("0.0015")},
			},
			// cash: trunc(0.0015 x 1000) = 1; stock: trunc(0.0015 x 1000 x 0.1) = 0
			wantQuantity: 3000,
			wantCash:     1,
			wantEvents:   1,
		},
		{
			name: "zero-rate distribution in range is still recorded",
			history: []DividendEvent{
				{ExDate: MustParseDate("2020-06-01")},
			},
			wantQuantity: 3000,
			wantEvents:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Reconstruct(lots, tc.history, fixedPrice(M(60)), asOf)
			if err != nil {
				t.Fatalf("Reconstruct() error: %v", err)
			}
			if rec.Holding.Quantity != tc.wantQuantity {
				t.Errorf("holding quantity = %d, want %d", rec.Holding.Quantity, tc.wantQuantity)
			}
			if !rec.CashEarning.Equal(M(tc.wantCash)) {
				t.Errorf("cash earning = %s, want %d", rec.CashEarning.Decimal(), tc.wantCash)
			}
			if len(rec.Events) != tc.wantEvents {
				t.Errorf("got %d events, want %d", len(rec.Events), tc.wantEvents)
			}
		})
	}
}

func TestReconstruct_NoLots(t *testing.T) {
	rec, err := Reconstruct(nil, []DividendEvent{
		{ExDate: MustParseDate("2020-06-01"), CashRate: dec("2")},
	}, fixedPrice(M(60)), MustParseDate("2021-01-01"))
	if err != nil {
		t.Fatalf("Reconstruct() error: %v", err)
	}
	if !reflect.DeepEqual(rec, Reconstruction{}) {
		t.Errorf("got %+v, want zero reconstruction", rec)
	}
}

func TestReconstruct_UnsortedLots(t *testing.T) {
	// Lots are entered out of order; reconstruction sorts by date.
	lots := Lots{
		{Date: MustParseDate("2020-07-10"), Quantity: 2000, AvgPrice: M(55)},
		{Date: MustParseDate("2020-01-10"), Quantity: 1000, AvgPrice: M(50)},
	}
	history := []DividendEvent{
		{ExDate: MustParseDate("2020-06-01"), CashRate: dec("1")},
	}
	rec, err := Reconstruct(lots, history, fixedPrice(M(60)), MustParseDate("2021-01-01"))
	if err != nil {
		t.Fatalf("Reconstruct() error: %v", err)
	}
	// The June distribution falls in the first lot's window, on 1000 shares.
	if !rec.CashEarning.Equal(M(1000)) {
		t.Errorf("cash earning = %s, want 1000", rec.CashEarning.Decimal())
	}
}

func TestReconstruct_PriceLookupPerLot(t *testing.T) {
	lots := Lots{
		{Date: MustParseDate("2020-01-10"), Quantity: 1000, AvgPrice: M(50)},
		{Date: MustParseDate("2020-07-10"), Quantity: 2000, AvgPrice: M(55)},
		{Date: MustParseDate("2020-09-10"), Quantity: 1000, AvgPrice: M(58)},
	}
	calls := 0
	price := func() (Money, error) {
		calls++
		return M(60), nil
	}
	if _, err := Reconstruct(lots, nil, price, MustParseDate("2021-01-01")); err != nil {
		t.Fatalf("Reconstruct() error: %v", err)
	}
	if calls != len(lots) {
		t.Errorf("price lookups = %d, want one per lot (%d)", calls, len(lots))
	}
}

func TestReconstruct_PriceErrorPropagates(t *testing.T) {
	lots := Lots{{Date: MustParseDate("2020-01-10"), Quantity: 1000, AvgPrice: M(50)}}
	wantErr := errors.New("gateway down")
	_, err := Reconstruct(lots, nil, func() (Money, error) { return Money{}, wantErr }, Today())
	if !errors.Is(err, wantErr) {
		t.Errorf("Reconstruct() error = %v, want %v", err, wantErr)
	}
}

func TestRecalculate_Idempotence(t *testing.T) {
	gw := &fakeGateway{
		names: map[string]string{"2330": "TSMC"},
		dividends: map[string][]DividendEvent{
			"2330": {
				{ExDate: MustParseDate("2020-06-01"), CashRate: dec("2.5"), StockRate: dec("1")},
				{ExDate: MustParseDate("2021-06-01"), CashRate: dec("2.75")},
			},
		},
		prices: map[string]Money{"2330": M(600)},
	}
	ledger := NewLedger()
	if err := ledger.AddLot(gw, "2330", MustParseDate("2020-01-10"), dec("1"), M(300)); err != nil {
		t.Fatalf("AddLot() error: %v", err)
	}
	asOf := MustParseDate("2022-01-01")

	if err := ledger.Recalculate(gw, asOf); err != nil {
		t.Fatalf("first Recalculate() error: %v", err)
	}
	record := ledger.Record("2330")
	firstHolding := record.Holding()
	firstEvents := append([]EarningEvent(nil), record.EarningEvents()...)
	firstCash := record.CashEarning()

	if err := ledger.Recalculate(gw, asOf); err != nil {
		t.Fatalf("second Recalculate() error: %v", err)
	}
	if record.Holding() != firstHolding {
		t.Errorf("holding changed on rerun: %+v != %+v", record.Holding(), firstHolding)
	}
	if !reflect.DeepEqual(record.EarningEvents(), firstEvents) {
		t.Errorf("events changed on rerun")
	}
	if !record.CashEarning().Equal(firstCash) {
		t.Errorf("cash earning changed on rerun: %s != %s", record.CashEarning(), firstCash)
	}
}

func TestRecalculate_AbortsOnGatewayError(t *testing.T) {
	gw := &fakeGateway{
		names: map[string]string{"1101": "Taiwan Cement", "2330": "TSMC"},
		dividends: map[string][]DividendEvent{
			"1101": {{ExDate: MustParseDate("2020-06-01"), CashRate: dec("2")}},
		},
		prices: map[string]Money{"1101": M(40)}, // no price for 2330
	}
	ledger := NewLedger()
	if err := ledger.AddLot(gw, "1101", MustParseDate("2020-01-10"), dec("1"), M(35)); err != nil {
		t.Fatalf("AddLot() error: %v", err)
	}
	if err := ledger.AddLot(gw, "2330", MustParseDate("2020-01-10"), dec("1"), M(300)); err != nil {
		t.Fatalf("AddLot() error: %v", err)
	}

	err := ledger.Recalculate(gw, MustParseDate("2021-01-01"))
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Fatalf("Recalculate() error = %v, want ErrPriceUnavailable", err)
	}
	// 1101 sorts first and was fully reconstructed before the failure.
	if got := ledger.Record("1101").CashEarning(); !got.Equal(M(2000)) {
		t.Errorf("1101 cash earning = %s, want 2000", got.Decimal())
	}
	// 2330 was reset but never reconstructed.
	if got := ledger.Record("2330").Holding(); got != (Holding{}) {
		t.Errorf("2330 holding = %+v, want zero", got)
	}
}
