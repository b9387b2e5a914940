package finmind

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yhlin/divtrack"
)

// newTestClient points a Client at a fake FinMind API serving canned
// dataset responses, and counts requests per dataset.
func newTestClient(t *testing.T, responses map[string]string) (*Client, map[string]int) {
	t.Helper()
	calls := make(map[string]int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dataset := r.URL.Query().Get("dataset")
		calls[dataset]++
		body, ok := responses[dataset]
		if !ok {
			fmt.Fprint(w, `{"msg":"dataset not found","status":404,"data":[]}`)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return New("test-token", WithBaseURL(srv.URL), WithHTTPClient(srv.Client())), calls
}

func TestClient_LookupName(t *testing.T) {
	client, calls := newTestClient(t, map[string]string{
		"TaiwanStockInfo": `{"msg":"success","status":200,"data":[
			{"stock_id":"2330","stock_name":"TSMC","industry_category":"Semiconductor"},
			{"stock_id":"2412","stock_name":"Chunghwa Telecom","industry_category":"Telecom"}]}`,
	})

	name, err := client.LookupName("2330")
	if err != nil {
		t.Fatalf("LookupName() error: %v", err)
	}
	if name != "TSMC" {
		t.Errorf("LookupName(2330) = %q, want TSMC", name)
	}

	if _, err := client.LookupName("9999"); !errors.Is(err, divtrack.ErrUnknownSecurity) {
		t.Errorf("LookupName(9999) error = %v, want ErrUnknownSecurity", err)
	}

	// The info table is memoized: both lookups share one fetch.
	if calls["TaiwanStockInfo"] != 1 {
		t.Errorf("TaiwanStockInfo fetched %d times, want 1", calls["TaiwanStockInfo"])
	}
}

func TestClient_DividendHistory(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"TaiwanStockDividend": `{"msg":"success","status":200,"data":[
			{"CashExDividendTradingDate":"2020-06-01","CashEarningsDistribution":2.5,"StockEarningsDistribution":0},
			{"CashExDividendTradingDate":"","CashEarningsDistribution":3,"StockEarningsDistribution":0},
			{"CashExDividendTradingDate":"2021-06-01","CashEarningsDistribution":0,"StockEarningsDistribution":1}]}`,
	})

	history, err := client.DividendHistory("2330", divtrack.MustParseDate("2020-01-01"))
	if err != nil {
		t.Fatalf("DividendHistory() error: %v", err)
	}
	// The row without an ex-dividend trading date is dropped.
	if len(history) != 2 {
		t.Fatalf("got %d events, want 2", len(history))
	}
	if history[0].ExDate != divtrack.MustParseDate("2020-06-01") {
		t.Errorf("event 0 date = %v", history[0].ExDate)
	}
	if history[0].CashRate.String() != "2.5" {
		t.Errorf("event 0 cash rate = %s, want 2.5", history[0].CashRate)
	}
	if history[1].StockRate.String() != "1" {
		t.Errorf("event 1 stock rate = %s, want 1", history[1].StockRate)
	}
}

func TestClient_LatestPrice(t *testing.T) {
	client, calls := newTestClient(t, map[string]string{
		"TaiwanStockPrice": `{"msg":"success","status":200,"data":[
			{"date":"2024-01-02","close":590},
			{"date":"2024-01-03","close":600.5}]}`,
	})

	price, err := client.LatestPrice("2330")
	if err != nil {
		t.Fatalf("LatestPrice() error: %v", err)
	}
	if price.Decimal().String() != "600.5" {
		t.Errorf("LatestPrice() = %s, want 600.5", price.Decimal())
	}

	// Memoized: the second call is a cache hit.
	if _, err := client.LatestPrice("2330"); err != nil {
		t.Fatalf("second LatestPrice() error: %v", err)
	}
	if calls["TaiwanStockPrice"] != 1 {
		t.Errorf("TaiwanStockPrice fetched %d times, want 1", calls["TaiwanStockPrice"])
	}
}

func TestClient_LatestPriceUnavailable(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"TaiwanStockPrice": `{"msg":"success","status":200,"data":[]}`,
	})
	if _, err := client.LatestPrice("2330"); !errors.Is(err, divtrack.ErrPriceUnavailable) {
		t.Errorf("LatestPrice() error = %v, want ErrPriceUnavailable", err)
	}
}

func TestClient_EnvelopeError(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"TaiwanStockDividend": `{"msg":"token expired","status":402,"data":[]}`,
	})
	_, err := client.DividendHistory("2330", divtrack.MustParseDate("2020-01-01"))
	if err == nil {
		t.Fatal("DividendHistory() succeeded, want envelope error")
	}
}

func TestStockDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"公司代號":"2330","公司簡稱":"台積電","出表日期":"1130101"},
			{"公司代號":"1101","公司簡稱":"台泥","出表日期":"1130101"}]`)
	}))
	defer srv.Close()

	entries, err := stockDirectory(srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("stockDirectory() error: %v", err)
	}
	want := []DirectoryEntry{
		{SecurityID: "1101", Name: "台泥"},
		{SecurityID: "2330", Name: "台積電"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}

	if got := SearchDirectory(entries, "台積"); len(got) != 1 || got[0].SecurityID != "2330" {
		t.Errorf("SearchDirectory(台積) = %+v", got)
	}
	if got := SearchDirectory(entries, "11"); len(got) != 1 || got[0].SecurityID != "1101" {
		t.Errorf("SearchDirectory(11) = %+v", got)
	}
}
