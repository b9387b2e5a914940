// Package finmind implements the divtrack market-data gateway against
// the FinMind data API (https://finmindtrade.com), the de facto open
// data source for Taiwan-listed securities.
package finmind

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/yhlin/divtrack"
)

// TokenEnv is the environment variable holding the FinMind API token.
const TokenEnv = "FINMIND_TOKEN"

const defaultBaseURL = "https://api.finmindtrade.com/api/v4/data"

// priceWindowDays is the trailing window scanned for the latest close.
// Wide enough to cover weekends and market holidays.
const priceWindowDays = 5

// Client queries the FinMind v4 data API. It implements
// divtrack.MarketData.
//
// Name and latest-price lookups are memoized for the lifetime of the
// client: within a session they are treated as static. Dividend
// histories are fetched fresh on every call.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	memo    *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client. The default one caches
// responses on disk with daily expiry.
func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.http = c } }

// WithBaseURL substitutes the API endpoint, for tests.
func WithBaseURL(addr string) Option { return func(cl *Client) { cl.baseURL = addr } }

// New creates a FinMind client authenticated with the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    newDailyCachingClient(),
		memo:    cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ divtrack.MarketData = (*Client)(nil)

// envelope is the wrapper FinMind puts around every dataset response.
type envelope[T any] struct {
	Msg    string `json:"msg"`
	Status int    `json:"status"`
	Data   []T    `json:"data"`
}

// fetch queries one dataset, optionally scoped to a security id and a
// start date, and decodes the data rows.
func fetch[T any](c *Client, dataset, dataID string, from string) ([]T, error) {
	q := url.Values{}
	q.Set("dataset", dataset)
	q.Set("token", c.token)
	if dataID != "" {
		q.Set("data_id", dataID)
	}
	if from != "" {
		q.Set("start_date", from)
	}
	addr := c.baseURL + "?" + q.Encode()

	var content envelope[T]
	if err := jwget(c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", dataset, err)
	}
	if content.Status != 200 {
		return nil, fmt.Errorf("cannot fetch %s: finmind status %d: %s", dataset, content.Status, content.Msg)
	}
	return content.Data, nil
}

// stockInfo returns the full listed-security table, id to name,
// fetched at most once per client.
func (c *Client) stockInfo() (map[string]string, error) {
	const memoKey = "taiwan_stock_info"
	if cached, ok := c.memo.Get(memoKey); ok {
		return cached.(map[string]string), nil
	}

	type info struct {
		StockID   string `json:"stock_id"`
		StockName string `json:"stock_name"`
	}
	rows, err := fetch[info](c, "TaiwanStockInfo", "", "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.StockID] = row.StockName
	}
	c.memo.Set(memoKey, names, cache.NoExpiration)
	return names, nil
}

// LookupName resolves a security id to its listed short name.
func (c *Client) LookupName(securityID string) (string, error) {
	names, err := c.stockInfo()
	if err != nil {
		return "", err
	}
	name, ok := names[securityID]
	if !ok {
		return "", fmt.Errorf("%s: %w", securityID, divtrack.ErrUnknownSecurity)
	}
	return name, nil
}

// DividendHistory returns the dividend distributions of a security
// from the given date on. Rows without a parseable ex-dividend trading
// date (announced but not yet scheduled) are dropped: they can never
// fall inside an accrual window.
func (c *Client) DividendHistory(securityID string, from divtrack.Date) ([]divtrack.DividendEvent, error) {
	type dividend struct {
		CashExDividendTradingDate string          `json:"CashExDividendTradingDate"`
		CashEarningsDistribution  decimal.Decimal `json:"CashEarningsDistribution"`
		StockEarningsDistribution decimal.Decimal `json:"StockEarningsDistribution"`
	}
	rows, err := fetch[dividend](c, "TaiwanStockDividend", securityID, from.String())
	if err != nil {
		return nil, err
	}

	var history []divtrack.DividendEvent
	for _, row := range rows {
		exDate, err := divtrack.ParseDate(row.CashExDividendTradingDate)
		if err != nil {
			continue
		}
		history = append(history, divtrack.DividendEvent{
			ExDate:    exDate,
			CashRate:  row.CashEarningsDistribution,
			StockRate: row.StockEarningsDistribution,
		})
	}
	return history, nil
}

// LatestPrice returns the most recent close within the trailing price
// window, memoized per security for the lifetime of the client.
func (c *Client) LatestPrice(securityID string) (divtrack.Money, error) {
	memoKey := "price:" + securityID
	if cached, ok := c.memo.Get(memoKey); ok {
		return cached.(divtrack.Money), nil
	}

	type daily struct {
		Date  string          `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	from := divtrack.Today().Add(-priceWindowDays)
	rows, err := fetch[daily](c, "TaiwanStockPrice", securityID, from.String())
	if err != nil {
		return divtrack.Money{}, err
	}
	if len(rows) == 0 {
		return divtrack.Money{}, fmt.Errorf("%s: %w", securityID, divtrack.ErrPriceUnavailable)
	}

	price := divtrack.M(rows[len(rows)-1].Close)
	c.memo.Set(memoKey, price, cache.NoExpiration)
	return price, nil
}
