package divtrack

import "fmt"

// fakeGateway is a deterministic in-memory MarketData for tests.
type fakeGateway struct {
	names     map[string]string
	dividends map[string][]DividendEvent
	prices    map[string]Money

	historyErr error // returned by DividendHistory when set
	priceErr   error // returned by LatestPrice when set

	priceCalls int
}

func (g *fakeGateway) LookupName(securityID string) (string, error) {
	name, ok := g.names[securityID]
	if !ok {
		return "", fmt.Errorf("%s: %w", securityID, ErrUnknownSecurity)
	}
	return name, nil
}

func (g *fakeGateway) DividendHistory(securityID string, from Date) ([]DividendEvent, error) {
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	var history []DividendEvent
	for _, div := range g.dividends[securityID] {
		if div.ExDate.Before(from) {
			continue
		}
		history = append(history, div)
	}
	return history, nil
}

func (g *fakeGateway) LatestPrice(securityID string) (Money, error) {
	g.priceCalls++
	if g.priceErr != nil {
		return Money{}, g.priceErr
	}
	price, ok := g.prices[securityID]
	if !ok {
		return Money{}, fmt.Errorf("%s: %w", securityID, ErrPriceUnavailable)
	}
	return price, nil
}
