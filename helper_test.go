package cpfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/cpfolio/date"
)

// SGD is a helper for tests to create Singapore dollar money from const.
func SGD(v float64) Money { return M(v, "SGD") }

// dbs returns the reference holding used across the engine tests: 100 shares
// of DBS bought at 54.59 on 2025-10-28.
func dbs() Holding {
	return Holding{Symbol: "D05.SI", Name: "DBS", Shares: 100, Cost: dec("54.59"), BuyDate: date.New(2025, time.October, 28)}
}

// testConfig returns the default config loaded with a three-position portfolio.
func testConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Holdings = []Holding{
		dbs(),
		{Symbol: "C38U.SI", Name: "CapitaLand", Shares: 1900, Cost: dec("2.45"), BuyDate: date.New(2025, time.October, 28)},
		{Symbol: "ES3.SI", Name: "STI ETF", Shares: 1238, Cost: dec("4.63"), BuyDate: date.New(2025, time.October, 28)},
	}
	return cfg
}

// quoteOn builds a quote for symbol at price as of noon on day.
func quoteOn(symbol string, price float64, day date.Date) Quote {
	return Quote{
		Symbol: symbol,
		Price:  SGD(price),
		At:     time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC),
	}
}

// stubSource serves quotes from a fixed map, failing the symbols listed in
// errs and reporting any other symbol as unavailable.
type stubSource struct {
	quotes map[string]Quote
	errs   map[string]error
}

func (s stubSource) Quote(_ context.Context, symbol string) (Quote, error) {
	if err, ok := s.errs[symbol]; ok {
		return Quote{}, err
	}
	q, ok := s.quotes[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
	}
	return q, nil
}
