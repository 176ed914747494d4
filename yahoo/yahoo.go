// Package yahoo implements the market-data sources on the Yahoo Finance
// chart API, the only free feed carrying SGX symbols like "D05.SI".
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/date"
)

const defaultBase = "https://query1.finance.yahoo.com"

// Client queries the chart API. It implements cpfolio.MarketSource.
type Client struct {
	http *http.Client
	base string
}

// NewClient returns a chart-API client on the given HTTP client, typically
// cpfolio.DailyClient() so repeated runs in one day hit the disk cache.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{http: client, base: defaultBase}
}

// Quote returns the latest quote for a symbol, with the previous session
// riding along for the day change. The chart API must deliver at least two
// daily bars; anything less is reported as price unavailable.
func (c *Client) Quote(ctx context.Context, symbol string) (cpfolio.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.base, symbol)
	chart, err := c.query(ctx, addr, symbol)
	if err != nil {
		return cpfolio.Quote{}, err
	}

	bars, currency, at := flatten(chart)
	if len(bars) < 2 {
		return cpfolio.Quote{}, fmt.Errorf("%s: %w: need two daily bars, got %d", symbol, cpfolio.ErrPriceUnavailable, len(bars))
	}
	last, prev := bars[len(bars)-1], bars[len(bars)-2]
	return cpfolio.Quote{
		Symbol:    symbol,
		Price:     cpfolio.M(last.Close, currency),
		At:        at,
		Open:      cpfolio.M(last.Open, currency),
		PrevOpen:  cpfolio.M(prev.Open, currency),
		PrevClose: cpfolio.M(prev.Close, currency),
	}, nil
}

// History returns up to days calendar days of daily bars, oldest first.
func (c *Client) History(ctx context.Context, symbol string, days int) ([]cpfolio.Bar, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.base, symbol, start.Unix(), end.Unix())
	chart, err := c.query(ctx, addr, symbol)
	if err != nil {
		return nil, err
	}
	bars, _, _ := flatten(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w: no daily bars", symbol, cpfolio.ErrPriceUnavailable)
	}
	return bars, nil
}

// query runs one chart-API GET and surfaces transport, HTTP and API errors
// uniformly as price unavailable.
func (c *Client) query(ctx context.Context, addr, symbol string) (*chartResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", symbol, cpfolio.ErrPriceUnavailable, err)
	}
	// The chart API rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", symbol, cpfolio.ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: reading response: %v", symbol, cpfolio.ErrPriceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: chart API replied %s", symbol, cpfolio.ErrPriceUnavailable, resp.Status)
	}

	var chart chartResponse
	if err := json.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("%s: %w: decoding response: %v", symbol, cpfolio.ErrPriceUnavailable, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %w: %s (%s)", symbol, cpfolio.ErrPriceUnavailable,
			chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w: empty result", symbol, cpfolio.ErrPriceUnavailable)
	}
	return &chart, nil
}

// flatten converts the parallel chart arrays into bars, oldest first,
// dropping the sessions where the feed left holes.
func flatten(chart *chartResponse) (bars []cpfolio.Bar, currency string, at time.Time) {
	result := chart.Chart.Result[0]
	currency = result.Meta.Currency
	if currency == "" {
		currency = "SGD"
	}
	at = time.Unix(result.Meta.RegularMarketTime, 0).UTC()

	if len(result.Indicators.Quote) == 0 {
		return nil, currency, at
	}
	quote := result.Indicators.Quote[0]
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		bar := cpfolio.Bar{
			Day:   date.FromTime(time.Unix(ts, 0).UTC()),
			Close: quote.Close[i],
		}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, currency, at
}
