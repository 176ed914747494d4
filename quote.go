package cpfolio

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/cpfolio/date"
	"golang.org/x/sync/errgroup"
)

// Quote is the market state of one symbol at a point in time. It is supplied
// by an external price source and treated as read-only input. The previous
// day's open and close ride along so the report can show the day change.
type Quote struct {
	Symbol    string
	Price     Money     // latest close
	At        time.Time // as-of instant reported by the source
	Open      Money     // today's open
	PrevOpen  Money
	PrevClose Money
}

// Change returns the day change: latest close minus previous close.
func (q Quote) Change() Money { return q.Price.Sub(q.PrevClose) }

// ChangePercent returns the day change as a percentage of the previous close.
func (q Quote) ChangePercent() Percent { return q.Change().PercentOf(q.PrevClose) }

// Bar is one day of trading history. Prices are plain floats: bars feed
// statistics (signals, risk), never money arithmetic.
type Bar struct {
	Day    date.Date
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSource delivers the latest quote for a symbol. Implementations fail
// with an error wrapping ErrPriceUnavailable when the symbol cannot be
// served; the report then marks the holding unavailable instead of aborting.
type PriceSource interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// HistorySource delivers up to days calendar days of daily bars, oldest
// first. Used by the signal and risk supplements; the core evaluation only
// needs PriceSource.
type HistorySource interface {
	History(ctx context.Context, symbol string, days int) ([]Bar, error)
}

// MarketSource is the full market-data dependency of a report run.
type MarketSource interface {
	PriceSource
	HistorySource
}

// FetchQuotes retrieves one quote per symbol, fanning out one goroutine per
// symbol. A failed symbol lands in the second map; it never aborts the other
// fetches.
func FetchQuotes(ctx context.Context, src PriceSource, symbols []string) (map[string]Quote, map[string]error) {
	var mu sync.Mutex
	quotes := make(map[string]Quote, len(symbols))
	failures := make(map[string]error)

	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range symbols {
		g.Go(func() error {
			q, err := src.Quote(ctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[symbol] = err
			} else {
				quotes[symbol] = q
			}
			return nil
		})
	}
	// Outcomes are reported per symbol; the group itself never fails.
	_ = g.Wait()
	return quotes, failures
}
