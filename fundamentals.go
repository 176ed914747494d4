package cpfolio

import (
	"fmt"
	"log"
	"math"
	"net/http"
)

// Benchmark holds a sector's reference valuation levels on the SGX.
type Benchmark struct {
	PE       float64 `toml:"pe"`
	PB       float64 `toml:"pb"`
	DivYield float64 `toml:"div_yield"` // percent
	ROE      float64 `toml:"roe"`       // percent
}

// FundamentalsConfig maps each symbol to its sector and each sector to its
// benchmark levels. A symbol without a sector entry is rated against the
// "etf" benchmark.
type FundamentalsConfig struct {
	Sectors    map[string]string    `toml:"sectors"`
	Benchmarks map[string]Benchmark `toml:"benchmarks"`
}

// Rating grades a valuation metric against its sector benchmark.
type Rating int

const (
	Unrated Rating = iota
	Undervalued
	FairValue
	Overvalued
)

func (r Rating) String() string {
	switch r {
	case Undervalued:
		return "Undervalued"
	case FairValue:
		return "Fair"
	case Overvalued:
		return "Overvalued"
	}
	return "Unrated"
}

// rateMultiple grades a price multiple (P/E, P/B): below 70% of the
// benchmark is cheap, beyond 130% is expensive.
func rateMultiple(metric, benchmark float64) Rating {
	if math.IsNaN(metric) || benchmark <= 0 {
		return Unrated
	}
	switch ratio := metric / benchmark; {
	case ratio <= 0.7:
		return Undervalued
	case ratio <= 1.3:
		return FairValue
	default:
		return Overvalued
	}
}

// rateYield grades a dividend yield, where higher is cheaper: 130% of the
// benchmark or more is cheap, under 80% is expensive.
func rateYield(metric, benchmark float64) Rating {
	if math.IsNaN(metric) || benchmark <= 0 {
		return Unrated
	}
	switch ratio := metric / benchmark; {
	case ratio >= 1.3:
		return Undervalued
	case ratio >= 0.8:
		return FairValue
	default:
		return Overvalued
	}
}

// Fundamentals is one symbol's valuation snapshot against its sector
// benchmark. Metrics the feed does not carry are NaN and render as dashes.
type Fundamentals struct {
	Symbol string
	Sector string

	PE        float64
	PB        float64
	ROE       float64 // percent
	DivYield  float64 // percent
	MarketCap float64

	Week52High float64
	Week52Low  float64
	Week52Pos  float64 // current price position inside the 52-week range, 0-100

	Benchmark Benchmark
	PERating  Rating
	PBRating  Rating
	DivRating Rating
	Overall   Rating
}

// FetchFundamentals retrieves the valuation snapshot per symbol from the
// quote-summary API. A failed symbol is simply absent from the result: the
// valuation section is context, not data the evaluation depends on.
func (c FundamentalsConfig) FetchFundamentals(client *http.Client, symbols []string) map[string]Fundamentals {
	return c.fetchFundamentals(client, chartBase, symbols)
}

func (c FundamentalsConfig) fetchFundamentals(client *http.Client, base string, symbols []string) map[string]Fundamentals {
	out := make(map[string]Fundamentals, len(symbols))
	for _, symbol := range symbols {
		f, err := c.fetchOne(client, base, symbol)
		if err != nil {
			log.Printf("warning, fundamentals fetch %s failed (ignored): %v", symbol, err)
			continue
		}
		out[symbol] = f
	}
	return out
}

// fetchOne probes the quote-summary modules with jsonpath rather than
// modeling the whole response: a handful of raw numbers is all the
// snapshot needs.
func (c FundamentalsConfig) fetchOne(client *http.Client, base, symbol string) (Fundamentals, error) {
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail%%2CdefaultKeyStatistics%%2CfinancialData", base, symbol)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Fundamentals{}, err
	}

	sector := c.Sectors[symbol]
	if sector == "" {
		sector = "etf"
	}
	bench := c.Benchmarks[sector]

	f := Fundamentals{
		Symbol:     symbol,
		Sector:     sector,
		PE:         optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.trailingPE.raw"),
		PB:         optFloat(jobj, "$.quoteSummary.result[0].defaultKeyStatistics.priceToBook.raw"),
		ROE:        optFloat(jobj, "$.quoteSummary.result[0].financialData.returnOnEquity.raw") * 100,
		DivYield:   optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.dividendYield.raw") * 100,
		MarketCap:  optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.marketCap.raw"),
		Week52High: optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.fiftyTwoWeekHigh.raw"),
		Week52Low:  optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.fiftyTwoWeekLow.raw"),
		Week52Pos:  math.NaN(),
		Benchmark:  bench,
	}
	if math.IsNaN(f.PE) {
		f.PE = optFloat(jobj, "$.quoteSummary.result[0].summaryDetail.forwardPE.raw")
	}

	current := optFloat(jobj, "$.quoteSummary.result[0].financialData.currentPrice.raw")
	if !math.IsNaN(current) && !math.IsNaN(f.Week52High) && !math.IsNaN(f.Week52Low) && f.Week52High != f.Week52Low {
		f.Week52Pos = (current - f.Week52Low) / (f.Week52High - f.Week52Low) * 100
	}

	f.PERating = rateMultiple(f.PE, bench.PE)
	f.PBRating = rateMultiple(f.PB, bench.PB)
	f.DivRating = rateYield(f.DivYield, bench.DivYield)
	f.Overall = overallRating(f, bench)
	return f, nil
}

// overallRating averages the P/E and P/B benchmark ratios, the two multiples
// that compare across the whole portfolio.
func overallRating(f Fundamentals, bench Benchmark) Rating {
	var sum float64
	var n int
	if !math.IsNaN(f.PE) && bench.PE > 0 {
		sum += f.PE / bench.PE
		n++
	}
	if !math.IsNaN(f.PB) && bench.PB > 0 {
		sum += f.PB / bench.PB
		n++
	}
	if n == 0 {
		return Unrated
	}
	switch avg := sum / float64(n); {
	case avg <= 0.7:
		return Undervalued
	case avg <= 1.3:
		return FairValue
	default:
		return Overvalued
	}
}

// optFloat probes one optional number: metrics the response does not carry
// come back as NaN, never as an error.
func optFloat(jobj any, path string) float64 {
	f, err := jsonFloat(jobj, path)
	if err != nil {
		return math.NaN()
	}
	return f
}
