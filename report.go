package cpfolio

import (
	"context"
	"fmt"

	"github.com/etnz/cpfolio/date"
)

// ReportEntry is one holding's slot in the report: either an evaluated
// record, or the error that made the holding unavailable this run.
type ReportEntry struct {
	Holding Holding
	Record  *PositionRecord // nil when Err is set
	Err     error
}

// Report is the output of one evaluation run: an entry per configured
// holding, in configuration order, plus aggregates over the evaluated
// entries. Unavailable holdings stay visible as markers but are excluded
// from every total.
type Report struct {
	AsOf     date.Date
	Currency string
	Entries  []ReportEntry

	TotalCostBasis   Money
	TotalMarketValue Money
	TotalPaperPnL    Money
	TotalFees        Money
	TotalOpportunity Money
	TotalNetPnL      Money
	TotalDividends   Money
}

// BuildReport fetches a quote per holding, evaluates each, and assembles the
// report. Per-holding failures never abort the run: the holding is kept as
// an unavailable marker and the rest of the report proceeds.
func BuildReport(ctx context.Context, cfg *Config, src PriceSource, asOf date.Date) (*Report, error) {
	if len(cfg.Holdings) == 0 {
		return nil, fmt.Errorf("report: %w: no holdings configured", ErrInvalidInput)
	}

	quotes, quoteErrs := FetchQuotes(ctx, src, cfg.Symbols())
	ev := NewEvaluator(cfg, asOf)

	r := &Report{
		AsOf:             asOf,
		Currency:         cfg.Currency,
		TotalCostBasis:   M(0, cfg.Currency),
		TotalMarketValue: M(0, cfg.Currency),
		TotalPaperPnL:    M(0, cfg.Currency),
		TotalFees:        M(0, cfg.Currency),
		TotalOpportunity: M(0, cfg.Currency),
		TotalNetPnL:      M(0, cfg.Currency),
		TotalDividends:   M(0, cfg.Currency),
	}

	for _, h := range cfg.Holdings {
		q, ok := quotes[h.Symbol]
		if !ok {
			err := quoteErrs[h.Symbol]
			if err == nil {
				err = fmt.Errorf("%s: %w", h.Symbol, ErrMissingQuote)
			}
			r.Entries = append(r.Entries, ReportEntry{Holding: h, Err: err})
			continue
		}
		rec, err := ev.Evaluate(h, q)
		if err != nil {
			r.Entries = append(r.Entries, ReportEntry{Holding: h, Err: err})
			continue
		}
		r.Entries = append(r.Entries, ReportEntry{Holding: h, Record: &rec})

		r.TotalCostBasis = r.TotalCostBasis.Add(rec.CostBasisTotal)
		r.TotalMarketValue = r.TotalMarketValue.Add(rec.MarketValue)
		r.TotalPaperPnL = r.TotalPaperPnL.Add(rec.PaperPnL)
		r.TotalFees = r.TotalFees.Add(rec.Fee.Total())
		r.TotalOpportunity = r.TotalOpportunity.Add(rec.OpportunityCost)
		r.TotalNetPnL = r.TotalNetPnL.Add(rec.NetPnL)
		r.TotalDividends = r.TotalDividends.Add(rec.Dividends)
	}
	return r, nil
}

// Evaluated returns how many holdings produced a record this run.
func (r *Report) Evaluated() int {
	n := 0
	for _, e := range r.Entries {
		if e.Record != nil {
			n++
		}
	}
	return n
}

// Unavailable returns how many holdings could not be evaluated.
func (r *Report) Unavailable() int { return len(r.Entries) - r.Evaluated() }

// PaperReturn is the aggregate paper P&L over the aggregate cost basis.
func (r *Report) PaperReturn() Percent { return r.TotalPaperPnL.PercentOf(r.TotalCostBasis) }

// NetReturn is the aggregate net P&L over the aggregate cost basis.
func (r *Report) NetReturn() Percent { return r.TotalNetPnL.PercentOf(r.TotalCostBasis) }

// NetWithDividends adds received dividends back into the aggregate net P&L.
func (r *Report) NetWithDividends() Money { return r.TotalNetPnL.Add(r.TotalDividends) }
