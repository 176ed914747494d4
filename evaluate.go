package cpfolio

import (
	"fmt"

	"github.com/etnz/cpfolio/date"
)

// PositionRecord is the full evaluation of one holding at one price, computed
// fresh per run. The fee estimate prices a hypothetical sale of the whole
// position today; dividends received are carried alongside net P&L, never
// folded into it, so sale economics stay comparable across holdings.
type PositionRecord struct {
	Holding Holding
	Quote   Quote

	CostBasisTotal  Money
	MarketValue     Money
	PaperPnL        Money
	Fee             FeeBreakdown
	DaysHeld        int
	OpportunityCost Money
	Breakeven       Money // per share
	NetPnL          Money
	Dividends       Money
	TargetPrice     Money // per share
	Suggestion      Suggestion
}

// PaperReturn is the paper P&L as a percentage of cost basis.
func (r PositionRecord) PaperReturn() Percent { return r.PaperPnL.PercentOf(r.CostBasisTotal) }

// NetReturn is the net P&L as a percentage of cost basis.
func (r PositionRecord) NetReturn() Percent { return r.NetPnL.PercentOf(r.CostBasisTotal) }

// TargetGap is how far the current price sits below the take-profit target.
func (r PositionRecord) TargetGap() Percent {
	return r.TargetPrice.Sub(r.Quote.Price).PercentOf(r.Quote.Price)
}

// NetWithDividends adds received dividends back for the holder's-eye view.
func (r PositionRecord) NetWithDividends() Money { return r.NetPnL.Add(r.Dividends) }

// Evaluator derives PositionRecords from holdings and quotes. All constants
// come from configuration; AsOf anchors the opportunity-cost accrual.
type Evaluator struct {
	Currency   string
	Fees       FeeSchedule
	CPF        CPFSchedule
	Thresholds Thresholds
	Dividends  []Dividend
	AsOf       date.Date
}

// NewEvaluator captures the engine constants from cfg, evaluating as of the
// given date.
func NewEvaluator(cfg *Config, asOf date.Date) *Evaluator {
	return &Evaluator{
		Currency:   cfg.Currency,
		Fees:       cfg.Fees,
		CPF:        cfg.CPF,
		Thresholds: cfg.Thresholds,
		Dividends:  cfg.Dividends,
		AsOf:       asOf,
	}
}

// Evaluate computes the full record for one holding from its quote.
//
// The opportunity-cost principal is the holding's own cost basis: each
// position pays for the capital it actually ties up, so records stay
// independent of portfolio composition.
func (e *Evaluator) Evaluate(h Holding, q Quote) (PositionRecord, error) {
	if err := h.Validate(); err != nil {
		return PositionRecord{}, err
	}
	if q.Symbol != h.Symbol {
		return PositionRecord{}, fmt.Errorf("evaluate %s: %w: got quote for %q", h.Symbol, ErrMissingQuote, q.Symbol)
	}
	if !q.Price.IsPositive() {
		return PositionRecord{}, fmt.Errorf("evaluate %s: %w: price must be positive, got %s", h.Symbol, ErrInvalidInput, q.Price)
	}

	qty := h.Quantity()
	costBasis := h.CostBasisTotal(e.Currency)
	marketValue := q.Price.Mul(qty)
	paper := marketValue.Sub(costBasis)

	fee, err := e.Fees.Breakdown(marketValue)
	if err != nil {
		return PositionRecord{}, fmt.Errorf("evaluate %s: %w", h.Symbol, err)
	}

	oc := e.CPF.OpportunityCost(costBasis, h.BuyDate, e.AsOf)
	breakeven, err := e.Fees.Breakeven(costBasis, oc, qty)
	if err != nil {
		return PositionRecord{}, fmt.Errorf("evaluate %s: %w", h.Symbol, err)
	}

	cost := h.CostPerShare(e.Currency)
	return PositionRecord{
		Holding:         h,
		Quote:           q,
		CostBasisTotal:  costBasis,
		MarketValue:     marketValue,
		PaperPnL:        paper,
		Fee:             fee,
		DaysHeld:        e.AsOf.Sub(h.BuyDate),
		OpportunityCost: oc,
		Breakeven:       breakeven,
		NetPnL:          paper.Sub(fee.Total()).Sub(oc),
		Dividends:       e.dividendsFor(h.DisplayName()),
		TargetPrice:     e.Thresholds.TargetPrice(cost),
		Suggestion:      e.Thresholds.Classify(q.Price, breakeven, cost),
	}, nil
}

func (e *Evaluator) dividendsFor(name string) Money {
	total := M(0, e.Currency)
	for _, d := range e.Dividends {
		if d.Name == name {
			total = total.Add(M(d.Amount, e.Currency))
		}
	}
	return total
}
