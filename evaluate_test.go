package cpfolio

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/cpfolio/date"
)

// The reference scenario: 100 DBS at 54.59 bought 2025-10-28, quoted 56.00
// on 2025-11-05.
func TestEvaluator_Evaluate(t *testing.T) {
	asOf := date.New(2025, time.November, 5)
	ev := NewEvaluator(testConfig(), asOf)

	rec, err := ev.Evaluate(dbs(), quoteOn("D05.SI", 56.00, asOf))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !rec.MarketValue.Equal(SGD(5600)) {
		t.Errorf("MarketValue = %v, want %v", rec.MarketValue, SGD(5600))
	}
	if !rec.CostBasisTotal.Equal(SGD(5459)) {
		t.Errorf("CostBasisTotal = %v, want %v", rec.CostBasisTotal, SGD(5459))
	}
	if !rec.PaperPnL.Equal(SGD(141)) {
		t.Errorf("PaperPnL = %v, want %v", rec.PaperPnL, SGD(141))
	}
	if !rec.Fee.Total().Equal(SGD(29.84)) {
		t.Errorf("Fee.Total() = %v, want %v", rec.Fee.Total(), SGD(29.84))
	}
	if rec.DaysHeld != 8 {
		t.Errorf("DaysHeld = %d, want 8", rec.DaysHeld)
	}
	// 5459 × 0.035 × 8/365 ≈ 4.19
	if diff := rec.OpportunityCost.AsFloat() - 4.19; diff > 0.005 || diff < -0.005 {
		t.Errorf("OpportunityCost = %v, want ≈ 4.19", rec.OpportunityCost)
	}
	// 141 − 29.84 − 4.19 ≈ 106.97
	if diff := rec.NetPnL.AsFloat() - 106.97; diff > 0.005 || diff < -0.005 {
		t.Errorf("NetPnL = %v, want ≈ 106.97", rec.NetPnL)
	}
}

// The net P&L invariant must hold for every record:
// net = paper − fees − opportunity cost.
func TestEvaluator_Evaluate_Invariants(t *testing.T) {
	asOf := date.New(2025, time.November, 5)
	ev := NewEvaluator(testConfig(), asOf)

	for _, price := range []float64{40, 54.59, 55.5, 56, 80} {
		rec, err := ev.Evaluate(dbs(), quoteOn("D05.SI", price, asOf))
		if err != nil {
			t.Fatalf("Evaluate(price=%v) error = %v", price, err)
		}
		wantPaper := rec.MarketValue.Sub(rec.CostBasisTotal)
		if !rec.PaperPnL.Equal(wantPaper) {
			t.Errorf("price %v: PaperPnL = %v, want %v", price, rec.PaperPnL, wantPaper)
		}
		wantNet := rec.PaperPnL.Sub(rec.Fee.Total()).Sub(rec.OpportunityCost)
		if !rec.NetPnL.Equal(wantNet) {
			t.Errorf("price %v: NetPnL = %v, want %v", price, rec.NetPnL, wantNet)
		}
	}
}

// Evaluating exactly at the breakeven price nets zero within a cent.
func TestEvaluator_Evaluate_BreakevenRoundTrip(t *testing.T) {
	cfg := testConfig()
	asOf := date.New(2025, time.November, 5)
	ev := NewEvaluator(cfg, asOf)

	for _, h := range cfg.Holdings {
		costBasis := h.CostBasisTotal(cfg.Currency)
		oc := cfg.CPF.OpportunityCost(costBasis, h.BuyDate, asOf)
		breakeven, err := cfg.Fees.Breakeven(costBasis, oc, h.Quantity())
		if err != nil {
			t.Fatalf("%s: Breakeven() error = %v", h.Symbol, err)
		}

		q := quoteOn(h.Symbol, 0, asOf)
		q.Price = breakeven
		rec, err := ev.Evaluate(h, q)
		if err != nil {
			t.Fatalf("%s: Evaluate() error = %v", h.Symbol, err)
		}
		if rec.NetPnL.Abs().GreaterThan(SGD(0.01)) {
			t.Errorf("%s: NetPnL at breakeven = %v, want within a cent of zero", h.Symbol, rec.NetPnL)
		}
		if rec.Suggestion != CanSell {
			t.Errorf("%s: Suggestion at breakeven = %v, want %v", h.Symbol, rec.Suggestion, CanSell)
		}
	}
}

func TestEvaluator_Evaluate_Dividends(t *testing.T) {
	cfg := testConfig()
	cfg.Dividends = []Dividend{
		{Name: "DBS", Amount: dec("60")},
		{Name: "DBS", Amount: dec("15.50")},
		{Name: "CapitaLand", Amount: dec("20")},
	}
	asOf := date.New(2025, time.November, 5)
	ev := NewEvaluator(cfg, asOf)

	rec, err := ev.Evaluate(dbs(), quoteOn("D05.SI", 56.00, asOf))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !rec.Dividends.Equal(SGD(75.50)) {
		t.Errorf("Dividends = %v, want %v", rec.Dividends, SGD(75.50))
	}
	// Dividends ride alongside net, never inside it.
	if !rec.NetWithDividends().Equal(rec.NetPnL.Add(SGD(75.50))) {
		t.Errorf("NetWithDividends() = %v, want NetPnL + 75.50", rec.NetWithDividends())
	}
}

func TestEvaluator_Evaluate_Errors(t *testing.T) {
	asOf := date.New(2025, time.November, 5)
	ev := NewEvaluator(testConfig(), asOf)

	t.Run("mismatched quote", func(t *testing.T) {
		_, err := ev.Evaluate(dbs(), quoteOn("C38U.SI", 2.50, asOf))
		if !errors.Is(err, ErrMissingQuote) {
			t.Errorf("Evaluate() error = %v, want ErrMissingQuote", err)
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := ev.Evaluate(dbs(), quoteOn("D05.SI", 0, asOf))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Evaluate() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("non-positive shares", func(t *testing.T) {
		h := dbs()
		h.Shares = 0
		_, err := ev.Evaluate(h, quoteOn("D05.SI", 56.00, asOf))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Evaluate() error = %v, want ErrInvalidInput", err)
		}
	})
}
