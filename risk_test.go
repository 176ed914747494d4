package cpfolio

import (
	"math"
	"testing"
	"time"

	"github.com/etnz/cpfolio/date"
)

func TestLogReturns(t *testing.T) {
	bars := barsFromCloses([]float64{100, 110, 99})
	returns := LogReturns(bars)
	if len(returns) != 2 {
		t.Fatalf("len(LogReturns()) = %d, want 2", len(returns))
	}
	if got := returns[bars[1].Day]; math.Abs(got-math.Log(1.1)) > 1e-12 {
		t.Errorf("return day 2 = %v, want ln(1.1)", got)
	}
	if got := returns[bars[2].Day]; math.Abs(got-math.Log(0.9)) > 1e-12 {
		t.Errorf("return day 3 = %v, want ln(0.9)", got)
	}
}

func TestRiskConfig_Volatility(t *testing.T) {
	cfg := NewDefaultConfig().Risk

	returns := make([]float64, 10)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.01
		}
	}
	daily, annual := cfg.Volatility(returns)
	// Sample std of ±0.01 around a zero mean: √(10·0.0001/9) ≈ 0.0105409.
	wantDaily := math.Sqrt(10 * 0.0001 / 9)
	if math.Abs(daily-wantDaily*100) > 1e-9 {
		t.Errorf("daily vol = %v, want %v", daily, wantDaily*100)
	}
	if math.Abs(annual-wantDaily*math.Sqrt(252)*100) > 1e-9 {
		t.Errorf("annual vol = %v, want %v", annual, wantDaily*math.Sqrt(252)*100)
	}

	if d, a := cfg.Volatility(returns[:4]); !math.IsNaN(d) || !math.IsNaN(a) {
		t.Errorf("Volatility(4 returns) = %v/%v, want NaN", d, a)
	}
}

func TestMaxDrawdown(t *testing.T) {
	bars := barsFromCloses([]float64{100, 120, 90, 95, 130, 110})
	dd, peak, trough := MaxDrawdown(bars)

	// Deepest decline: 120 → 90, a 25% drop.
	if math.Abs(dd-(-25)) > 1e-9 {
		t.Errorf("MaxDrawdown() = %v, want -25", dd)
	}
	if peak != bars[1].Day {
		t.Errorf("peak = %v, want %v", peak, bars[1].Day)
	}
	if trough != bars[2].Day {
		t.Errorf("trough = %v, want %v", trough, bars[2].Day)
	}
}

func TestMaxDrawdown_MonotoneRise(t *testing.T) {
	dd, _, _ := MaxDrawdown(barsFromCloses(ramp(10, true)))
	if dd != 0 {
		t.Errorf("MaxDrawdown(rising) = %v, want 0", dd)
	}
}

func TestVaR(t *testing.T) {
	returns := make([]float64, 20)
	returns[0] = -0.10 // one bad day among flat ones

	// 5th percentile of 20 values: rank 0.95 between -0.10 and 0.
	got := VaR(returns, 0.95)
	if math.Abs(got-(-0.5)) > 1e-9 {
		t.Errorf("VaR(0.95) = %v, want -0.5", got)
	}

	if !math.IsNaN(VaR(returns[:5], 0.95)) {
		t.Error("VaR(5 returns) = value, want NaN")
	}
}

func TestRiskConfig_SharpeSortino(t *testing.T) {
	cfg := NewDefaultConfig().Risk

	// A noisy but clearly positive return stream beats the risk-free rate.
	cycle := []float64{0.012, -0.002, 0.010, -0.006}
	returns := make([]float64, 40)
	for i := range returns {
		returns[i] = cycle[i%len(cycle)]
	}
	sharpe := cfg.Sharpe(returns)
	if math.IsNaN(sharpe) || sharpe <= 0 {
		t.Errorf("Sharpe() = %v, want a positive ratio", sharpe)
	}
	sortino := cfg.Sortino(returns)
	if math.IsNaN(sortino) || sortino <= 0 {
		t.Errorf("Sortino() = %v, want a positive ratio", sortino)
	}
	// Sortino only penalizes downside; same stream must score at least Sharpe.
	if sortino < sharpe {
		t.Errorf("Sortino() = %v < Sharpe() = %v, want downside-only penalty to score higher", sortino, sharpe)
	}

	if !math.IsNaN(cfg.Sharpe(returns[:10])) {
		t.Error("Sharpe(10 returns) = value, want NaN")
	}
}

func TestClassifyRisk(t *testing.T) {
	testCases := []struct {
		vol  float64
		want RiskLevel
	}{
		{5, RiskLow},
		{10, RiskModerate},
		{19.9, RiskModerate},
		{25, RiskElevated},
		{30, RiskHigh},
		{math.NaN(), RiskUnknown},
	}
	for _, tc := range testCases {
		if got := ClassifyRisk(tc.vol); got != tc.want {
			t.Errorf("ClassifyRisk(%v) = %v, want %v", tc.vol, got, tc.want)
		}
	}
}

func TestCorrelation(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, -0.01, 0.02}
	anti := make([]float64, len(xs))
	for i, x := range xs {
		anti[i] = -x
	}
	if got := correlation(xs, xs); math.Abs(got-1) > 1e-12 {
		t.Errorf("correlation(x, x) = %v, want 1", got)
	}
	if got := correlation(xs, anti); math.Abs(got+1) > 1e-12 {
		t.Errorf("correlation(x, -x) = %v, want -1", got)
	}
}

func TestRiskConfig_AnalyzeRisk(t *testing.T) {
	cfg := testConfig()
	day := date.New(2025, time.September, 1)

	// Two holdings with perfectly anticorrelated histories over 30 shared
	// days; the third has no history at all.
	n := 30
	up := make([]float64, n)
	down := make([]float64, n)
	for i := range up {
		up[i] = 100 * math.Exp(0.01*float64(i)*math.Pow(-1, float64(i%2)))
		down[i] = 100 / (up[i] / 100)
	}
	mkBars := func(closes []float64) []Bar {
		bars := make([]Bar, len(closes))
		for i, c := range closes {
			bars[i] = Bar{Day: day.Add(i), Close: c, Volume: 1000}
		}
		return bars
	}

	histories := map[string][]Bar{
		"D05.SI":  mkBars(up),
		"C38U.SI": mkBars(down),
	}
	report := cfg.Risk.AnalyzeRisk(cfg.Holdings, histories)

	if len(report.Stocks) != 3 {
		t.Fatalf("len(Stocks) = %d, want one row per holding", len(report.Stocks))
	}
	if math.IsNaN(report.Stocks[0].AnnualVol) {
		t.Error("Stocks[0].AnnualVol = NaN, want a value from 29 returns")
	}
	if !math.IsNaN(report.Stocks[2].AnnualVol) {
		t.Error("Stocks[2].AnnualVol = value, want NaN without history")
	}

	// Weights sum to 100% of the cost basis.
	sum := 0.0
	for _, s := range report.Stocks {
		sum += s.Weight
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("sum of weights = %v, want 100", sum)
	}

	if len(report.Symbols) != 2 {
		t.Fatalf("len(Symbols) = %d, want the two symbols with history", len(report.Symbols))
	}
	if got := report.Correlation[0][1]; math.Abs(got+1) > 1e-6 {
		t.Errorf("Correlation[0][1] = %v, want -1 for mirrored histories", got)
	}
	if got := report.Correlation[0][0]; math.Abs(got-1) > 1e-12 {
		t.Errorf("Correlation[0][0] = %v, want 1", got)
	}

	// Portfolio volatility needs every holding to contribute; one holding
	// has no history, so it stays NaN.
	if !math.IsNaN(report.Portfolio.AnnualVol) {
		t.Errorf("Portfolio.AnnualVol = %v, want NaN with a missing history", report.Portfolio.AnnualVol)
	}
}

func TestPercentile(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	if got := percentile(xs, 0); got != 1 {
		t.Errorf("percentile(0) = %v, want 1", got)
	}
	if got := percentile(xs, 100); got != 4 {
		t.Errorf("percentile(100) = %v, want 4", got)
	}
	if got := percentile(xs, 50); got != 2.5 {
		t.Errorf("percentile(50) = %v, want 2.5", got)
	}
}
