package cpfolio

import (
	"math"
	"sort"

	"github.com/etnz/cpfolio/date"
)

// RiskConfig is the configuration surface of the risk analytics.
type RiskConfig struct {
	RiskFreeRate float64 `toml:"risk_free_rate"` // e.g. 0.032, the SG 10Y government bond
	TradingDays  int     `toml:"trading_days"`   // annualization factor, e.g. 252
	Bars         int     `toml:"bars"`           // history window to request, in calendar days
}

// RiskMetrics are the per-symbol risk figures over one history window.
// Metrics that need more data than the window provided are NaN; the renderer
// shows them as unavailable.
type RiskMetrics struct {
	Symbol string
	Name   string
	Weight float64 // share of the portfolio cost basis, in percent

	DailyVol  float64 // standard deviation of daily log returns, percent
	AnnualVol float64 // DailyVol × √TradingDays, percent

	MaxDrawdown float64 // deepest peak-to-trough close decline, negative percent
	PeakDate    date.Date
	TroughDate  date.Date

	VaR95, VaR99 float64 // historical one-day VaR, negative percent

	Sharpe  float64
	Sortino float64

	DataPoints int
}

// RiskLevel buckets an annualized volatility, in percent.
type RiskLevel int

const (
	RiskUnknown RiskLevel = iota
	RiskLow               // below 10%
	RiskModerate          // 10% to 20%
	RiskElevated          // 20% to 30%
	RiskHigh              // 30% and beyond
)

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskElevated:
		return "Elevated"
	case RiskHigh:
		return "High"
	}
	return "Unknown"
}

// ClassifyRisk buckets an annualized volatility percentage.
func ClassifyRisk(annualVolPct float64) RiskLevel {
	switch {
	case math.IsNaN(annualVolPct):
		return RiskUnknown
	case annualVolPct < 10:
		return RiskLow
	case annualVolPct < 20:
		return RiskModerate
	case annualVolPct < 30:
		return RiskElevated
	default:
		return RiskHigh
	}
}

// PortfolioRisk aggregates risk across the whole portfolio.
type PortfolioRisk struct {
	AnnualVol        float64 // covariance-weighted portfolio volatility, percent
	UndiversifiedVol float64 // cost-weighted sum of individual volatilities, percent
	// Diversification is how much volatility the imperfect correlation
	// between holdings removes: UndiversifiedVol − AnnualVol.
	Diversification float64
	Level           RiskLevel
}

// RiskReport is the full risk analysis of one run.
type RiskReport struct {
	Stocks []RiskMetrics

	// Correlation is the pairwise return correlation over the overlapping
	// dates, indexed like Symbols. Nil when fewer than two symbols have
	// enough overlapping history.
	Symbols     []string
	Correlation [][]float64

	Portfolio PortfolioRisk
}

// LogReturns converts a daily history, oldest bar first, into daily log
// returns keyed by date. Bars with a non-positive close are skipped.
func LogReturns(bars []Bar) map[date.Date]float64 {
	out := make(map[date.Date]float64, len(bars))
	prev := 0.0
	for _, b := range bars {
		if b.Close <= 0 {
			continue
		}
		if prev > 0 {
			out[b.Day] = math.Log(b.Close / prev)
		}
		prev = b.Close
	}
	return out
}

// Volatility returns the daily and annualized standard deviation of the
// returns, both in percent. Fewer than 5 returns yield NaN.
func (c RiskConfig) Volatility(returns []float64) (daily, annual float64) {
	if len(returns) < 5 {
		return math.NaN(), math.NaN()
	}
	daily = stddev(returns)
	return daily * 100, daily * math.Sqrt(float64(c.TradingDays)) * 100
}

// MaxDrawdown returns the deepest peak-to-trough decline of the closes as a
// negative percentage, with the peak and trough dates.
func MaxDrawdown(bars []Bar) (dd float64, peak, trough date.Date) {
	if len(bars) < 2 {
		return math.NaN(), date.Date{}, date.Date{}
	}
	high := bars[0].Close
	highDay := bars[0].Day
	dd = 0
	peak, trough = highDay, highDay
	for _, b := range bars {
		if b.Close > high {
			high = b.Close
			highDay = b.Day
		}
		if high <= 0 {
			continue
		}
		if d := (b.Close - high) / high; d < dd {
			dd = d
			peak, trough = highDay, b.Day
		}
	}
	return dd * 100, peak, trough
}

// VaR returns the historical one-day value at risk at the given confidence
// level (e.g. 0.95) as a negative percentage: the return the position
// underperforms only (1−confidence) of the time. Fewer than 10 returns
// yield NaN.
func VaR(returns []float64, confidence float64) float64 {
	if len(returns) < 10 {
		return math.NaN()
	}
	return percentile(returns, (1-confidence)*100) * 100
}

// Sharpe returns the annualized Sharpe ratio of the returns over the
// configured risk-free rate. Fewer than 20 returns yield NaN.
func (c RiskConfig) Sharpe(returns []float64) float64 {
	if len(returns) < 20 {
		return math.NaN()
	}
	dailyRF := c.RiskFreeRate / float64(c.TradingDays)
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - dailyRF
	}
	sd := stddev(excess)
	if sd == 0 {
		return math.NaN()
	}
	return mean(excess) / sd * math.Sqrt(float64(c.TradingDays))
}

// Sortino returns the annualized Sortino ratio: like Sharpe, but penalizing
// downside deviation only.
func (c RiskConfig) Sortino(returns []float64) float64 {
	if len(returns) < 20 {
		return math.NaN()
	}
	dailyRF := c.RiskFreeRate / float64(c.TradingDays)
	var downside []float64
	meanExcess := 0.0
	for _, r := range returns {
		meanExcess += r - dailyRF
		if r < dailyRF {
			downside = append(downside, r-dailyRF)
		}
	}
	meanExcess /= float64(len(returns))
	if len(downside) < 2 {
		return math.NaN()
	}
	sd := stddev(downside)
	if sd == 0 {
		return math.NaN()
	}
	return meanExcess / sd * math.Sqrt(float64(c.TradingDays))
}

// AnalyzeRisk computes the full risk report from the holdings and their
// daily histories. Weights are each holding's share of the total cost basis.
// Symbols without history keep their slot with NaN metrics.
func (c RiskConfig) AnalyzeRisk(holdings []Holding, histories map[string][]Bar) *RiskReport {
	report := &RiskReport{Portfolio: PortfolioRisk{
		AnnualVol:        math.NaN(),
		UndiversifiedVol: math.NaN(),
		Diversification:  math.NaN(),
	}}

	total := 0.0
	for _, h := range holdings {
		total += h.Cost.InexactFloat64() * float64(h.Shares)
	}

	returnsBySymbol := make(map[string]map[date.Date]float64)
	weights := make(map[string]float64)
	for _, h := range holdings {
		m := RiskMetrics{Symbol: h.Symbol, Name: h.DisplayName()}
		if total > 0 {
			weights[h.Symbol] = h.Cost.InexactFloat64() * float64(h.Shares) / total
			m.Weight = weights[h.Symbol] * 100
		}

		bars := histories[h.Symbol]
		byDay := LogReturns(bars)
		returns := sortedValues(byDay)
		m.DataPoints = len(returns)
		m.DailyVol, m.AnnualVol = c.Volatility(returns)
		m.MaxDrawdown, m.PeakDate, m.TroughDate = MaxDrawdown(bars)
		m.VaR95 = VaR(returns, 0.95)
		m.VaR99 = VaR(returns, 0.99)
		m.Sharpe = c.Sharpe(returns)
		m.Sortino = c.Sortino(returns)
		report.Stocks = append(report.Stocks, m)

		if len(byDay) > 10 {
			returnsBySymbol[h.Symbol] = byDay
		}
	}

	c.correlate(report, holdings, returnsBySymbol, weights)
	return report
}

// correlate fills in the correlation matrix and the portfolio-level
// volatility over the dates every eligible symbol shares.
func (c RiskConfig) correlate(report *RiskReport, holdings []Holding, returnsBySymbol map[string]map[date.Date]float64, weights map[string]float64) {
	var symbols []string
	for _, h := range holdings {
		if _, ok := returnsBySymbol[h.Symbol]; ok {
			symbols = append(symbols, h.Symbol)
		}
	}
	if len(symbols) < 2 {
		return
	}

	// Align the series on the dates every symbol has.
	var days []date.Date
	for d := range returnsBySymbol[symbols[0]] {
		shared := true
		for _, sym := range symbols[1:] {
			if _, ok := returnsBySymbol[sym][d]; !ok {
				shared = false
				break
			}
		}
		if shared {
			days = append(days, d)
		}
	}
	if len(days) < 10 {
		return
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([][]float64, len(symbols))
	for i, sym := range symbols {
		series[i] = make([]float64, len(days))
		for j, d := range days {
			series[i][j] = returnsBySymbol[sym][d]
		}
	}

	report.Symbols = symbols
	report.Correlation = make([][]float64, len(symbols))
	for i := range symbols {
		report.Correlation[i] = make([]float64, len(symbols))
		for j := range symbols {
			report.Correlation[i][j] = correlation(series[i], series[j])
		}
	}

	// Portfolio volatility only makes sense when every holding contributes.
	if len(symbols) != len(holdings) {
		return
	}
	annual := float64(c.TradingDays)
	var variance, undiversified float64
	for i, si := range symbols {
		undiversified += weights[si] * stddev(series[i]) * math.Sqrt(annual)
		for j, sj := range symbols {
			variance += weights[si] * weights[sj] * covariance(series[i], series[j]) * annual
		}
	}
	report.Portfolio.AnnualVol = math.Sqrt(variance) * 100
	report.Portfolio.UndiversifiedVol = undiversified * 100
	report.Portfolio.Diversification = report.Portfolio.UndiversifiedVol - report.Portfolio.AnnualVol
	report.Portfolio.Level = ClassifyRisk(report.Portfolio.AnnualVol)
}

func sortedValues(byDay map[date.Date]float64) []float64 {
	days := make([]date.Date, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = byDay[d]
	}
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// covariance is the sample covariance of two equal-length series.
func covariance(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var ss float64
	for i := range xs {
		ss += (xs[i] - mx) * (ys[i] - my)
	}
	return ss / float64(len(xs)-1)
}

// correlation is the Pearson correlation of two equal-length series.
func correlation(xs, ys []float64) float64 {
	sx, sy := stddev(xs), stddev(ys)
	if sx == 0 || sy == 0 {
		return math.NaN()
	}
	return covariance(xs, ys) / (sx * sy)
}

// percentile returns the p-th percentile (0-100) of the values with linear
// interpolation between closest ranks.
func percentile(xs []float64, p float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
