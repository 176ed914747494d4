package cpfolio

import "math"

// minSignalBars is the shortest history that makes the slow MACD window
// meaningful. Shorter histories yield no signal rather than a noisy one.
const minSignalBars = 26

// SignalWeights are the composite-score contributions of each indicator
// state. Bearish contributions are configured as negative values.
type SignalWeights struct {
	RSIStrong  int `toml:"rsi_strong"`  // RSI14 above 60
	RSIWeak    int `toml:"rsi_weak"`    // RSI14 below 40
	MACDGolden int `toml:"macd_golden"` // golden cross within the lookback
	MACDDeath  int `toml:"macd_death"`  // death cross within the lookback
	Histogram  int `toml:"histogram"`   // MACD histogram sign, when no cross
	MABull     int `toml:"ma_bull"`     // MA5 > MA10 > MA20
	MABear     int `toml:"ma_bear"`     // MA5 < MA10 < MA20
	BBUpper    int `toml:"bb_upper"`    // price hugging the upper band
	BBLower    int `toml:"bb_lower"`    // price hugging the lower band
	VolumeUp   int `toml:"volume_up"`   // above-average volume on an up day
}

// SignalConfig is the configuration surface of the technical analysis.
type SignalConfig struct {
	Bars    int           `toml:"bars"` // history window to request, in calendar days
	Weights SignalWeights `toml:"weights"`
}

// Trend is the moving-average alignment of a price series.
type Trend int

const (
	Sideways Trend = iota // averages interleaved
	Bullish               // MA5 > MA10 > MA20
	Bearish               // MA5 < MA10 < MA20
)

func (t Trend) String() string {
	switch t {
	case Bullish:
		return "Bullish alignment"
	case Bearish:
		return "Bearish alignment"
	}
	return "Sideways"
}

// Cross is a MACD line crossing observed within the lookback window.
type Cross int

const (
	NoCross Cross = iota
	GoldenCross
	DeathCross
)

func (c Cross) String() string {
	switch c {
	case GoldenCross:
		return "Golden cross"
	case DeathCross:
		return "Death cross"
	}
	return "No cross"
}

// SignalLabel is the discrete reading of the composite score.
type SignalLabel int

const (
	NoSignal SignalLabel = iota
	StrongSell
	Sell
	Neutral
	Buy
	StrongBuy
)

func (l SignalLabel) String() string {
	switch l {
	case StrongSell:
		return "Strong Sell"
	case Sell:
		return "Sell"
	case Neutral:
		return "Neutral"
	case Buy:
		return "Buy"
	case StrongBuy:
		return "Strong Buy"
	}
	return "No Signal"
}

// Signal is the full technical reading of one symbol from its daily history.
// Everything here is float statistics, never money arithmetic.
type Signal struct {
	Symbol string
	Price  float64 // latest close

	MA5, MA10, MA20 float64
	MA20Dev         float64 // latest close deviation from MA20, in percent
	Trend           Trend

	RSI6, RSI14 float64

	DIF, DEA, Histogram float64
	Cross               Cross
	CrossDaysAgo        int

	BollUpper, BollMid, BollLower float64
	BollPosition                  float64 // close position inside the bands, 0-100

	VolumeRatio float64 // today's volume over the 5-day average

	Score int // composite, 0-100, base 50
	Label SignalLabel
}

// Analyze computes the technical reading of a daily history, oldest bar
// first. Histories shorter than the slow MACD window yield ok=false: not
// enough bars is a data condition, not an error.
func (c SignalConfig) Analyze(symbol string, bars []Bar) (s Signal, ok bool) {
	if len(bars) < minSignalBars {
		return Signal{Symbol: symbol}, false
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	latest := closes[len(closes)-1]

	s = Signal{Symbol: symbol, Price: latest}
	s.MA5 = sma(closes, 5)
	s.MA10 = sma(closes, 10)
	s.MA20 = sma(closes, 20)
	if s.MA20 != 0 {
		s.MA20Dev = (latest - s.MA20) / s.MA20 * 100
	}
	switch {
	case s.MA5 > s.MA10 && s.MA10 > s.MA20:
		s.Trend = Bullish
	case s.MA5 < s.MA10 && s.MA10 < s.MA20:
		s.Trend = Bearish
	}

	s.RSI6 = rsi(closes, 6)
	s.RSI14 = rsi(closes, 14)

	dif, dea := macd(closes, 12, 26, 9)
	s.DIF = dif[len(dif)-1]
	s.DEA = dea[len(dea)-1]
	s.Histogram = s.DIF - s.DEA
	s.Cross, s.CrossDaysAgo = findCross(dif, dea, 5)

	s.BollUpper, s.BollMid, s.BollLower = bollinger(closes, 20, 2)
	if width := s.BollUpper - s.BollLower; width > 0 {
		s.BollPosition = (latest - s.BollLower) / width * 100
	} else {
		s.BollPosition = 50
	}

	s.VolumeRatio = volumeRatio(bars, 5)

	s.Score = c.score(s, closes)
	switch {
	case s.Score >= 80:
		s.Label = StrongBuy
	case s.Score >= 65:
		s.Label = Buy
	case s.Score >= 45:
		s.Label = Neutral
	case s.Score >= 30:
		s.Label = Sell
	default:
		s.Label = StrongSell
	}
	return s, true
}

// score folds the indicator states into a 0-100 composite, starting from a
// neutral 50 and applying the configured weights.
func (c SignalConfig) score(s Signal, closes []float64) int {
	w := c.Weights
	score := 50

	if s.RSI14 > 60 {
		score += w.RSIStrong
	} else if s.RSI14 < 40 {
		score += w.RSIWeak
	}

	switch s.Cross {
	case GoldenCross:
		score += w.MACDGolden
	case DeathCross:
		score += w.MACDDeath
	default:
		if s.Histogram > 0 {
			score += w.Histogram
		} else {
			score -= w.Histogram
		}
	}

	switch s.Trend {
	case Bullish:
		score += w.MABull
	case Bearish:
		score += w.MABear
	}

	if s.BollPosition > 95 {
		score += w.BBUpper
	} else if s.BollPosition < 5 {
		score += w.BBLower
	}

	n := len(closes)
	if s.VolumeRatio > 1.5 && closes[n-1] > closes[n-2] {
		score += w.VolumeUp
	}

	return max(0, min(100, score))
}

// sma returns the simple moving average of the last window values.
func sma(xs []float64, window int) float64 {
	if len(xs) < window {
		return 0
	}
	sum := 0.0
	for _, x := range xs[len(xs)-window:] {
		sum += x
	}
	return sum / float64(window)
}

// ema returns the exponential moving average series with the given span,
// seeded on the first value.
func ema(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsi returns the relative strength index over the last period deltas,
// averaging gains and losses with a simple mean.
func rsi(xs []float64, period int) float64 {
	if len(xs) < period+1 {
		return 50
	}
	var gains, losses float64
	for i := len(xs) - period; i < len(xs); i++ {
		delta := xs[i] - xs[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	if losses == 0 {
		return 100
	}
	rs := gains / losses
	return 100 - 100/(1+rs)
}

// macd returns the DIF (fast EMA − slow EMA) and DEA (signal EMA of DIF)
// series.
func macd(xs []float64, fast, slow, signal int) (dif, dea []float64) {
	fastEMA := ema(xs, fast)
	slowEMA := ema(xs, slow)
	dif = make([]float64, len(xs))
	for i := range xs {
		dif[i] = fastEMA[i] - slowEMA[i]
	}
	return dif, ema(dif, signal)
}

// findCross scans the last lookback sessions for the most recent DIF/DEA
// crossing. daysAgo is 0 for a cross on the latest bar.
func findCross(dif, dea []float64, lookback int) (Cross, int) {
	n := len(dif)
	for i := 1; i <= lookback && n-i-1 >= 0; i++ {
		fNow, fPrev := dif[n-i], dif[n-i-1]
		sNow, sPrev := dea[n-i], dea[n-i-1]
		if fPrev <= sPrev && fNow > sNow {
			return GoldenCross, i - 1
		}
		if fPrev >= sPrev && fNow < sNow {
			return DeathCross, i - 1
		}
	}
	return NoCross, 0
}

// bollinger returns the Bollinger bands over the last window values:
// mid ± k sample standard deviations.
func bollinger(xs []float64, window int, k float64) (upper, mid, lower float64) {
	if len(xs) < window {
		return 0, 0, 0
	}
	tail := xs[len(xs)-window:]
	mid = sma(xs, window)
	var ss float64
	for _, x := range tail {
		d := x - mid
		ss += d * d
	}
	std := math.Sqrt(ss / float64(window-1))
	return mid + k*std, mid, mid - k*std
}

// volumeRatio compares the latest bar's volume to the average over the last
// window bars.
func volumeRatio(bars []Bar, window int) float64 {
	if len(bars) < window {
		return 1
	}
	var sum int64
	for _, b := range bars[len(bars)-window:] {
		sum += b.Volume
	}
	avg := float64(sum) / float64(window)
	if avg == 0 {
		return 1
	}
	return float64(bars[len(bars)-1].Volume) / avg
}
