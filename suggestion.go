package cpfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Suggestion is the discrete trading action derived from a position's price
// relationships. Values are declared in classification priority order.
type Suggestion int

const (
	// StopLossWarning: the paper loss exceeds the stop-loss threshold.
	// Capital preservation outranks every other signal.
	StopLossWarning Suggestion = iota
	// CanSell: the current price covers cost basis, fees and opportunity
	// cost. Selling here locks in a non-negative net P&L.
	CanSell
	// NearTarget: just below breakeven, within the near-target band.
	NearTarget
	// Hold: above cost but not yet covering the full cost of selling.
	Hold
	// Underwater: at or below cost, loss still within the stop-loss band.
	Underwater
)

func (s Suggestion) String() string {
	switch s {
	case StopLossWarning:
		return "Stop-Loss Warning"
	case CanSell:
		return "Can Sell"
	case NearTarget:
		return "Near Target"
	case Hold:
		return "Hold"
	case Underwater:
		return "Underwater"
	}
	return fmt.Sprintf("Suggestion(%d)", int(s))
}

// Thresholds hold the classification bands and the take-profit objective.
// All three are fractions of a price, not percent values.
type Thresholds struct {
	StopLoss     decimal.Decimal `toml:"stop_loss"`     // e.g. 0.05: warn past a 5% loss
	NearTarget   decimal.Decimal `toml:"near_target"`   // e.g. 0.005: flag within 0.5% below breakeven
	TargetReturn decimal.Decimal `toml:"target_return"` // e.g. 0.10: take-profit at +10% over cost
}

// Classify maps a position's per-share prices to a Suggestion. The checks
// run in strict priority order and the first match wins, so the function is
// total: every input triple yields exactly one label.
func (t Thresholds) Classify(current, breakeven, costBasis Money) Suggestion {
	loss := costBasis.Sub(current).DivPrice(costBasis)
	switch {
	case loss.GreaterThan(Q(t.StopLoss)):
		return StopLossWarning
	case current.GreaterThanOrEqual(breakeven):
		// Inclusive: a price exactly on breakeven already nets zero.
		return CanSell
	case breakeven.Sub(current).DivPrice(breakeven).LessThan(Q(t.NearTarget)):
		return NearTarget
	case current.GreaterThan(costBasis):
		return Hold
	default:
		return Underwater
	}
}

// TargetPrice returns the take-profit objective for a cost basis price.
func (t Thresholds) TargetPrice(costPerShare Money) Money {
	return costPerShare.Mul(One.Add(Q(t.TargetReturn)))
}

// Validate checks the bands are usable fractions.
func (t Thresholds) Validate() error {
	one := decimal.NewFromInt(1)
	if !t.StopLoss.IsPositive() || t.StopLoss.GreaterThanOrEqual(one) {
		return fmt.Errorf("thresholds: stop loss must be in (0,1), got %s", t.StopLoss)
	}
	if t.NearTarget.IsNegative() || t.NearTarget.GreaterThanOrEqual(one) {
		return fmt.Errorf("thresholds: near target must be in [0,1), got %s", t.NearTarget)
	}
	if t.TargetReturn.IsNegative() {
		return fmt.Errorf("thresholds: target return must not be negative, got %s", t.TargetReturn)
	}
	return nil
}
