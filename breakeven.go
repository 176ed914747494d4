package cpfolio

import "fmt"

// Breakeven returns the minimum sale price per share at which selling the
// full position nets exactly the cost basis after fees and opportunity cost:
//
//	quantity·P − fees(quantity·P) − opportunityCost = costBasisTotal
//
// The commission floor makes fees(·) piecewise linear, so the inverse is a
// two-branch case analysis rather than a single formula. Each branch has a
// closed-form linear solution; the branch whose notional matches its own
// commission regime wins. On the boundary (or if rounding leaves neither
// branch self-consistent) the flat-minimum regime is preferred: its breakeven
// is never lower.
func (s FeeSchedule) Breakeven(costBasisTotal, opportunityCost Money, quantity Quantity) (Money, error) {
	if !quantity.IsPositive() {
		return Money{}, fmt.Errorf("breakeven: %w: quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if !costBasisTotal.IsPositive() {
		return Money{}, fmt.Errorf("breakeven: %w: cost basis must be positive, got %s", ErrInvalidInput, costBasisTotal)
	}
	if opportunityCost.IsNegative() {
		return Money{}, fmt.Errorf("breakeven: %w: opportunity cost must not be negative, got %s", ErrInvalidInput, opportunityCost)
	}

	currency := cur(costBasisTotal, opportunityCost)
	settle := M(s.SettlementFee, currency)
	floor := s.FloorNotional(currency)

	// Proportional commission: qty·P·(1 − all rates) = cbt + settle + oc.
	fixed := costBasisTotal.Add(settle).Add(opportunityCost)
	allRates := s.CommissionRate.Add(s.ClearingRate).Add(s.TradingRate)
	p1 := fixed.Div(quantity.Mul(One.Sub(Q(allRates))))
	n1 := p1.Mul(quantity)

	// Flat minimum commission: qty·P·(1 − clearing − trading) = cbt + settle + oc + min.
	p2 := fixed.Add(M(s.MinCommission, currency)).Div(quantity.Mul(One.Sub(Q(s.ClearingRate.Add(s.TradingRate)))))
	n2 := p2.Mul(quantity)

	proportional := n1.GreaterThanOrEqual(floor)
	flat := n2.LessThanOrEqual(floor)
	switch {
	case proportional && !flat:
		return p1, nil
	case flat && !proportional:
		return p2, nil
	default:
		// Both or neither: the notional sits on the commission floor where
		// the two solutions coincide up to rounding.
		return p2, nil
	}
}
