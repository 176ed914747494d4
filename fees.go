package cpfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeSchedule is the broker's transaction cost schedule (the DBS Vickers
// cash-upfront schedule by default). Every figure is configuration; the
// engine holds no fee constants of its own.
type FeeSchedule struct {
	CommissionRate decimal.Decimal `toml:"commission_rate"` // proportional commission, e.g. 0.0018
	MinCommission  decimal.Decimal `toml:"min_commission"`  // commission floor, e.g. 27.25
	ClearingRate   decimal.Decimal `toml:"clearing_rate"`   // CDP clearing fee, e.g. 0.000325
	TradingRate    decimal.Decimal `toml:"trading_rate"`    // SGX trading fee, e.g. 0.000075
	SettlementFee  decimal.Decimal `toml:"settlement_fee"`  // flat settlement instruction fee, e.g. 0.35
}

// FeeBreakdown itemizes the cost of one trade.
type FeeBreakdown struct {
	Commission Money
	Clearing   Money
	Trading    Money
	Settlement Money
}

// Total sums the four components.
func (b FeeBreakdown) Total() Money {
	return b.Commission.Add(b.Clearing).Add(b.Trading).Add(b.Settlement)
}

// Breakdown computes the itemized transaction cost for a trade notional.
// A non-positive notional is a contract violation and fails with ErrInvalidInput.
func (s FeeSchedule) Breakdown(notional Money) (FeeBreakdown, error) {
	if !notional.IsPositive() {
		return FeeBreakdown{}, fmt.Errorf("notional must be positive, got %s: %w", notional, ErrInvalidInput)
	}
	currency := notional.Currency()
	commission := notional.Mul(Q(s.CommissionRate)).Max(M(s.MinCommission, currency))
	return FeeBreakdown{
		Commission: commission,
		Clearing:   notional.Mul(Q(s.ClearingRate)),
		Trading:    notional.Mul(Q(s.TradingRate)),
		Settlement: M(s.SettlementFee, currency),
	}, nil
}

// Cost returns the total transaction cost for a trade notional.
func (s FeeSchedule) Cost(notional Money) (Money, error) {
	b, err := s.Breakdown(notional)
	if err != nil {
		return Money{}, err
	}
	return b.Total(), nil
}

// FloorNotional returns the notional at which the proportional commission
// equals the floor (min commission / commission rate, ≈ 15138.89 on the
// default schedule). Below it the flat minimum binds.
func (s FeeSchedule) FloorNotional(currency string) Money {
	return M(s.MinCommission.Div(s.CommissionRate), currency)
}

// proportionalRate is the sum of all rates applied to the notional in the
// proportional-commission regime.
func (s FeeSchedule) proportionalRate() decimal.Decimal {
	return s.CommissionRate.Add(s.ClearingRate).Add(s.TradingRate)
}

// Validate checks the schedule is usable: positive commission terms,
// non-negative flat fees, and proportional rates that leave the seller
// with positive proceeds.
func (s FeeSchedule) Validate() error {
	if s.CommissionRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("fee schedule: commission rate must be positive, got %s", s.CommissionRate)
	}
	if s.MinCommission.IsNegative() {
		return fmt.Errorf("fee schedule: minimum commission must not be negative, got %s", s.MinCommission)
	}
	if s.ClearingRate.IsNegative() || s.TradingRate.IsNegative() {
		return fmt.Errorf("fee schedule: clearing and trading rates must not be negative")
	}
	if s.SettlementFee.IsNegative() {
		return fmt.Errorf("fee schedule: settlement fee must not be negative, got %s", s.SettlementFee)
	}
	if s.proportionalRate().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("fee schedule: combined rates %s consume the whole notional", s.proportionalRate())
	}
	return nil
}
