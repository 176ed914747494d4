package cpfolio

import (
	"fmt"
	"log"

	"github.com/etnz/cpfolio/date"
	"github.com/shopspring/decimal"
)

// daysPerYear is the ACT/365 accrual convention used by the CPF board.
const daysPerYear = 365

// CPFSchedule holds the CPF Ordinary Account parameters. Capital invested
// through CPFIS stops earning the OA rate, so every day a position is held
// costs the interest the board would otherwise have paid.
type CPFSchedule struct {
	AnnualRate decimal.Decimal `toml:"annual_rate"` // OA interest rate p.a., e.g. 0.035
	Principal  decimal.Decimal `toml:"principal"`   // total OA capital drawn for investing
}

// OpportunityCost returns the interest foregone on principal between the buy
// date and the evaluation date: principal × rate × days/365, on calendar
// days. An evaluation date before the buy date is a configuration fault, not
// a runtime fault: the cost is clamped to zero and a warning is logged.
func (s CPFSchedule) OpportunityCost(principal Money, buy, eval date.Date) Money {
	days := eval.Sub(buy)
	if days < 0 {
		log.Printf("warning, buy date %s is after evaluation date %s (%v), clamping opportunity cost to zero", buy, eval, ErrInvalidDateRange)
		return M(0, principal.Currency())
	}
	factor := s.AnnualRate.Mul(decimal.NewFromInt(int64(days))).Div(decimal.NewFromInt(daysPerYear))
	return principal.Mul(Q(factor))
}

// Validate checks the schedule holds a usable rate.
func (s CPFSchedule) Validate() error {
	if s.AnnualRate.IsNegative() {
		return fmt.Errorf("cpf schedule: annual rate must not be negative, got %s", s.AnnualRate)
	}
	if s.AnnualRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("cpf schedule: annual rate %s is not a fraction (use 0.035 for 3.5%%)", s.AnnualRate)
	}
	if s.Principal.IsNegative() {
		return fmt.Errorf("cpf schedule: principal must not be negative, got %s", s.Principal)
	}
	return nil
}
