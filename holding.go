package cpfolio

import (
	"fmt"

	"github.com/etnz/cpfolio/date"
	"github.com/shopspring/decimal"
)

// Holding is one position in the portfolio: a fixed number of shares bought
// at a known cost on a known date. Holdings come from configuration and are
// never mutated.
type Holding struct {
	Symbol  string          `toml:"symbol"`   // quote symbol, e.g. "D05.SI"
	Name    string          `toml:"name"`     // display name, e.g. "DBS"
	Shares  int64           `toml:"shares"`   // number of shares, positive integer
	Cost    decimal.Decimal `toml:"cost"`     // cost basis price per share
	BuyDate date.Date       `toml:"buy_date"` // settlement date of the buy
}

// Quantity returns the share count as an exact decimal quantity.
func (h Holding) Quantity() Quantity { return Q(h.Shares) }

// CostPerShare returns the per-share cost basis in the given currency.
func (h Holding) CostPerShare(currency string) Money { return M(h.Cost, currency) }

// CostBasisTotal returns shares × cost per share, the capital locked into the
// position. Buy-side fees are deliberately not part of the cost basis.
func (h Holding) CostBasisTotal(currency string) Money {
	return h.CostPerShare(currency).Mul(h.Quantity())
}

// DisplayName returns the configured name, falling back to the symbol.
func (h Holding) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Symbol
}

// Validate checks the holding invariants: non-empty symbol, positive integer
// share count, positive cost, non-zero buy date.
func (h Holding) Validate() error {
	if h.Symbol == "" {
		return fmt.Errorf("holding has no symbol: %w", ErrInvalidInput)
	}
	if h.Shares <= 0 {
		return fmt.Errorf("holding %s: shares must be positive, got %d: %w", h.Symbol, h.Shares, ErrInvalidInput)
	}
	if h.Cost.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("holding %s: cost must be positive, got %s: %w", h.Symbol, h.Cost, ErrInvalidInput)
	}
	if h.BuyDate.IsZero() {
		return fmt.Errorf("holding %s: buy date is not set: %w", h.Symbol, ErrInvalidInput)
	}
	return nil
}
