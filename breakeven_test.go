package cpfolio

import (
	"errors"
	"testing"
)

// The defining property of the breakeven price: selling the full position at
// that price nets zero after fees and opportunity cost, within a cent.
func TestFeeSchedule_Breakeven_RoundTrip(t *testing.T) {
	fees := NewDefaultConfig().Fees

	testCases := []struct {
		name      string
		costBasis Money
		oc        Money
		qty       Quantity
	}{
		{"flat commission regime", SGD(5459), SGD(4.19), Q(100)},
		{"proportional commission regime", SGD(54590), SGD(41.9), Q(1000)},
		{"tiny position", SGD(100), SGD(0), Q(10)},
		{"near the commission floor", SGD(15000), SGD(10), Q(1000)},
		{"no opportunity cost", SGD(5459), SGD(0), Q(100)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := fees.Breakeven(tc.costBasis, tc.oc, tc.qty)
			if err != nil {
				t.Fatalf("Breakeven() error = %v", err)
			}
			if !p.IsPositive() {
				t.Fatalf("Breakeven() = %v, want a positive price", p)
			}
			notional := p.Mul(tc.qty)
			cost, err := fees.Cost(notional)
			if err != nil {
				t.Fatalf("Cost(%v) error = %v", notional, err)
			}
			net := notional.Sub(cost).Sub(tc.oc).Sub(tc.costBasis)
			if net.Abs().GreaterThan(SGD(0.01)) {
				t.Errorf("net at breakeven = %v, want within a cent of zero", net)
			}
		})
	}
}

func TestFeeSchedule_Breakeven_RegimeSelection(t *testing.T) {
	fees := NewDefaultConfig().Fees
	floor := fees.FloorNotional("SGD")

	// A hundred shares at 54.59: the breakeven notional stays well under the
	// commission floor, so the flat minimum is priced in.
	small, err := fees.Breakeven(SGD(5459), SGD(0), Q(100))
	if err != nil {
		t.Fatalf("Breakeven() error = %v", err)
	}
	if n := small.Mul(Q(100)); n.GreaterThanOrEqual(floor) {
		t.Errorf("small position breakeven notional = %v, want below floor %v", n, floor)
	}
	want := (5459 + 27.25 + 0.35) / (100 * (1 - 0.000325 - 0.000075))
	if diff := small.AsFloat() - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("Breakeven() = %v, want %.4f", small, want)
	}

	// Ten times the position crosses the floor: commission is proportional.
	large, err := fees.Breakeven(SGD(54590), SGD(0), Q(1000))
	if err != nil {
		t.Fatalf("Breakeven() error = %v", err)
	}
	if n := large.Mul(Q(1000)); n.LessThan(floor) {
		t.Errorf("large position breakeven notional = %v, want at or above floor %v", n, floor)
	}
	want = (54590 + 0.35) / (1000 * (1 - 0.0018 - 0.000325 - 0.000075))
	if diff := large.AsFloat() - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("Breakeven() = %v, want %.4f", large, want)
	}
}

func TestFeeSchedule_Breakeven_InvalidInput(t *testing.T) {
	fees := NewDefaultConfig().Fees

	testCases := []struct {
		name      string
		costBasis Money
		oc        Money
		qty       Quantity
	}{
		{"zero quantity", SGD(5459), SGD(0), Q(0)},
		{"negative quantity", SGD(5459), SGD(0), Q(-100)},
		{"zero cost basis", SGD(0), SGD(0), Q(100)},
		{"negative opportunity cost", SGD(5459), SGD(-1), Q(100)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fees.Breakeven(tc.costBasis, tc.oc, tc.qty); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Breakeven() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
