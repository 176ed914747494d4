package cpfolio

import (
	"errors"
	"testing"
)

func TestFeeSchedule_Breakdown(t *testing.T) {
	fees := NewDefaultConfig().Fees

	testCases := []struct {
		name           string
		notional       Money
		wantCommission Money
		wantClearing   Money
		wantTrading    Money
		wantTotal      Money
	}{
		{
			name:           "below the commission floor",
			notional:       SGD(5600),
			wantCommission: SGD(27.25), // 5600*0.0018 = 10.08, floored at the minimum
			wantClearing:   SGD(1.82),
			wantTrading:    SGD(0.42),
			wantTotal:      SGD(29.84),
		},
		{
			name:           "above the commission floor",
			notional:       SGD(20000),
			wantCommission: SGD(36),
			wantClearing:   SGD(6.5),
			wantTrading:    SGD(1.5),
			wantTotal:      SGD(44.35),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := fees.Breakdown(tc.notional)
			if err != nil {
				t.Fatalf("Breakdown(%v) error = %v", tc.notional, err)
			}
			if !b.Commission.Equal(tc.wantCommission) {
				t.Errorf("Commission = %v, want %v", b.Commission, tc.wantCommission)
			}
			if !b.Clearing.Equal(tc.wantClearing) {
				t.Errorf("Clearing = %v, want %v", b.Clearing, tc.wantClearing)
			}
			if !b.Trading.Equal(tc.wantTrading) {
				t.Errorf("Trading = %v, want %v", b.Trading, tc.wantTrading)
			}
			if !b.Settlement.Equal(SGD(0.35)) {
				t.Errorf("Settlement = %v, want %v", b.Settlement, SGD(0.35))
			}
			if !b.Total().Equal(tc.wantTotal) {
				t.Errorf("Total() = %v, want %v", b.Total(), tc.wantTotal)
			}
		})
	}
}

func TestFeeSchedule_CommissionFloor(t *testing.T) {
	fees := NewDefaultConfig().Fees

	// 15138.88 * 0.0018 = 27.249984, a hair under the minimum.
	below, err := fees.Breakdown(SGD(15138.88))
	if err != nil {
		t.Fatalf("Breakdown() error = %v", err)
	}
	if !below.Commission.Equal(SGD(27.25)) {
		t.Errorf("Commission just below floor = %v, want %v", below.Commission, SGD(27.25))
	}

	// 15139 * 0.0018 = 27.2502, past the minimum.
	above, err := fees.Breakdown(SGD(15139))
	if err != nil {
		t.Fatalf("Breakdown() error = %v", err)
	}
	if !above.Commission.Equal(SGD(27.2502)) {
		t.Errorf("Commission just above floor = %v, want %v", above.Commission, SGD(27.2502))
	}
}

func TestFeeSchedule_Monotonic(t *testing.T) {
	fees := NewDefaultConfig().Fees

	notionals := []float64{0.01, 1, 100, 5600, 15138.88, 15138.89, 15139, 20000, 100000}
	prev := SGD(0)
	for _, n := range notionals {
		total, err := fees.Cost(SGD(n))
		if err != nil {
			t.Fatalf("Cost(%v) error = %v", n, err)
		}
		if total.LessThan(prev) {
			t.Errorf("Cost(%v) = %v, less than cost of a smaller notional %v", n, total, prev)
		}
		prev = total
	}
}

func TestFeeSchedule_InvalidNotional(t *testing.T) {
	fees := NewDefaultConfig().Fees

	for _, n := range []Money{SGD(0), SGD(-100)} {
		if _, err := fees.Breakdown(n); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Breakdown(%v) error = %v, want ErrInvalidInput", n, err)
		}
	}
}

func TestFeeSchedule_FloorNotional(t *testing.T) {
	fees := NewDefaultConfig().Fees

	got := fees.FloorNotional("SGD").AsFloat()
	want := 27.25 / 0.0018 // ≈ 15138.89
	if diff := got - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("FloorNotional() = %v, want %v", got, want)
	}
}
