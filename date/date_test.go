package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "standard format", in: "2025-10-28", want: New(2025, time.October, 28)},
		{name: "lenient single digits", in: "2025-7-1", want: New(2025, time.July, 1)},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected an error, got none", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		name string
		d, x Date
		want int
	}{
		{name: "same day", d: New(2025, time.November, 5), x: New(2025, time.November, 5), want: 0},
		{name: "eight days held", d: New(2025, time.November, 5), x: New(2025, time.October, 28), want: 8},
		{name: "across month end", d: New(2025, time.November, 1), x: New(2025, time.October, 31), want: 1},
		{name: "negative when reversed", d: New(2025, time.October, 28), x: New(2025, time.November, 5), want: -8},
		{name: "across leap day", d: New(2024, time.March, 1), x: New(2024, time.February, 28), want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Sub(tc.x); got != tc.want {
				t.Errorf("%v.Sub(%v) = %d, want %d", tc.d, tc.x, got, tc.want)
			}
		})
	}
}

func TestAdd_Normalizes(t *testing.T) {
	got := New(2025, time.October, 28).Add(8)
	want := New(2025, time.November, 5)
	if got != want {
		t.Errorf("Add(8) = %v, want %v", got, want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	want := New(2025, time.October, 28)
	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() failed: %v", err)
	}
	if string(text) != "2025-10-28" {
		t.Errorf("MarshalText() = %q, want %q", text, "2025-10-28")
	}
	var got Date
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
	}
	if got != want {
		t.Errorf("round-trip = %v, want %v", got, want)
	}
}
