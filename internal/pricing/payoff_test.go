package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestProfitLoss(t *testing.T) {
	cases := []struct {
		name   string
		typ    OptionType
		value  float64
		spot   float64
		strike float64
		entry  float64
		want   float64
	}{
		{"call in the money", Call, 2.0, 105, 100, 3.5, 0.5},
		{"put out of the money", Put, 2.0, 105, 100, 3.5, -5.5},
		{"put in the money", Put, 1.5, 92, 100, 4, 2.5},
		{"call out of the money", Call, 1.5, 92, 100, 4, 5.5},
		{"call at the money", Call, 2.5, 100, 100, 1.0, 3.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ProfitLoss(tc.typ, tc.value, tc.spot, tc.strike, tc.entry)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("profit = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProfitLossRejectsUnknownType(t *testing.T) {
	_, err := ProfitLoss(OptionType("straddle"), 2.0, 100, 100, 5)
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("err = %v, want ErrInvalidOptionType", err)
	}
}

func TestSweepProfitsShape(t *testing.T) {
	curve, err := SweepProfits(Call, 2.5, 100, 100, 80, 120, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(curve) != 100 {
		t.Fatalf("len = %d, want 100", len(curve))
	}
	if curve[0].EntryPrice != 80 {
		t.Errorf("first entry price = %v, want 80", curve[0].EntryPrice)
	}
	if curve[99].EntryPrice != 120 {
		t.Errorf("last entry price = %v, want 120", curve[99].EntryPrice)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].EntryPrice <= curve[i-1].EntryPrice {
			t.Fatalf("entry prices not strictly ascending at %d: %v then %v",
				i, curve[i-1].EntryPrice, curve[i].EntryPrice)
		}
	}
}

// The swept option value stays fixed, so every put profit here is linear in
// the entry price: (5 - entry) - 2.
func TestSweepProfitsValues(t *testing.T) {
	curve, err := SweepProfits(Put, 2.0, 95, 100, 90, 110, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ProfitPoint{
		{EntryPrice: 90, Profit: -87},
		{EntryPrice: 95, Profit: -92},
		{EntryPrice: 100, Profit: -97},
		{EntryPrice: 105, Profit: -102},
		{EntryPrice: 110, Profit: -107},
	}
	if len(curve) != len(want) {
		t.Fatalf("len = %d, want %d", len(curve), len(want))
	}
	for i := range want {
		if curve[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, curve[i], want[i])
		}
	}
}

func TestSweepProfitsRestartable(t *testing.T) {
	first, err := SweepProfits(Call, 1.75, 102, 100, 85, 115, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SweepProfits(Call, 1.75, 102, 100, 85, 115, 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSweepProfitsValidation(t *testing.T) {
	cases := []struct {
		name    string
		typ     OptionType
		min     float64
		max     float64
		samples int
		wantErr error
	}{
		{"one sample", Call, 80, 120, 1, ErrInvalidInput},
		{"zero samples", Call, 80, 120, 0, ErrInvalidInput},
		{"empty range", Put, 100, 100, 10, ErrInvalidInput},
		{"inverted range", Put, 120, 80, 10, ErrInvalidInput},
		{"unknown type", OptionType("condor"), 80, 120, 10, ErrInvalidOptionType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SweepProfits(tc.typ, 2.0, 100, 100, tc.min, tc.max, tc.samples)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
