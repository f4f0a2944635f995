package utils

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{15.4, 15},
		{15.5, 16},
		{-2.5, -2},
		{-2.6, -3},
		{-0.4, 0},
		{0, 0},
		{2.5, 3},
		{-0.5, 0},
		{0.49999999999999994, 0},
		{-0.49999999999999994, 0},
		{4503599627370497, 4503599627370497},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxInt},
		{math.Inf(-1), math.MinInt},
		{1e300, math.MaxInt},
		{-1e300, math.MinInt},
	}

	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		12.3: "12.3",
		5:    "5",
		0.51: "0.51",
	}

	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(120, 0, 100); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := ClampInt(-3, 0, 100); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := ClampInt(80, 0, 100); got != 80 {
		t.Errorf("expected 80, got %d", got)
	}
}
