package calc

import (
	"math"
	"testing"
)

func TestNormalizeAmount_FiniteNumbersPassThrough(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       interface{}
		expected float64
	}{
		{float64(0), 0},
		{float64(1234567), 1234567},
		{float64(-250.5), -250.5},
		{int(40000), 40000},
		{int32(40000), 40000},
		{int64(60000000), 60000000},
		{float32(12.5), 12.5},
	}
	for _, tc := range cases {
		if got := NormalizeAmount(tc.in); got != tc.expected {
			t.Fatalf("NormalizeAmount(%v) = %v, want %v", tc.in, got, tc.expected)
		}
	}
}

func TestNormalizeAmount_NonFiniteNumbersBecomeZero(t *testing.T) {
	t.Parallel()

	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := NormalizeAmount(in); got != 0 {
			t.Fatalf("NormalizeAmount(%v) = %v, want 0", in, got)
		}
	}
}

func TestNormalizeAmount_Strings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		expected float64
	}{
		{"40000", 40000},
		{"1,234,000원", 1234000},
		{"₩ 25,000,000", 25000000},
		{"  1234.5 ", 1234.5},
		{"-20,000", -20000},
		{"", 0},
		{"가격미정", 0},
		{"N/A", 0},
		{"--..", 0}, // digits-free residue fails to parse
	}
	for _, tc := range cases {
		if got := NormalizeAmount(tc.in); got != tc.expected {
			t.Fatalf("NormalizeAmount(%q) = %v, want %v", tc.in, got, tc.expected)
		}
	}
}

func TestNormalizeAmount_NonNumericTypes(t *testing.T) {
	t.Parallel()

	if got := NormalizeAmount(nil); got != 0 {
		t.Fatalf("NormalizeAmount(nil) = %v, want 0", got)
	}
	if got := NormalizeAmount(true); got != 0 {
		t.Fatalf("NormalizeAmount(true) = %v, want 0", got)
	}
	if got := NormalizeAmount(false); got != 0 {
		t.Fatalf("NormalizeAmount(false) = %v, want 0", got)
	}
	// Anything else falls back to its text form.
	if got := NormalizeAmount([]interface{}{"35000원"}); got != 35000 {
		t.Fatalf("NormalizeAmount(slice) = %v, want 35000", got)
	}
	type wrapped struct{ V string }
	if got := NormalizeAmount(wrapped{V: "12000"}); got != 12000 {
		t.Fatalf("NormalizeAmount(struct) = %v, want 12000", got)
	}
}
