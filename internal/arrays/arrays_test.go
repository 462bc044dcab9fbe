package arrays

import (
	"math"
	"testing"
)

func TestMonotonicity(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		in   []float64
		asc  bool
		desc bool
	}{
		{name: "empty", in: nil, asc: true, desc: true},
		{name: "single", in: []float64{3}, asc: true, desc: true},
		{name: "ascending", in: []float64{0, 1, 2.5, 7}, asc: true},
		{name: "descending", in: []float64{7, 2.5, 1, 0}, desc: true},
		{name: "tie", in: []float64{0, 1, 1, 2}},
		{name: "mixed", in: []float64{0, 2, 1}},
		{name: "nan", in: []float64{0, nan, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsStrictlyAscending(tc.in); got != tc.asc {
				t.Fatalf("IsStrictlyAscending(%v) = %v, want %v", tc.in, got, tc.asc)
			}
			if got := IsStrictlyDescending(tc.in); got != tc.desc {
				t.Fatalf("IsStrictlyDescending(%v) = %v, want %v", tc.in, got, tc.desc)
			}
		})
	}
}

func TestFiniteIndices(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		in          []float64
		first, last int
	}{
		{in: []float64{1, 2, 3}, first: 0, last: 2},
		{in: []float64{nan, 1, 2, nan, nan}, first: 1, last: 2},
		{in: []float64{nan, nan}, first: -1, last: -1},
		{in: nil, first: -1, last: -1},
	}

	for _, tc := range tests {
		if got := FirstFinite(tc.in); got != tc.first {
			t.Fatalf("FirstFinite(%v) = %d, want %d", tc.in, got, tc.first)
		}
		if got := LastFinite(tc.in); got != tc.last {
			t.Fatalf("LastFinite(%v) = %d, want %d", tc.in, got, tc.last)
		}
	}
}

func TestNaNCounting(t *testing.T) {
	nan := math.NaN()
	in := []float64{nan, 1, nan, 3}

	if !AnyNaN(in) {
		t.Fatal("AnyNaN = false, want true")
	}
	if AnyNaN([]float64{1, 2}) {
		t.Fatal("AnyNaN = true for finite input")
	}
	if got := CountNaN(in); got != 2 {
		t.Fatalf("CountNaN = %d, want 2", got)
	}
}

func TestMinMaxSkipsNaN(t *testing.T) {
	lo, hi, ok := MinMax([]float64{math.NaN(), 4, -2, 9, math.NaN()})
	if !ok || lo != -2 || hi != 9 {
		t.Fatalf("MinMax = (%v, %v, %v), want (-2, 9, true)", lo, hi, ok)
	}

	if _, _, ok := MinMax([]float64{math.NaN()}); ok {
		t.Fatal("MinMax reported ok for all-NaN input")
	}
}

func TestReversedDoesNotAlias(t *testing.T) {
	in := []float64{1, 2, 3}
	out := Reversed(in)

	if out[0] != 3 || out[1] != 2 || out[2] != 1 {
		t.Fatalf("Reversed = %v", out)
	}
	if in[0] != 1 || in[2] != 3 {
		t.Fatalf("input modified: %v", in)
	}

	ReverseInPlace(out)
	if out[0] != 1 || out[2] != 3 {
		t.Fatalf("ReverseInPlace = %v", out)
	}
}
