// Package arrays provides the small slice predicates shared by the
// interpolation and resampling packages.
package arrays

import "math"

// IsStrictlyAscending reports whether every element is greater than its
// predecessor. Slices shorter than two elements are ascending. NaN breaks
// the ordering.
func IsStrictlyAscending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}

	return true
}

// IsStrictlyDescending reports whether every element is smaller than its
// predecessor. Slices shorter than two elements are descending too.
func IsStrictlyDescending(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] < x[i-1]) {
			return false
		}
	}

	return true
}

// FirstFinite returns the index of the first non-NaN element, or -1.
func FirstFinite(x []float64) int {
	for i, v := range x {
		if !math.IsNaN(v) {
			return i
		}
	}

	return -1
}

// LastFinite returns the index of the last non-NaN element, or -1.
func LastFinite(x []float64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if !math.IsNaN(x[i]) {
			return i
		}
	}

	return -1
}

// AnyNaN reports whether x contains a NaN.
func AnyNaN(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

// CountNaN returns the number of NaN elements in x.
func CountNaN(x []float64) int {
	n := 0

	for _, v := range x {
		if math.IsNaN(v) {
			n++
		}
	}

	return n
}

// MinMax returns the smallest and largest non-NaN elements of x.
// ok is false when x holds no such element.
func MinMax(x []float64) (lo, hi float64, ok bool) {
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}

		if !ok {
			lo, hi, ok = v, v, true
			continue
		}

		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return lo, hi, ok
}

// Reversed returns a reversed copy of x. The input is not modified.
func Reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}

	return out
}

// ReverseInPlace reverses x.
func ReverseInPlace(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
