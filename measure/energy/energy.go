package energy

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-resample/internal/arrays"
)

// Report holds the result of an energy-conservation check.
type Report struct {
	// Original is the energy of the original samples on the overlap.
	Original float64
	// Resampled is the energy of the resampled values on the overlap.
	Resampled float64
	// Ratio is Original/Resampled; 1 when both are zero, 0 when only
	// Resampled is zero.
	Ratio float64
	// Threshold is the tolerated |Ratio-1|. Zero means unchecked.
	Threshold float64
	// Checked reports whether Threshold was enforced.
	Checked bool
	// WithinTolerance is true when the check passed or was not performed.
	WithinTolerance bool
}

// Deviation returns |Ratio-1|.
func (r Report) Deviation() float64 {
	return math.Abs(r.Ratio - 1)
}

// Percent returns the conservation ratio in percent.
func (r Report) Percent() float64 {
	return r.Ratio * 100
}

// Trapezoid returns the signed trapezoidal integral of y over x.
// x and y must have the same length. Fewer than two points integrate to 0.
func Trapezoid(x, y []float64) float64 {
	if len(x) != len(y) {
		panic(fmt.Sprintf("energy: Trapezoid with len(x)=%d len(y)=%d", len(x), len(y)))
	}

	n := len(x)
	if n < 2 {
		return 0
	}

	dx := make([]float64, n-1)
	for i := range dx {
		dx[i] = x[i+1] - x[i]
	}

	left := make([]float64, n-1)
	right := make([]float64, n-1)
	vecmath.MulBlock(left, dx, y[:n-1])
	vecmath.MulBlock(right, dx, y[1:])

	var sum float64
	for i := range left {
		sum += left[i] + right[i]
	}

	return 0.5 * sum
}

// Within returns a mask selecting the xs inside [lo, hi]. NaN is never
// selected.
func Within(xs []float64, lo, hi float64) []bool {
	mask := make([]bool, len(xs))
	for i, x := range xs {
		mask[i] = x >= lo && x <= hi
	}

	return mask
}

// MaskedTrapezoid integrates the samples selected by mask, in order.
func MaskedTrapezoid(x, y []float64, mask []bool) float64 {
	var xs, ys []float64

	for i, ok := range mask {
		if ok {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}

	return Trapezoid(xs, ys)
}

// Ratio returns original/resampled with the zero conventions of Report.
func Ratio(original, resampled float64) float64 {
	if resampled == 0 {
		if original == 0 {
			return 1
		}

		return 0
	}

	return original / resampled
}

// Compare measures the energy of (x, v) and (xNew, vNew) on their common
// domain. threshold <= 0 disables the tolerance test.
func Compare(x, v, xNew, vNew []float64, threshold float64) Report {
	var overlapX, overlapNew []bool

	if lo, hi, ok := arrays.MinMax(xNew); ok {
		overlapX = Within(x, lo, hi)
	} else {
		overlapX = make([]bool, len(x))
	}

	if lo, hi, ok := arrays.MinMax(x); ok {
		overlapNew = Within(xNew, lo, hi)
	} else {
		overlapNew = make([]bool, len(xNew))
	}

	r := Report{
		Original:  math.Abs(MaskedTrapezoid(x, v, overlapX)),
		Resampled: math.Abs(MaskedTrapezoid(xNew, vNew, overlapNew)),
	}
	r.Ratio = Ratio(r.Original, r.Resampled)

	if threshold > 0 {
		r.Threshold = threshold
		r.Checked = true
	}

	r.WithinTolerance = !r.Checked || r.Deviation() <= r.Threshold

	return r
}
