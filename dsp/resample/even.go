package resample

import (
	"fmt"
	"math"
)

const (
	// DefaultResolutionFactor is the grid density multiplier of ResampleEven.
	DefaultResolutionFactor = 2
	// DefaultEvenEnergyThreshold is the energy threshold ResampleEven uses
	// unless overridden.
	DefaultEvenEnergyThreshold = 1e-3
)

// Linspace returns n evenly spaced values from start to stop inclusive.
// Both ends are exact. n == 1 yields [start]; n <= 0 yields nil.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = start

	if n == 1 {
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = start + step*float64(i)
	}

	out[n-1] = stop

	return out
}

// gridSize returns round(n*factor).
func gridSize(n int, factor float64) (int, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResolution, factor)
	}

	m := int(math.Round(float64(n) * factor))
	if m < 1 {
		return 0, fmt.Errorf("%w: %v yields %d points from %d", ErrInvalidResolution, factor, m, n)
	}

	return m, nil
}

// ResampleEven resamples (x, v) onto round(len(v)*factor) evenly spaced
// points running from x[0] to x[len(x)-1]. A descending x gives a descending
// grid. The energy threshold defaults to DefaultEvenEnergyThreshold.
func ResampleEven(x, v []float64, factor float64, opts ...Option) (xNew, vNew []float64, err error) {
	cfg := defaultConfig()
	cfg.threshold = DefaultEvenEnergyThreshold

	r, err := newResampler(cfg, opts)
	if err != nil {
		return nil, nil, err
	}

	xNew, res, err := r.ResampleEven(x, v, factor)
	if err != nil {
		return nil, nil, err
	}

	return xNew, res.Values, nil
}

// ResampleEven builds the even grid spanning x[0]..x[len(x)-1] and resamples
// onto it. The grid keeps the orientation of x.
func (r *Resampler) ResampleEven(x, v []float64, factor float64) ([]float64, Result, error) {
	if len(x) != len(v) {
		return nil, Result{}, &LengthMismatchError{LenX: len(x), LenV: len(v)}
	}

	if len(x) == 0 {
		return nil, Result{}, ErrAllNaN
	}

	n, err := gridSize(len(v), factor)
	if err != nil {
		return nil, Result{}, err
	}

	xNew := Linspace(x[0], x[len(x)-1], n)

	res, err := r.Resample(x, v, xNew)
	if err != nil {
		return nil, Result{}, err
	}

	return xNew, res, nil
}
