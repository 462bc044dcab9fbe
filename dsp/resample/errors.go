package resample

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-resample/measure/energy"
)

var (
	// ErrLengthMismatch indicates x and v of different length.
	ErrLengthMismatch = errors.New("resample: x and v length mismatch")
	// ErrUnsorted indicates x is neither strictly ascending nor strictly descending.
	ErrUnsorted = errors.New("resample: x is not strictly monotonic")
	// ErrAllNaN indicates v holds no finite value.
	ErrAllNaN = errors.New("resample: v has only NaN values")
	// ErrInteriorNaN indicates NaN between the first and last finite value.
	ErrInteriorNaN = errors.New("resample: v has interior NaN values")
	// ErrUnknownPolicy indicates a Policy outside the defined set.
	ErrUnknownPolicy = errors.New("resample: unknown extrapolation policy")
	// ErrSplineFit indicates the spline could not be built.
	ErrSplineFit = errors.New("resample: spline fit failed")
	// ErrOutOfDomain indicates a target outside the domain under PolicyError.
	ErrOutOfDomain = errors.New("resample: target outside input domain")
	// ErrEnergyConservation indicates an energy deviation above the threshold.
	ErrEnergyConservation = errors.New("resample: energy not conserved")
	// ErrInvalidOrder indicates a spline order outside [1, interp.MaxDegree].
	ErrInvalidOrder = errors.New("resample: invalid spline order")
	// ErrInvalidThreshold indicates a negative or NaN energy threshold.
	ErrInvalidThreshold = errors.New("resample: invalid energy threshold")
	// ErrInvalidResolution indicates a resolution factor that yields no grid.
	ErrInvalidResolution = errors.New("resample: invalid resolution factor")
)

// LengthMismatchError reports the lengths of x and v.
type LengthMismatchError struct {
	LenX, LenV int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("resample: x and v should have the same length, got %d and %d", e.LenX, e.LenV)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// InteriorNaNError reports how many NaNs remain after trimming.
type InteriorNaNError struct {
	Count int
}

func (e *InteriorNaNError) Error() string {
	return fmt.Sprintf("resample: v has %d interior NaN values", e.Count)
}

func (e *InteriorNaNError) Unwrap() error { return ErrInteriorNaN }

// SplineFitError carries the trimmed, ascending samples the fit rejected.
type SplineFitError struct {
	X, V  []float64
	Order int
	Err   error
}

func (e *SplineFitError) Error() string {
	return fmt.Sprintf("resample: order-%d spline fit on %d points: %v", e.Order, len(e.X), e.Err)
}

func (e *SplineFitError) Unwrap() []error { return []error{ErrSplineFit, e.Err} }

// OutOfDomainError reports the first target rejected under PolicyError.
// Index refers to the caller's grid.
type OutOfDomainError struct {
	Index    int
	X        float64
	Min, Max float64
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("resample: xNew[%d]=%g outside [%g, %g]", e.Index, e.X, e.Min, e.Max)
}

func (e *OutOfDomainError) Unwrap() error { return ErrOutOfDomain }

// EnergyConservationError carries the failed report together with the
// trimmed input and the computed output.
type EnergyConservationError struct {
	Report energy.Report
	X, V   []float64
	XNew   []float64
	VNew   []float64
}

func (e *EnergyConservationError) Error() string {
	return fmt.Sprintf("resample: energy conservation deviates by %.5g%% (ratio %.6g), tolerance %.5g%%",
		(1-e.Report.Ratio)*100, e.Report.Ratio, e.Report.Threshold*100)
}

func (e *EnergyConservationError) Unwrap() error { return ErrEnergyConservation }
