package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-resample/internal/arrays"
)

// MaxDegree is the highest supported spline degree.
const MaxDegree = 5

var (
	// ErrInvalidDegree indicates a degree outside [1, MaxDegree].
	ErrInvalidDegree = errors.New("interp: invalid spline degree")
	// ErrLengthMismatch indicates abscissas and ordinates of different length.
	ErrLengthMismatch = errors.New("interp: length mismatch")
	// ErrTooFewPoints indicates fewer than degree+1 samples.
	ErrTooFewPoints = errors.New("interp: too few points for spline degree")
	// ErrNotIncreasing indicates abscissas that are unsorted or contain ties.
	ErrNotIncreasing = errors.New("interp: abscissas not strictly increasing")
	// ErrNonFinite indicates a NaN or infinite sample.
	ErrNonFinite = errors.New("interp: non-finite sample")
	// ErrSingular indicates a collocation system that cannot be solved.
	ErrSingular = errors.New("interp: singular collocation system")
	// ErrOutOfDomain is returned by Eval with ExtrapolateError.
	ErrOutOfDomain = errors.New("interp: point outside spline domain")
	// ErrUnknownExtrapolation indicates an Extrapolation outside the defined set.
	ErrUnknownExtrapolation = errors.New("interp: unknown extrapolation mode")
)

// Extrapolation selects the value returned outside the fitted domain.
type Extrapolation int

const (
	// ExtrapolateSpline continues the boundary polynomial pieces.
	ExtrapolateSpline Extrapolation = iota
	// ExtrapolateZero returns 0.
	ExtrapolateZero
	// ExtrapolateError makes Eval fail.
	ExtrapolateError
)

// DomainError reports the first point Eval refused to extrapolate.
type DomainError struct {
	Index    int
	X        float64
	Min, Max float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("interp: x[%d]=%g outside domain [%g, %g]", e.Index, e.X, e.Min, e.Max)
}

func (e *DomainError) Unwrap() error { return ErrOutOfDomain }

// Spline is a B-spline in its knot/coefficient representation.
// It is immutable once built and safe for concurrent use.
type Spline struct {
	degree int
	knots  []float64
	coeffs []float64
}

// Fit returns the spline of the given degree interpolating (x[i], y[i]).
// x must be strictly increasing and hold more than degree points.
// The inputs are not retained.
func Fit(x, y []float64, degree int) (*Spline, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) <= degree {
		return nil, fmt.Errorf("%w: %d points for degree %d", ErrTooFewPoints, len(x), degree)
	}

	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}

	if !arrays.IsStrictlyAscending(x) {
		return nil, ErrNotIncreasing
	}

	s := &Spline{
		degree: degree,
		knots:  interpolationKnots(x, degree),
	}

	coeffs, err := s.solveCollocation(x, y)
	if err != nil {
		return nil, err
	}

	s.coeffs = coeffs

	return s, nil
}

// interpolationKnots places degree+1 knots at each end and one interior knot
// per remaining degree of freedom: at the samples for odd degrees, midway
// between them for even degrees.
func interpolationKnots(x []float64, k int) []float64 {
	n := len(x)
	t := make([]float64, n+k+1)

	for i := 0; i <= k; i++ {
		t[i] = x[0]
		t[n+i] = x[n-1]
	}

	half := k / 2
	for i := 0; i < n-k-1; i++ {
		if k%2 == 1 {
			t[k+1+i] = x[half+1+i]
		} else {
			t[k+1+i] = 0.5 * (x[half+i] + x[half+1+i])
		}
	}

	return t
}

// solveCollocation solves sum_j c[j]*B_j(x[i]) = y[i]. The matrix is banded
// and totally positive, so elimination proceeds without pivoting.
func (s *Spline) solveCollocation(x, y []float64) ([]float64, error) {
	n := len(x)
	k := s.degree

	spans := make([]int, n)
	kl, ku := 0, 0

	for i, xi := range x {
		l := s.span(xi)
		spans[i] = l
		kl = max(kl, i-(l-k))
		ku = max(ku, l-i)
	}

	m := newBand(n, kl, ku)
	b := make([]float64, k+1)
	work := make([]float64, 2*(k+1))

	for i, xi := range x {
		l := spans[i]
		basis(s.knots, k, l, xi, b, work)

		for r := 0; r <= k; r++ {
			m.set(i, l-k+r, b[r])
		}
	}

	rhs := make([]float64, n)
	copy(rhs, y)

	if err := m.solve(rhs); err != nil {
		return nil, err
	}

	return rhs, nil
}

// span returns l with knots[l] <= x < knots[l+1], clamped to the
// non-degenerate intervals [degree, n-1].
func (s *Spline) span(x float64) int {
	k := s.degree
	n := len(s.knots) - k - 1

	if x >= s.knots[n] {
		return n - 1
	}

	if x < s.knots[k] {
		return k
	}

	return k + sort.Search(n-k, func(i int) bool { return s.knots[k+1+i] > x })
}

// basis writes the degree+1 B-spline values that are nonzero on span l into
// b (Cox-de Boor recurrence). work must hold 2*(k+1) values.
func basis(t []float64, k, l int, x float64, b, work []float64) {
	left := work[:k+1]
	right := work[k+1:]

	b[0] = 1

	for j := 1; j <= k; j++ {
		left[j] = x - t[l+1-j]
		right[j] = t[l+j] - x
		saved := 0.0

		for r := 0; r < j; r++ {
			tmp := b[r] / (right[r+1] + left[j-r])
			b[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}

		b[j] = saved
	}
}

// At evaluates the spline at x, continuing the boundary pieces outside the
// domain.
func (s *Spline) At(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}

	var buf [3 * (MaxDegree + 1)]float64

	k := s.degree
	b := buf[:k+1]
	work := buf[k+1 : 3*(k+1)]

	l := s.span(x)
	basis(s.knots, k, l, x, b, work)

	var sum float64
	for r := 0; r <= k; r++ {
		sum += b[r] * s.coeffs[l-k+r]
	}

	return sum
}

// Eval evaluates the spline at every point of xs and stores the results in
// dst, which is grown when too short. Points outside Domain are handled
// according to mode. NaN abscissas evaluate to NaN.
func (s *Spline) Eval(dst, xs []float64, mode Extrapolation) ([]float64, error) {
	if mode < ExtrapolateSpline || mode > ExtrapolateError {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExtrapolation, mode)
	}

	if cap(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}

	dst = dst[:len(xs)]
	lo, hi := s.Domain()

	for i, x := range xs {
		if x < lo || x > hi {
			switch mode {
			case ExtrapolateZero:
				dst[i] = 0
				continue
			case ExtrapolateError:
				return nil, &DomainError{Index: i, X: x, Min: lo, Max: hi}
			}
		}

		dst[i] = s.At(x)
	}

	return dst, nil
}

// Domain returns the first and last fitted abscissa.
func (s *Spline) Domain() (lo, hi float64) {
	n := len(s.coeffs)
	return s.knots[s.degree], s.knots[n]
}

// Degree returns the polynomial degree of the pieces.
func (s *Spline) Degree() int {
	return s.degree
}

// Knots returns a copy of the knot vector.
func (s *Spline) Knots() []float64 {
	out := make([]float64, len(s.knots))
	copy(out, s.knots)

	return out
}

// Coefficients returns a copy of the B-spline coefficients.
func (s *Spline) Coefficients() []float64 {
	out := make([]float64, len(s.coeffs))
	copy(out, s.coeffs)

	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
