package resample

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-resample/dsp/interp"
	"github.com/cwbudde/algo-resample/internal/arrays"
	"github.com/cwbudde/algo-resample/measure/energy"
)

// DefaultEnergyThreshold is the tolerated relative energy deviation of Resample.
const DefaultEnergyThreshold = 5e-3

var nan = math.NaN()

type config struct {
	order     int
	policy    Policy
	threshold float64
	check     bool
	verbose   bool
	logger    *slog.Logger
}

// Option configures the resampler.
type Option func(*config)

// WithOrder sets the spline degree: 1 is piecewise linear, 3 is cubic.
func WithOrder(k int) Option {
	return func(cfg *config) {
		cfg.order = k
	}
}

// WithPolicy selects the extrapolation policy.
func WithPolicy(p Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

// WithEnergyThreshold sets the tolerated |ratio-1|. Zero disables the check.
func WithEnergyThreshold(t float64) Option {
	return func(cfg *config) {
		cfg.threshold = t
		cfg.check = true
	}
}

// WithoutEnergyCheck disables the conservation check. The report is still
// computed.
func WithoutEnergyCheck() Option {
	return func(cfg *config) {
		cfg.check = false
	}
}

// WithVerbose toggles the informational conservation log line.
func WithVerbose(v bool) Option {
	return func(cfg *config) {
		cfg.verbose = v
	}
}

// WithLogger sets the logger used for the conservation report and fill
// details. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func defaultConfig() config {
	return config{
		order:     1,
		policy:    PolicyError,
		threshold: DefaultEnergyThreshold,
		check:     true,
		verbose:   true,
	}
}

func (c config) validate() error {
	if c.order < 1 || c.order > interp.MaxDegree {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, c.order)
	}

	if !c.policy.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPolicy, int(c.policy))
	}

	if c.check && (math.IsNaN(c.threshold) || c.threshold < 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.threshold)
	}

	return nil
}

func (c config) finalized() config {
	if c.threshold == 0 {
		c.check = false
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.logger = c.logger.With("component", "resample")

	return c
}

// Resampler maps tabulated functions onto new grids. It holds no mutable
// state and is safe for concurrent use.
type Resampler struct {
	cfg config
}

// Result is the output of a resampling.
type Result struct {
	// Values aligns index-for-index with the requested grid.
	Values []float64
	// Report describes the energy-conservation check.
	Report energy.Report
}

// New creates a resampler. Defaults: order 1, PolicyError, threshold
// DefaultEnergyThreshold, verbose.
func New(opts ...Option) (*Resampler, error) {
	return newResampler(defaultConfig(), opts)
}

func newResampler(cfg config, opts []Option) (*Resampler, error) {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Resampler{cfg: cfg.finalized()}, nil
}

// Resample evaluates (x, v) on xNew. See the package documentation.
func Resample(x, v, xNew []float64, opts ...Option) ([]float64, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	res, err := r.Resample(x, v, xNew)
	if err != nil {
		return nil, err
	}

	return res.Values, nil
}

// Resample evaluates the function sampled by (x, v) at every point of xNew.
// x must be strictly monotonic in either direction; xNew may be in any
// order. The caller's slices are never modified.
func (r *Resampler) Resample(x, v, xNew []float64) (Result, error) {
	if len(x) != len(v) {
		return Result{}, &LengthMismatchError{LenX: len(x), LenV: len(v)}
	}

	var descending bool

	switch {
	case arrays.IsStrictlyAscending(x):
	case arrays.IsStrictlyDescending(x):
		descending = true
	default:
		return Result{}, ErrUnsorted
	}

	// Work on an ascending copy. Targets are evaluated in the caller's order,
	// so the output needs no reversal afterwards.
	xs, vs := x, v
	if descending {
		xs = arrays.Reversed(x)
		vs = arrays.Reversed(v)
	}

	first, last := arrays.FirstFinite(vs), arrays.LastFinite(vs)
	if first < 0 {
		return Result{}, ErrAllNaN
	}

	xs, vs = xs[first:last+1], vs[first:last+1]

	if n := arrays.CountNaN(vs); n > 0 {
		return Result{}, &InteriorNaNError{Count: n}
	}

	spline, err := interp.Fit(xs, vs, r.cfg.order)
	if err != nil {
		return Result{}, &SplineFitError{
			X:     clone(xs),
			V:     clone(vs),
			Order: r.cfg.order,
			Err:   err,
		}
	}

	out, err := spline.Eval(make([]float64, len(xNew)), xNew, r.cfg.policy.extrapolation())
	if err != nil {
		var de *interp.DomainError
		if errors.As(err, &de) {
			return Result{}, &OutOfDomainError{Index: de.Index, X: de.X, Min: de.Min, Max: de.Max}
		}

		return Result{}, err
	}

	if fill, ok := r.cfg.policy.overwrite(); ok {
		r.fillOutside(out, xNew, xs, fill)
	}

	threshold := 0.0
	if r.cfg.check {
		threshold = r.cfg.threshold
	}

	report := energy.Compare(xs, vs, xNew, out, threshold)
	if !report.WithinTolerance {
		return Result{}, &EnergyConservationError{
			Report: report,
			X:      clone(xs),
			V:      clone(vs),
			XNew:   clone(xNew),
			VNew:   out,
		}
	}

	if r.cfg.verbose {
		r.cfg.logger.Info("resampling energy conservation",
			"percent", report.Percent(),
			"points", len(xNew))
	}

	return Result{Values: out, Report: report}, nil
}

// fillOutside overwrites every target outside [xs[0], xs[len-1]] with fill.
func (r *Resampler) fillOutside(out, xNew, xs []float64, fill float64) {
	lo, hi := xs[0], xs[len(xs)-1]
	filled := 0

	for i, t := range xNew {
		if !(t >= lo && t <= hi) {
			out[i] = fill
			filled++
		}
	}

	r.cfg.logger.Debug("filled targets outside domain",
		"value", fill,
		"min", lo,
		"max", hi,
		"count", filled)
}

// Order returns the spline degree.
func (r *Resampler) Order() int {
	return r.cfg.order
}

// Policy returns the extrapolation policy.
func (r *Resampler) Policy() Policy {
	return r.cfg.policy
}

// EnergyThreshold returns the enforced threshold, or 0 when the check is
// disabled.
func (r *Resampler) EnergyThreshold() float64 {
	if !r.cfg.check {
		return 0
	}

	return r.cfg.threshold
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	return out
}
