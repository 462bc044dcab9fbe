// Package resample maps a tabulated function onto a new abscissa grid by
// spline interpolation and verifies that the area under the curve is
// conserved.
//
// The input abscissas may run in either direction; the output always lines
// up index-for-index with the requested grid. Leading and trailing NaN runs in
// the values are trimmed before fitting. Interior NaNs are rejected.
//
// Extrapolation policies:
//   - PolicyError: any target outside the input domain fails (default)
//   - PolicyExtrapolate: continue the boundary spline pieces
//   - PolicyFillZero, PolicyFillOne, PolicyFillNaN: constant outside the domain
//
// After evaluation the trapezoidal energy of the input and of the output are
// compared on their common domain. A relative deviation above the energy
// threshold is reported as an [EnergyConservationError], which carries every
// array needed to plot the failure (see package diag).
//
// Common workflows:
//   - Resample(x, v, xNew, opts...)
//   - ResampleEven(x, v, factor, opts...) onto an evenly spaced grid
//   - New(opts...) for a reusable, concurrency-safe Resampler
package resample
