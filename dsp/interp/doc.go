// Package interp provides the spline primitives used by the resampler.
//
// [Fit] builds an interpolating B-spline of degree 1 to [MaxDegree] through
// strictly increasing abscissas:
//
//   - degree 1: piecewise linear
//   - degree 3: cubic with not-a-knot end conditions (good default)
//   - even degrees: knots placed midway between samples
//
// The knot placement follows the FITPACK interpolation scheme (smoothing
// factor zero), so results agree with tools built on that library.
//
// [Spline.Eval] evaluates on arbitrary abscissas. The [Extrapolation] mode
// selects what happens outside the fitted domain: polynomial continuation of
// the boundary pieces, zero, or an error.
package interp
