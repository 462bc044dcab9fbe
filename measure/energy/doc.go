// Package energy measures how well a resampling preserves the area under a
// sampled curve.
//
// The energy of a tabulated function is the absolute value of its
// trapezoidal integral. Two tabulations of the same signal are compared on
// their common domain only:
//
//   - the original samples whose abscissa lies within the new grid's range
//   - the new samples whose abscissa lies within the original range
//
// # Usage
//
//	r := energy.Compare(x, v, xNew, vNew, 5e-3)
//	if !r.WithinTolerance {
//		fmt.Printf("conservation %.3f%%\n", r.Percent())
//	}
package energy
