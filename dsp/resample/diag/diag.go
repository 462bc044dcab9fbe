// Package diag extracts the sample arrays carried by resampling failures and
// hands them to a diagnostics sink, for example a PostScript plot.
//
// Diagnostics are best effort. A failing or panicking sink never changes the
// error the caller returns.
package diag

import (
	"errors"

	"github.com/cwbudde/algo-resample/dsp/resample"
)

// Arrays holds the data attached to a failure. XNew and VNew are nil for
// spline fit failures.
type Arrays struct {
	X, V       []float64
	XNew, VNew []float64
}

// Empty reports whether a carries no samples at all.
func (a Arrays) Empty() bool {
	return len(a.X) == 0 && len(a.XNew) == 0
}

// FromError extracts the arrays of a *resample.SplineFitError or
// *resample.EnergyConservationError anywhere in err's chain.
func FromError(err error) (Arrays, bool) {
	var fe *resample.SplineFitError
	if errors.As(err, &fe) {
		return Arrays{X: fe.X, V: fe.V}, true
	}

	var ee *resample.EnergyConservationError
	if errors.As(err, &ee) {
		return Arrays{X: ee.X, V: ee.V, XNew: ee.XNew, VNew: ee.VNew}, true
	}

	return Arrays{}, false
}

// Sink receives the arrays of a failed resampling.
type Sink interface {
	OnFailure(a Arrays)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Arrays)

// OnFailure calls f(a).
func (f SinkFunc) OnFailure(a Arrays) { f(a) }

// Notify passes the arrays carried by err to sink. It reports whether the
// sink ran to completion; a panic inside the sink is recovered and yields
// false.
func Notify(err error, sink Sink) (ok bool) {
	if err == nil || sink == nil {
		return false
	}

	a, found := FromError(err)
	if !found {
		return false
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	sink.OnFailure(a)

	return true
}
