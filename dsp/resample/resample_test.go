package resample

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-resample/dsp/interp"
	"github.com/cwbudde/algo-resample/internal/arrays"
	"github.com/cwbudde/algo-resample/internal/testutil"
)

func quiet() Option { return WithVerbose(false) }

func TestResampleIdentity(t *testing.T) {
	x := testutil.JitteredGrid(3, -2, 0.3, 50)
	v := testutil.Sample(x, testutil.Sine(0.2, 3))

	got, err := Resample(x, v, x, WithPolicy(PolicyExtrapolate), quiet())
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, v, 1e-12)

	xd, vd := arrays.Reversed(x), arrays.Reversed(v)
	got, err = Resample(xd, vd, xd, WithPolicy(PolicyExtrapolate), quiet())
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, vd, 1e-12)
}

func TestResampleReversalSymmetry(t *testing.T) {
	x := testutil.Grid(0, 0.25, 40)
	v := testutil.Sample(x, testutil.Gaussian(5, 1.5))
	xNew := testutil.Grid(-0.5, 0.1, 110)

	for _, order := range []int{1, 2, 3, 5} {
		r, err := New(WithOrder(order), WithPolicy(PolicyFillNaN), WithoutEnergyCheck(), quiet())
		require.NoError(t, err)

		fwd, err := r.Resample(x, v, xNew)
		require.NoError(t, err)

		rev, err := r.Resample(arrays.Reversed(x), arrays.Reversed(v), arrays.Reversed(xNew))
		require.NoError(t, err)

		testutil.RequireSliceNearlyEqual(t, arrays.Reversed(rev.Values), fwd.Values, 1e-15)
		assert.InDelta(t, fwd.Report.Ratio, rev.Report.Ratio, 1e-12, "order %d", order)
	}
}

func TestResampleDoesNotModifyInputs(t *testing.T) {
	x := []float64{4, 3, 2, 1, 0}
	v := []float64{math.NaN(), 9, 4, 1, 0}
	xNew := []float64{0.5, 1.5, 2.5}

	xs, vs, xNews := testutil.Clone(x), testutil.Clone(v), testutil.Clone(xNew)

	_, err := Resample(x, v, xNew, WithOrder(3), WithoutEnergyCheck(), quiet())
	require.NoError(t, err)

	testutil.RequireUnchanged(t, x, xs)
	testutil.RequireUnchanged(t, v, vs)
	testutil.RequireUnchanged(t, xNew, xNews)
}

func TestResampleEnergyConservedOnSmoothInput(t *testing.T) {
	x := testutil.Grid(0, 0.05, 201)
	v := testutil.Sample(x, testutil.Gaussian(5, 1))

	for _, order := range []int{1, 3} {
		for _, factor := range []float64{1, 1.5, 2, 4} {
			r, err := New(WithOrder(order), WithEnergyThreshold(DefaultEvenEnergyThreshold), quiet())
			require.NoError(t, err)

			xNew, res, err := r.ResampleEven(x, v, factor)
			require.NoError(t, err, "order %d factor %v", order, factor)
			assert.Len(t, res.Values, len(xNew))
			assert.LessOrEqual(t, res.Report.Deviation(), 1e-3, "order %d factor %v", order, factor)
			assert.True(t, res.Report.Checked)
		}
	}
}

func TestResampleTrimsNaNRuns(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	v := []float64{math.NaN(), 1, 2, 3}
	xNew := []float64{1, 1.5, 2, 2.5, 3}

	got, err := Resample(x, v, xNew, quiet())
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 1.5, 2, 2.5, 3}, 1e-12)

	_, err = Resample(x, v, []float64{0.5}, quiet())
	var de *OutOfDomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1.0, de.Min)
}

func TestResampleInteriorNaN(t *testing.T) {
	_, err := Resample([]float64{0, 1, 2, 3}, []float64{math.NaN(), 1, math.NaN(), 3}, []float64{1, 2}, quiet())

	var ne *InteriorNaNError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 1, ne.Count)
	assert.ErrorIs(t, err, ErrInteriorNaN)
}

func TestResampleAllNaN(t *testing.T) {
	nan := math.NaN()
	_, err := Resample([]float64{0, 1, 2}, []float64{nan, nan, nan}, []float64{1}, quiet())
	require.ErrorIs(t, err, ErrAllNaN)

	_, err = Resample(nil, nil, []float64{1}, quiet())
	require.ErrorIs(t, err, ErrAllNaN)
}

func TestResampleLengthMismatch(t *testing.T) {
	_, err := Resample([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 2, 3}, []float64{1}, quiet())

	var le *LengthMismatchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 5, le.LenX)
	assert.Equal(t, 4, le.LenV)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestResampleUnsorted(t *testing.T) {
	for _, x := range [][]float64{
		{0, 2, 1},
		{0, 1, 1, 2},
		{0, math.NaN(), 2},
	} {
		_, err := Resample(x, make([]float64, len(x)), []float64{1}, quiet())
		assert.ErrorIs(t, err, ErrUnsorted, "x=%v", x)
	}
}

func TestResamplePolicies(t *testing.T) {
	x := []float64{0, 1, 2}
	v := []float64{1, 2, 3}
	xNew := []float64{-1, 0, 1, 2, 3}
	nan := math.NaN()

	tests := []struct {
		policy Policy
		want   []float64
	}{
		{PolicyExtrapolate, []float64{0, 1, 2, 3, 4}},
		{PolicyFillZero, []float64{0, 1, 2, 3, 0}},
		{PolicyFillOne, []float64{1, 1, 2, 3, 1}},
		{PolicyFillNaN, []float64{nan, 1, 2, 3, nan}},
	}

	for _, tc := range tests {
		t.Run(tc.policy.String(), func(t *testing.T) {
			got, err := Resample(x, v, xNew, WithPolicy(tc.policy), quiet())
			require.NoError(t, err)
			testutil.RequireSliceNearlyEqual(t, got, tc.want, 1e-12)
		})
	}

	one, err := Resample(x, v, xNew, WithPolicy(PolicyFillOne), quiet())
	require.NoError(t, err)
	assert.Equal(t, 1.0, one[0])
	assert.Equal(t, 1.0, one[4])
}

func TestResamplePolicyErrorReportsCallerIndex(t *testing.T) {
	_, err := Resample([]float64{2, 1, 0}, []float64{4, 1, 0}, []float64{0.5, 3, -1}, quiet())

	var de *OutOfDomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Index)
	assert.Equal(t, 3.0, de.X)
	assert.Equal(t, 0.0, de.Min)
	assert.Equal(t, 2.0, de.Max)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestResampleSplineFitError(t *testing.T) {
	nan := math.NaN()
	_, err := Resample([]float64{0, 1, 2, 3}, []float64{nan, nan, 1, 2}, []float64{2.5}, WithOrder(3), quiet())

	var fe *SplineFitError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []float64{2, 3}, fe.X)
	assert.Equal(t, []float64{1, 2}, fe.V)
	assert.Equal(t, 3, fe.Order)
	assert.ErrorIs(t, err, ErrSplineFit)
	assert.ErrorIs(t, err, interp.ErrTooFewPoints)
}

func TestResampleEnergyConservationError(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	v := []float64{0, 1, 0, 1, 0}
	xNew := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}

	_, err := Resample(x, v, xNew, WithOrder(3), quiet())

	var ee *EnergyConservationError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrEnergyConservation)
	assert.False(t, ee.Report.WithinTolerance)
	assert.Equal(t, DefaultEnergyThreshold, ee.Report.Threshold)
	assert.Equal(t, x, ee.X)
	assert.Equal(t, v, ee.V)
	assert.Equal(t, xNew, ee.XNew)
	assert.Len(t, ee.VNew, len(xNew))
	assert.Contains(t, err.Error(), "tolerance")
}

func TestResampleEmptyGrid(t *testing.T) {
	r, err := New(quiet())
	require.NoError(t, err)

	res, err := r.Resample([]float64{0, 1}, []float64{1, 1}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Equal(t, 1.0, res.Report.Ratio)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{name: "order zero", opts: []Option{WithOrder(0)}, want: ErrInvalidOrder},
		{name: "order six", opts: []Option{WithOrder(6)}, want: ErrInvalidOrder},
		{name: "policy", opts: []Option{WithPolicy(Policy(9))}, want: ErrUnknownPolicy},
		{name: "negative threshold", opts: []Option{WithEnergyThreshold(-1)}, want: ErrInvalidThreshold},
		{name: "nan threshold", opts: []Option{WithEnergyThreshold(math.NaN())}, want: ErrInvalidThreshold},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewDefaultsAndAccessors(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Order())
	assert.Equal(t, PolicyError, r.Policy())
	assert.Equal(t, DefaultEnergyThreshold, r.EnergyThreshold())

	r, err = New(WithEnergyThreshold(0))
	require.NoError(t, err)
	assert.Zero(t, r.EnergyThreshold())

	r, err = New(WithoutEnergyCheck(), WithOrder(3), WithPolicy(PolicyFillNaN))
	require.NoError(t, err)
	assert.Zero(t, r.EnergyThreshold())
	assert.Equal(t, 3, r.Order())
	assert.Equal(t, PolicyFillNaN, r.Policy())
}

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	x := []float64{0, 1, 2}
	v := []float64{1, 2, 3}

	_, err := Resample(x, v, []float64{-1, 0, 0.5, 1, 1.5, 2, 3}, WithPolicy(PolicyFillOne), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "resampling energy conservation")
	assert.Contains(t, out, "percent=")
	assert.Contains(t, out, "component=resample")
	assert.Contains(t, out, "filled targets outside domain")
	assert.Contains(t, out, "count=2")

	buf.Reset()
	_, err = Resample(x, v, []float64{0, 0.5, 1, 1.5, 2}, WithLogger(logger), WithVerbose(false))
	require.NoError(t, err)
	assert.False(t, strings.Contains(buf.String(), "energy conservation"))
}

func TestResamplerConcurrentUse(t *testing.T) {
	x := testutil.Grid(0, 0.1, 100)
	v := testutil.Sample(x, testutil.Sine(0.15, 1))
	xNew := testutil.Grid(0, 0.05, 199)

	r, err := New(WithOrder(3), WithoutEnergyCheck(), quiet())
	require.NoError(t, err)

	want, err := r.Resample(x, v, xNew)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Resample(x, v, xNew)
			if err != nil {
				errs <- err
				return
			}
			for i := range got.Values {
				if got.Values[i] != want.Values[i] {
					errs <- errors.New("concurrent result differs")
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}
