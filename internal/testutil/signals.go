package testutil

import (
	"math"
	"math/rand"
)

// Grid returns n abscissas starting at start with constant spacing step.
// A negative step gives a descending grid.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// JitteredGrid returns an ascending grid whose spacing varies pseudo-randomly
// in [step/2, 3*step/2] with a fixed seed.
func JitteredGrid(seed int64, start, step float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	x := start
	for i := range out {
		out[i] = x
		x += step * (0.5 + rng.Float64())
	}
	return out
}

// Sample evaluates f at every abscissa.
func Sample(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// Gaussian returns a unit-height Gaussian line shape centred on mu.
func Gaussian(mu, sigma float64) func(float64) float64 {
	return func(x float64) float64 {
		d := (x - mu) / sigma
		return math.Exp(-0.5 * d * d)
	}
}

// Sine returns x -> amplitude*sin(2*pi*freq*x).
func Sine(freq, amplitude float64) func(float64) float64 {
	return func(x float64) float64 {
		return amplitude * math.Sin(2*math.Pi*freq*x)
	}
}

// Clone returns a copy of x.
func Clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
