package testutil

import "math"

// Sine returns n samples of amplitude·sin(2π·freq·i/sampleRate).
func Sine(n int, freq, sampleRate, amplitude float64) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(omega*float64(i))
	}
	return out
}

// Constant returns n samples of value. A constant 1.0 input makes a gain
// stage's output equal to its gain curve.
func Constant(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Fill returns n copies of value, used to pre-poison output buffers.
func Fill[F float32 | float64](n int, value F) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// ToFloat32 converts a float64 slice.
func ToFloat32(s []float64) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}
