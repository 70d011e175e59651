package wavetable

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Harmonics returns the single-sided amplitude of harmonics 0..count-1 of
// one table cycle. Index 0 is the DC level, index k the amplitude of the
// k-th harmonic, so a pure sine A·sin(x)+C yields [C, A, 0, ...].
//
// count is capped at len(values)/2+1, the number of unique real-FFT bins.
func Harmonics(values []float64, count int) []float64 {
	n := len(values)
	if n == 0 || count <= 0 {
		return nil
	}

	bins := n/2 + 1
	count = min(count, bins)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, values)

	out := make([]float64, count)
	scale := 1.0 / float64(n)
	for k := range count {
		mag := math.Hypot(real(coeffs[k]), imag(coeffs[k])) * scale
		// Non-DC, non-Nyquist bins carry half the energy on each side.
		if k != 0 && !(n%2 == 0 && k == n/2) {
			mag *= 2
		}
		out[k] = mag
	}

	return out
}
