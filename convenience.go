package tremolo

import "github.com/dave-miller-dev/tremolo/internal/simdops"

// ApplyMono is a convenience function for one-shot mono processing.
// It creates a fresh kernel, so the modulation starts at the beginning of a
// cycle.
func ApplyMono(input []float64, sampleRate float64, p Params) ([]float64, error) {
	k, err := NewKernel[float64](sampleRate)
	if err != nil {
		return nil, err
	}

	output := make([]float64, len(input))
	k.Process(input, output, p, false)
	return output, nil
}

// ApplyStereo is a convenience function for one-shot stereo processing.
// Both channels are modulated in phase by independent kernels.
func ApplyStereo(left, right []float64, sampleRate float64, p Params) (leftOut, rightOut []float64, err error) {
	leftOut, err = ApplyMono(left, sampleRate, p)
	if err != nil {
		return nil, nil, err
	}

	rightOut, err = ApplyMono(right, sampleRate, p)
	if err != nil {
		return nil, nil, err
	}

	return leftOut, rightOut, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo[F Float](left, right []F) []F {
	minLen := min(len(left), len(right))
	result := make([]F, minLen*stereoChannels)
	if minLen > 0 {
		simdops.For[F]().Interleave2(result, left[:minLen], right[:minLen])
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo[F Float](interleaved []F) (left, right []F) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]F, numSamples)
	right = make([]F, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
