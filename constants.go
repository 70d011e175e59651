package tremolo

// Wavetable and phase constants
const (
	// TableSize is the number of wavetable entries per modulation cycle.
	TableSize = 2000

	sampleLimit = 10_000_000 // sample count at which the phase counter restarts
)

// Parameter ranges and defaults
const (
	MinFrequency     = 0.5
	MaxFrequency     = 20.0
	DefaultFrequency = 2.0

	MinDepth     = 0.0
	MaxDepth     = 100.0
	DefaultDepth = 50.0

	DefaultWaveform = WaveformSine
)

// Gain formula constants
const (
	fullScalePercent = 100.0
	percentToGain    = 0.01
)

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)
