package main

// Default command-line flag values
const (
	defaultFrequency = 2.0  // Hz
	defaultDepth     = 50.0 // percent
	defaultWaveform  = "sine"
	defaultBlockSize = 512 // frames per host buffer
	minRequiredArgs  = 2
	noPreset         = -1
)

// Sample format constants
const (
	wavFormatPCM    = 1
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// Progress reporting
const (
	progressInterval = 10 // Log progress every N%
	percentScale     = 100
)
