package main

// Output device format
const (
	sampleRate        = 48000
	channelNum        = 2
	bitDepthInBytes   = 2
	bytesPerFrame     = bitDepthInBytes * channelNum
	bufferFrames      = 1024
	bufferSizeInBytes = bufferFrames * bytesPerFrame // should be >= 4096
	maxInt16          = 32767
)

// Default command-line flag values
const (
	defaultTone      = 220.0 // Hz
	defaultAmplitude = 0.5
	defaultFrequency = 5.0
	defaultDepth     = 70.0
	defaultWaveform  = "sine"
)

// MIDI message layout
const (
	midiStatusMask     = 0xF0
	midiControlChange  = 0xB0
	midiProgramChange  = 0xC0
	midiMaxValue       = 127.0
	midiWaveformSplit  = 64
	midiMessageBufSize = 256

	ccDepth     = 1 // modulation wheel
	ccFrequency = 2 // breath controller
	ccWaveform  = 3
)
