package main

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave-miller-dev/tremolo"
)

func decodeFrames(buf []byte) (left, right []int16) {
	for i := 0; i+bytesPerFrame <= len(buf); i += bytesPerFrame {
		left = append(left, int16(binary.LittleEndian.Uint16(buf[i:])))
		right = append(right, int16(binary.LittleEndian.Uint16(buf[i+bitDepthInBytes:])))
	}
	return left, right
}

func TestToneSource_ZeroDepthIsPlainTone(t *testing.T) {
	fx := newTestEffect(t)
	require.NoError(t, configure(fx, 5, 0, "sine", ""))

	src := newToneSource(context.Background(), fx, 1000, 0.5)
	buf := make([]byte, bufferSizeInBytes)
	n, err := src.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	left, right := decodeFrames(buf)
	require.Len(t, left, bufferFrames)
	assert.Equal(t, left, right)

	for i, v := range left {
		want := math.Round(float64(float32(0.5*math.Sin(2*math.Pi*1000*float64(i)/sampleRate))) * maxInt16)
		require.InDelta(t, want, float64(v), 1, "frame %d", i)
	}
}

func TestToneSource_ModulationContinuesAcrossReads(t *testing.T) {
	fx := newTestEffect(t)
	require.NoError(t, configure(fx, 0, 0, "", "fast"))

	src := newToneSource(context.Background(), fx, 440, 1)
	for range 3 {
		_, err := src.Read(make([]byte, 100*bytesPerFrame))
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(300), fx.Kernel(0).SamplesProcessed())
	assert.Equal(t, uint64(300), fx.Kernel(1).SamplesProcessed())
}

func TestToneSource_PartialFrameAndLargeBuffer(t *testing.T) {
	src := newToneSource(context.Background(), newTestEffect(t), 440, 0.5)

	n, err := src.Read(make([]byte, 4*bytesPerFrame+3))
	require.NoError(t, err)
	assert.Equal(t, 4*bytesPerFrame, n)

	n, err = src.Read(make([]byte, 3*bufferSizeInBytes))
	require.NoError(t, err)
	assert.Equal(t, 3*bufferSizeInBytes, n)
}

func TestToneSource_EOFWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := newToneSource(ctx, newTestEffect(t), 440, 0.5)
	cancel()

	n, err := src.Read(make([]byte, bufferSizeInBytes))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteSample_Clamps(t *testing.T) {
	buf := make([]byte, 2)
	writeSample(buf, 2)
	assert.Equal(t, int16(maxInt16), int16(binary.LittleEndian.Uint16(buf)))

	writeSample(buf, -2)
	assert.Equal(t, int16(-maxInt16), int16(binary.LittleEndian.Uint16(buf)))
}

func TestConfigure(t *testing.T) {
	fx := newTestEffect(t)

	require.NoError(t, configure(fx, 3, 40, "Square", ""))
	assert.Equal(t, tremolo.Params{Frequency: 3, Depth: 40, Waveform: tremolo.WaveformSquare}, fx.Parameters().Snapshot())

	require.NoError(t, configure(fx, 3, 40, "sine", "slow"))
	assert.Equal(t, tremolo.PresetSlow, fx.CurrentPreset().Number)

	assert.ErrorIs(t, configure(fx, 3, 40, "sine", "medium"), tremolo.ErrInvalidPreset)
	assert.Error(t, configure(fx, 3, 40, "triangle", ""))
}
