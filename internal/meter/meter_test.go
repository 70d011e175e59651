package meter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dave-miller-dev/tremolo/internal/testutil"
)

func TestMeasure_Sine(t *testing.T) {
	// 100 Hz at 48 kHz: 480 samples per cycle, 10 whole cycles.
	s := testutil.Sine(4800, 100, 48000, 0.5)

	l := Measure(s)
	assert.InDelta(t, 0.5, l.Peak, 1e-9)
	assert.InDelta(t, 0.5/math.Sqrt2, l.RMS, 1e-9)
	assert.InDelta(t, 0.0, l.DC, 1e-12)
}

func TestMeasure_NegativePeak(t *testing.T) {
	l := Measure([]float64{0.1, -0.8, 0.3})
	assert.InDelta(t, 0.8, l.Peak, 0)
	assert.InDelta(t, -0.4/3, l.DC, 1e-12)
}

func TestMeasure_Empty(t *testing.T) {
	assert.Equal(t, Levels{}, Measure(nil))
}

func TestAccumulator_MatchesWholeStream(t *testing.T) {
	s := testutil.Sine(3000, 440, 44100, 0.9)
	want := Measure(s)

	var acc Accumulator
	for start := 0; start < len(s); start += 512 {
		acc.Add(s[start:min(start+512, len(s))])
	}
	acc.Add(nil)

	got := acc.Levels()
	assert.Equal(t, len(s), acc.Count())
	assert.InDelta(t, want.Peak, got.Peak, 0)
	assert.InDelta(t, want.RMS, got.RMS, 1e-12)
	assert.InDelta(t, want.DC, got.DC, 1e-12)
}

func TestAccumulator_Empty(t *testing.T) {
	var acc Accumulator
	assert.Equal(t, Levels{}, acc.Levels())
}

func TestDBFS(t *testing.T) {
	assert.InDelta(t, 0.0, DBFS(1), 1e-12)
	assert.InDelta(t, -6.0206, DBFS(0.5), 1e-4)
	assert.True(t, math.IsInf(DBFS(0), -1))
}

func TestIsSilent(t *testing.T) {
	assert.True(t, IsSilent([]float64{0, 0, 0}))
	assert.True(t, IsSilent([]float32{}))
	assert.False(t, IsSilent([]float32{0, 1e-30, 0}))
}
