package tremolo

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dave-miller-dev/tremolo/internal/testutil"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"mono", Config{SampleRate: 44100, Channels: 1}, false},
		{"stereo parallel", Config{SampleRate: 48000, Channels: 2, EnableParallel: true}, false},
		{"max channels", Config{SampleRate: 48000, Channels: maxChannels}, false},
		{"zero rate", Config{SampleRate: 0, Channels: 1}, true},
		{"negative rate", Config{SampleRate: -1, Channels: 1}, true},
		{"NaN rate", Config{SampleRate: math.NaN(), Channels: 1}, true},
		{"infinite rate", Config{SampleRate: math.Inf(1), Channels: 1}, true},
		{"no channels", Config{SampleRate: 48000, Channels: 0}, true},
		{"too many channels", Config{SampleRate: 48000, Channels: maxChannels + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewEffect_NilConfig(t *testing.T) {
	_, err := NewEffect[float64](nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewEffect_Defaults(t *testing.T) {
	fx, err := NewEffect[float32](&Config{SampleRate: 44100, Channels: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, fx.Channels())
	assert.InDelta(t, 44100.0, fx.SampleRate(), 0)
	assert.Equal(t, DefaultPreset, fx.CurrentPreset().Number)
	assert.Equal(t, "Slow & Gentle", fx.CurrentPreset().Name)
	assert.Equal(t, fx.CurrentPreset().Params, fx.Parameters().Snapshot())
	assert.NotSame(t, fx.Kernel(0), fx.Kernel(1))
}

func TestEffect_ChannelMismatch(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 2})
	require.NoError(t, err)

	buf := make([]float64, 16)
	err = fx.ProcessMulti([][]float64{buf}, [][]float64{buf, buf}, false)
	assert.ErrorIs(t, err, ErrChannelMismatch)

	err = fx.ProcessMulti([][]float64{buf, buf}, [][]float64{buf, buf, buf}, false)
	assert.ErrorIs(t, err, ErrChannelMismatch)

	// Mono Process needs a mono effect.
	assert.ErrorIs(t, fx.Process(buf, buf, false), ErrChannelMismatch)
	assert.Zero(t, fx.Kernel(0).SamplesProcessed())
}

func TestEffect_ProcessMatchesKernel(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 1})
	require.NoError(t, err)

	input := testutil.Sine(2400, 440, 48000, 0.5)
	got := make([]float64, len(input))
	require.NoError(t, fx.Process(input, got, false))

	k := newTestKernel(t, 48000)
	want := make([]float64, len(input))
	k.Process(input, want, fx.CurrentPreset().Params, false)

	assert.Equal(t, want, got)
}

// TestEffect_ParallelMatchesSequential verifies that parallel processing produces
// bit-identical results.
func TestEffect_ParallelMatchesSequential(t *testing.T) {
	const (
		sampleRate = 44100.0
		channels   = 8
		numSamples = 4410
	)

	src := make([][]float64, channels)
	for ch := range channels {
		// Different phases so channels are distinguishable.
		phase := float64(ch) * math.Pi / 4
		src[ch] = make([]float64, numSamples)
		for i := range numSamples {
			src[ch][i] = math.Sin(2*math.Pi*440*float64(i)/sampleRate + phase)
		}
	}

	run := func(parallel bool) [][]float64 {
		fx, err := NewEffect[float64](&Config{SampleRate: sampleRate, Channels: channels, EnableParallel: parallel})
		if err != nil {
			t.Fatalf("NewEffect failed: %v", err)
		}
		if err := fx.ApplyPreset(PresetFast); err != nil {
			t.Fatalf("ApplyPreset failed: %v", err)
		}

		dst := make([][]float64, channels)
		for ch := range dst {
			dst[ch] = make([]float64, numSamples)
		}
		// Two host buffers to cross a call boundary.
		half := numSamples / 2
		for _, span := range [][2]int{{0, half}, {half, numSamples}} {
			in := make([][]float64, channels)
			out := make([][]float64, channels)
			for ch := range channels {
				in[ch] = src[ch][span[0]:span[1]]
				out[ch] = dst[ch][span[0]:span[1]]
			}
			if err := fx.ProcessMulti(in, out, false); err != nil {
				t.Fatalf("ProcessMulti failed: %v", err)
			}
		}
		return dst
	}

	seq := run(false)
	par := run(true)

	for ch := range channels {
		for i := range seq[ch] {
			if seq[ch][i] != par[ch][i] {
				t.Errorf("Channel %d sample %d mismatch: seq=%v, par=%v", ch, i, seq[ch][i], par[ch][i])
				break
			}
		}
	}
}

// TestEffect_ChannelIndependence verifies a silent channel stays silent and
// both channels share one modulation phase.
func TestEffect_ChannelIndependence(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 2, EnableParallel: true})
	require.NoError(t, err)

	src := [][]float64{make([]float64, 4800), testutil.Sine(4800, 440, 48000, 1)}
	dst := [][]float64{make([]float64, 4800), make([]float64, 4800)}
	require.NoError(t, fx.ProcessMulti(src, dst, false))

	assert.Equal(t, make([]float64, 4800), dst[0])
	assert.Greater(t, floatsMaxAbs(dst[1]), 0.9)
	assert.Equal(t, fx.Kernel(0).SamplesProcessed(), fx.Kernel(1).SamplesProcessed())
	assert.InDelta(t, fx.Kernel(0).CurrentScale(), fx.Kernel(1).CurrentScale(), 0)
}

func TestEffect_SilentBuffer(t *testing.T) {
	fx, err := NewEffect[float32](&Config{SampleRate: 48000, Channels: 2})
	require.NoError(t, err)

	dst := [][]float32{testutil.Fill[float32](32, 3), testutil.Fill[float32](32, 3)}
	src := [][]float32{make([]float32, 32), make([]float32, 32)}
	require.NoError(t, fx.ProcessMulti(src, dst, true))

	assert.Equal(t, testutil.Fill[float32](32, 3), dst[0])
	assert.Equal(t, testutil.Fill[float32](32, 3), dst[1])
	assert.Zero(t, fx.Kernel(0).SamplesProcessed())
}

func TestEffect_ParameterChangeTakesEffect(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 1})
	require.NoError(t, err)

	require.NoError(t, fx.Parameters().Set(ParamDepth, 0))

	input := testutil.Sine(1000, 300, 48000, 1)
	out := make([]float64, len(input))
	require.NoError(t, fx.Process(input, out, false))
	assert.Equal(t, input, out)
}

func TestEffect_ApplyPreset(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 1})
	require.NoError(t, err)

	require.NoError(t, fx.ApplyPreset(PresetFast))
	assert.Equal(t, PresetFast, fx.CurrentPreset().Number)
	assert.Equal(t, Params{Frequency: 20, Depth: 90, Waveform: WaveformSquare}, fx.Parameters().Snapshot())

	err = fx.ApplyPreset(7)
	assert.ErrorIs(t, err, ErrInvalidPreset)
	assert.Equal(t, PresetFast, fx.CurrentPreset().Number)
	assert.Equal(t, WaveformSquare, fx.Parameters().Snapshot().Waveform)
}

func TestEffect_Reset(t *testing.T) {
	fx, err := NewEffect[float64](&Config{SampleRate: 48000, Channels: 3})
	require.NoError(t, err)

	buf := make([]float64, 500)
	bufs := [][]float64{buf, buf, buf}
	require.NoError(t, fx.ProcessMulti(bufs, bufs, false))

	fx.Reset()
	for ch := range fx.Channels() {
		assert.Zero(t, fx.Kernel(ch).SamplesProcessed(), "channel %d", ch)
		assert.Zero(t, fx.Kernel(ch).CurrentScale(), "channel %d", ch)
	}
}

// TestEffect_ConcurrentAutomation writes parameters from one goroutine while
// another processes audio. Run with -race.
func TestEffect_ConcurrentAutomation(t *testing.T) {
	fx, err := NewEffect[float32](&Config{SampleRate: 48000, Channels: 2, EnableParallel: true})
	require.NoError(t, err)

	done := make(chan struct{})
	var g errgroup.Group

	g.Go(func() error {
		store := fx.Parameters()
		for i := 0; ; i++ {
			select {
			case <-done:
				return nil
			default:
			}
			if err := store.Set(ParamFrequency, 0.5+float64(i%40)*0.5); err != nil {
				return err
			}
			if err := store.Set(ParamDepth, float64(i%101)); err != nil {
				return err
			}
			if _, err := store.ApplyPreset(i % 2); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		src := [][]float32{testutil.ToFloat32(testutil.Sine(256, 440, 48000, 1)), testutil.ToFloat32(testutil.Sine(256, 660, 48000, 1))}
		dst := [][]float32{make([]float32, 256), make([]float32, 256)}
		for range 500 {
			if err := fx.ProcessMulti(src, dst, false); err != nil {
				return err
			}
			for ch := range dst {
				for _, v := range dst[ch] {
					if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 1.0001 {
						return fmt.Errorf("channel %d: sample %v out of range", ch, v)
					}
				}
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
}

func floatsMaxAbs(s []float64) float64 {
	var peak float64
	for _, v := range s {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}
