package tremolo

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Config holds effect configuration.
type Config struct {
	// SampleRate is the sample rate of the audio in Hz.
	SampleRate float64

	// Channels is the number of audio channels to process.
	// Each channel gets its own kernel and phase.
	Channels int

	// EnableParallel enables parallel channel processing.
	// When true, channels are processed concurrently using goroutines.
	// Has no effect on mono audio.
	EnableParallel bool
}

// Common errors returned by the effect.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid tremolo configuration")

	// ErrChannelMismatch indicates buffers that do not match the channel count.
	ErrChannelMismatch = errors.New("channel count mismatch")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	return nil
}

// Effect applies tremolo to multi-channel audio.
//
// All channels share one parameter store. Every processing call takes a
// single snapshot of it, so all channels of a buffer see the same values.
// Effect methods other than Parameters, ApplyPreset and CurrentPreset must
// be called from one goroutine.
type Effect[F Float] struct {
	config  Config
	kernels []*Kernel[F]
	params  *ParameterStore
	preset  atomic.Int64
}

// NewEffect creates an effect with the specified configuration. Parameters
// start at the default preset.
func NewEffect[F Float](config *Config) (*Effect[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Effect[F]{
		config:  *config,
		kernels: make([]*Kernel[F], config.Channels),
		params:  NewParameterStore(),
	}

	for ch := range e.kernels {
		k, err := NewKernel[F](config.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("failed to create kernel for channel %d: %w", ch, err)
		}
		e.kernels[ch] = k
	}

	if err := e.ApplyPreset(DefaultPreset); err != nil {
		return nil, err
	}

	return e, nil
}

// ProcessMulti processes one buffer per channel. src[ch] is read and dst[ch]
// written; they may alias. When EnableParallel is set, channels are
// processed concurrently.
func (e *Effect[F]) ProcessMulti(src, dst [][]F, silent bool) error {
	if len(src) != len(e.kernels) || len(dst) != len(e.kernels) {
		return fmt.Errorf("%w: expected %d channels, got %d in and %d out",
			ErrChannelMismatch, len(e.kernels), len(src), len(dst))
	}

	p := e.params.Snapshot()

	if !e.config.EnableParallel || len(e.kernels) == 1 {
		for ch, k := range e.kernels {
			k.Process(src[ch], dst[ch], p, silent)
		}
		return nil
	}

	var g errgroup.Group
	for ch, k := range e.kernels {
		g.Go(func() error {
			k.Process(src[ch], dst[ch], p, silent)
			return nil
		})
	}
	return g.Wait()
}

// Process processes a buffer of a mono effect.
func (e *Effect[F]) Process(src, dst []F, silent bool) error {
	if len(e.kernels) != 1 {
		return fmt.Errorf("%w: Process needs a mono effect, have %d channels",
			ErrChannelMismatch, len(e.kernels))
	}
	e.kernels[0].Process(src, dst, e.params.Snapshot(), silent)
	return nil
}

// Reset restarts the modulation of every channel.
func (e *Effect[F]) Reset() {
	for _, k := range e.kernels {
		k.Reset()
	}
}

// Parameters returns the store the effect reads its parameters from. It is
// safe to write from any goroutine.
func (e *Effect[F]) Parameters() *ParameterStore {
	return e.params
}

// ApplyPreset loads factory preset number into the parameter store.
func (e *Effect[F]) ApplyPreset(number int) error {
	if _, err := e.params.ApplyPreset(number); err != nil {
		return err
	}
	e.preset.Store(int64(number))
	return nil
}

// CurrentPreset returns the most recently applied factory preset. Parameter
// edits after that are not reflected.
func (e *Effect[F]) CurrentPreset() Preset {
	preset, err := LookupPreset(int(e.preset.Load()))
	if err != nil {
		return factoryPresets[DefaultPreset]
	}
	return preset
}

// Channels returns the channel count.
func (e *Effect[F]) Channels() int {
	return len(e.kernels)
}

// SampleRate returns the configured sample rate.
func (e *Effect[F]) SampleRate() float64 {
	return e.config.SampleRate
}

// Kernel returns the kernel of channel ch. It panics if ch is out of range.
func (e *Effect[F]) Kernel(ch int) *Kernel[F] {
	return e.kernels[ch]
}
