package tremolo

import (
	"fmt"
	"math"

	"github.com/dave-miller-dev/tremolo/internal/phase"
	"github.com/dave-miller-dev/tremolo/internal/wavetable"
)

// Float is the type constraint for supported sample types.
type Float interface {
	float32 | float64
}

// Kernel modulates the amplitude of one channel.
//
// A kernel owns its wavetables and phase. It keeps the phase across calls so
// consecutive buffers form one continuous modulation. A Kernel is not safe
// for concurrent use.
type Kernel[F Float] struct {
	sampleRate float64
	bank       *wavetable.Bank
	phase      *phase.Accumulator
}

// NewKernel creates a kernel for audio at sampleRate Hz.
func NewKernel[F Float](sampleRate float64) (*Kernel[F], error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidConfig, sampleRate)
	}

	bank, err := wavetable.NewBank(TableSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build wavetables: %w", err)
	}

	return &Kernel[F]{
		sampleRate: sampleRate,
		bank:       bank,
		phase:      phase.NewAccumulator(TableSize, sampleLimit),
	}, nil
}

// Process writes src scaled by the modulation gain into dst.
//
// It processes min(len(src), len(dst)) samples. src and dst may be the same
// slice. p is read once per call and clamped into range; a new frequency
// takes effect at the next cycle start. If silent is true, Process returns
// without touching dst or advancing the phase.
func (k *Kernel[F]) Process(src, dst []F, p Params, silent bool) {
	if silent {
		return
	}

	p = p.Clamped()
	samplesPerCycle := k.sampleRate / p.Frequency
	k.phase.Request(TableSize / samplesPerCycle)

	table := k.bank.Table(shapeOf(p.Waveform))
	depth := p.Depth

	n := min(len(src), len(dst))
	for i := range n {
		raw := table.At(k.phase.Next())
		gain := (raw*depth - depth + fullScalePercent) * percentToGain
		dst[i] = src[i] * F(gain)
	}
}

// Reset restarts the modulation. The next processed sample adopts the
// frequency of that call immediately and starts a new cycle.
func (k *Kernel[F]) Reset() {
	k.phase.Reset()
}

// SampleRate returns the sample rate given at construction.
func (k *Kernel[F]) SampleRate() float64 {
	return k.sampleRate
}

// SamplesProcessed returns the number of samples since the phase counter
// last restarted.
func (k *Kernel[F]) SamplesProcessed() uint64 {
	return k.phase.SamplesProcessed()
}

// CurrentScale returns the table steps per sample in effect.
func (k *Kernel[F]) CurrentScale() float64 {
	return k.phase.Scale().Current()
}

// PendingScale returns the table steps per sample implied by the most
// recent frequency.
func (k *Kernel[F]) PendingScale() float64 {
	return k.phase.Scale().Pending()
}

func shapeOf(w Waveform) wavetable.Shape {
	if w == WaveformSine {
		return wavetable.Sine
	}
	return wavetable.Square
}
