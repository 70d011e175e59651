// Package tremolo provides an amplitude-modulation (tremolo) effect in pure Go.
//
// A low-frequency oscillator read from a precomputed wavetable scales the
// amplitude of the input signal. The oscillator keeps its phase across
// arbitrarily sized buffers and only adopts a new frequency at the start of a
// cycle, so parameter automation never produces a discontinuity in the gain.
//
// # Features
//
//   - Sine and band-limited pseudo-square modulation shapes
//   - Frequency 0.5 to 20 Hz, depth 0 to 100 percent
//   - Generic over float32 and float64 samples
//   - Lock-free parameter store safe for concurrent automation
//   - Two factory presets
//   - Multi-channel processing with optional per-channel parallelism
//
// # Quick Start
//
// For simple one-shot processing:
//
//	output, err := tremolo.ApplyMono(input, 48000, tremolo.Params{
//	    Frequency: 5,
//	    Depth:     70,
//	    Waveform:  tremolo.WaveformSine,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming, create an [Effect] and feed it host buffers:
//
//	fx, err := tremolo.NewEffect[float32](&tremolo.Config{
//	    SampleRate: 48000,
//	    Channels:   2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for block := range hostBlocks {
//	    if err := fx.ProcessMulti(block.In, block.Out, block.Silent); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Parameters are changed through [Effect.Parameters] from any goroutine.
// Every processing call reads a fresh snapshot.
//
// # Kernel
//
// [Kernel] is the single-channel engine underneath [Effect]. It is not safe
// for concurrent use; one kernel serves one channel. [Kernel.Process] never
// allocates, locks, or returns an error, which makes it usable directly from
// a real-time audio callback.
//
// # Silence
//
// When the host flags a buffer as silent, the kernel returns immediately
// without touching the output buffer or advancing its phase. The host is
// responsible for the contents of the output in that case.
package tremolo
