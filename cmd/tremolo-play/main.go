// Command tremolo-play plays a test tone through the tremolo effect.
//
// Usage:
//
//	tremolo-play -tone 220 -freq 5 -depth 70
//	tremolo-play -preset fast -duration 10s
//
// If a MIDI input is connected, CC1 sets the depth, CC2 the frequency and
// CC3 the waveform (below 64 is sine). Program changes select factory
// presets. Stop with Ctrl-C.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hajimehoshi/oto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dave-miller-dev/tremolo"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	tone := flag.Float64("tone", defaultTone, "Test tone frequency in Hz")
	amplitude := flag.Float64("amplitude", defaultAmplitude, "Test tone amplitude (0-1)")
	freq := flag.Float64("freq", defaultFrequency, "Modulation frequency in Hz (0.5-20)")
	depth := flag.Float64("depth", defaultDepth, "Modulation depth in percent (0-100)")
	waveform := flag.String("waveform", defaultWaveform, "Modulation shape: sine, square")
	preset := flag.String("preset", "", "Factory preset (slow, fast); overrides -freq, -depth and -waveform")
	duration := flag.Duration("duration", 0, "Stop after this long (0 plays until interrupted)")
	useMIDI := flag.Bool("midi", true, "Listen to the first MIDI input for parameter changes")
	verbose := flag.Bool("v", false, "Verbose (development) logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fx, err := tremolo.NewEffect[float32](&tremolo.Config{
		SampleRate: sampleRate,
		Channels:   channelNum,
	})
	if err != nil {
		return err
	}
	if err := configure(fx, *freq, *depth, *waveform, *preset); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, *duration)
		defer stop()
	}

	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	defer func() {
		if err := otoContext.Close(); err != nil {
			logger.Warn("failed to close audio device", zap.Error(err))
		}
	}()

	p := fx.Parameters().Snapshot()
	logger.Info("playing",
		zap.Float64("tone", *tone),
		zap.Float64("frequency", p.Frequency),
		zap.Float64("depth", p.Depth),
		zap.Stringer("waveform", p.Waveform),
		zap.Duration("duration", *duration),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return play(ctx, otoContext, newToneSource(ctx, fx, *tone, *amplitude))
	})
	if *useMIDI {
		g.Go(func() error {
			return automate(listenToMIDIIn(ctx, logger), fx, logger)
		})
	}

	err = g.Wait()
	logger.Info("stopped")
	return err
}

// newLogger returns a development logger in verbose mode and a production logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// configure loads a preset or the individual parameter flags.
func configure(fx *tremolo.Effect[float32], freq, depth float64, waveform, preset string) error {
	switch strings.ToLower(preset) {
	case "":
	case "slow":
		return fx.ApplyPreset(tremolo.PresetSlow)
	case "fast":
		return fx.ApplyPreset(tremolo.PresetFast)
	default:
		return fmt.Errorf("%w: %q (want slow or fast)", tremolo.ErrInvalidPreset, preset)
	}

	var wf tremolo.Waveform
	switch strings.ToLower(waveform) {
	case "sine":
		wf = tremolo.WaveformSine
	case "square":
		wf = tremolo.WaveformSquare
	default:
		return fmt.Errorf("unknown waveform %q (want sine or square)", waveform)
	}
	fx.Parameters().SetParams(tremolo.Params{Frequency: freq, Depth: depth, Waveform: wf})
	return nil
}

// play copies the source to a new player until the source ends.
func play(ctx context.Context, otoContext *oto.Context, source io.Reader) error {
	p := otoContext.NewPlayer()
	defer func() { _ = p.Close() }()

	// block until ctx is done
	if _, err := io.CopyBuffer(p, source, make([]byte, bufferSizeInBytes)); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil
		}
		return err
	}
	return nil
}

// automate applies MIDI events until the message channel closes.
func automate(messages <-chan []byte, fx *tremolo.Effect[float32], logger *zap.Logger) error {
	for data := range messages {
		ev, ok := parseMIDI(data)
		if !ok {
			continue
		}
		if err := ev.apply(fx); err != nil {
			logger.Warn("ignoring MIDI message", zap.Binary("data", data), zap.Error(err))
			continue
		}
		p := fx.Parameters().Snapshot()
		logger.Debug("parameters changed",
			zap.Float64("frequency", p.Frequency),
			zap.Float64("depth", p.Depth),
			zap.Stringer("waveform", p.Waveform),
		)
	}
	return nil
}
