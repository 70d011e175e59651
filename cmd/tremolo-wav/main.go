// Command tremolo-wav applies a tremolo effect to a WAV file.
//
// Usage:
//
//	tremolo-wav -freq 5 -depth 70 input.wav output.wav
//	tremolo-wav -preset fast input.wav output.wav
//	tremolo-wav -waveform square -block 128 input.wav output.wav
//	tremolo-wav -fast input.wav output.wav   # float32 processing
//
// The file is fed to the effect in blocks of -block frames, the way an audio
// host delivers buffers. Blocks of digital silence are flagged as silent and
// written as zeros without advancing the modulation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	"github.com/dave-miller-dev/tremolo"
	"github.com/dave-miller-dev/tremolo/internal/meter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freq := flag.Float64("freq", defaultFrequency, "Modulation frequency in Hz (0.5-20)")
	depth := flag.Float64("depth", defaultDepth, "Modulation depth in percent (0-100)")
	waveform := flag.String("waveform", defaultWaveform, "Modulation shape: sine, square")
	preset := flag.String("preset", "", "Factory preset (slow, fast); overrides -freq, -depth and -waveform")
	blockSize := flag.Int("block", defaultBlockSize, "Host buffer size in frames")
	fast := flag.Bool("fast", false, "Use float32 processing")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -freq 5 -depth 70 in.wav out.wav   # Gentle sine tremolo\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -preset fast in.wav out.wav        # Fast & Hard preset\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := parseOptions(*freq, *depth, *waveform, *preset, *blockSize, *parallel)
	if err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	logger.Debug("starting",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Float64("frequency", opts.params.Frequency),
		zap.Float64("depth", opts.params.Depth),
		zap.Stringer("waveform", opts.params.Waveform),
		zap.Int("preset", opts.preset),
		zap.Int("block", opts.blockSize),
		zap.Bool("float32", *fast),
		zap.Bool("parallel", opts.parallel),
	)

	start := time.Now()
	var stats *processStats
	if *fast {
		stats, err = processWAV[float32](inputPath, outputPath, opts, logger)
	} else {
		stats, err = processWAV[float64](inputPath, outputPath, opts, logger)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Processed %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s: %.2f Hz, %.0f%% depth, %s\n",
		stats.presetName, stats.params.Frequency, stats.params.Depth, stats.params.Waveform)
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames in %d blocks (%d silent)\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.frames, stats.blocks, stats.silentBlocks)
	fmt.Printf("  Input:  peak %6.1f dBFS, RMS %6.1f dBFS\n",
		meter.DBFS(stats.input.Peak), meter.DBFS(stats.input.RMS))
	fmt.Printf("  Output: peak %6.1f dBFS, RMS %6.1f dBFS\n",
		meter.DBFS(stats.output.Peak), meter.DBFS(stats.output.RMS))
	if stats.sampleRate > 0 && elapsed > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.frames)/float64(stats.sampleRate)/elapsed.Seconds())
	}

	return nil
}

// newLogger returns a development logger in verbose mode and a no-op logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// options are the validated command-line processing settings.
type options struct {
	params    tremolo.Params
	preset    int
	blockSize int
	parallel  bool
}

func parseOptions(freq, depth float64, waveform, preset string, blockSize int, parallel bool) (options, error) {
	if blockSize < 1 {
		return options{}, fmt.Errorf("block size must be positive, got %d", blockSize)
	}

	opts := options{
		preset:    noPreset,
		blockSize: blockSize,
		parallel:  parallel,
	}

	if preset != "" {
		number, err := parsePreset(preset)
		if err != nil {
			return options{}, err
		}
		p, err := tremolo.LookupPreset(number)
		if err != nil {
			return options{}, err
		}
		opts.preset = number
		opts.params = p.Params
		return opts, nil
	}

	wf, err := parseWaveform(waveform)
	if err != nil {
		return options{}, err
	}
	opts.params = tremolo.Params{Frequency: freq, Depth: depth, Waveform: wf}
	return opts, nil
}
