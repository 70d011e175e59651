package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/dave-miller-dev/tremolo"
	"github.com/dave-miller-dev/tremolo/internal/meter"
)

// processStats summarises one processed file.
type processStats struct {
	sampleRate   int
	channels     int
	bitDepth     int
	frames       int64
	blocks       int
	silentBlocks int
	params       tremolo.Params
	presetName   string
	input        meter.Levels
	output       meter.Levels
}

func parseWaveform(s string) (tremolo.Waveform, error) {
	switch strings.ToLower(s) {
	case "sine":
		return tremolo.WaveformSine, nil
	case "square":
		return tremolo.WaveformSquare, nil
	default:
		return 0, fmt.Errorf("unknown waveform %q (want sine or square)", s)
	}
}

func parsePreset(s string) (int, error) {
	switch strings.ToLower(s) {
	case "slow":
		return tremolo.PresetSlow, nil
	case "fast":
		return tremolo.PresetFast, nil
	default:
		return 0, fmt.Errorf("%w: %q (want slow or fast)", tremolo.ErrInvalidPreset, s)
	}
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, logger *zap.Logger) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	if decoder.WavAudioFormat != wavFormatPCM {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported WAV encoding %d: only integer PCM is supported", decoder.WavAudioFormat)
	}

	bitDepth := int(decoder.BitDepth)
	if getMaxValue(bitDepth) == 0 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	format := decoder.Format()

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(format.SampleRate))

	logger.Debug("input format",
		zap.Int("rate", format.SampleRate),
		zap.Int("channels", format.NumChannels),
		zap.Int("bitDepth", bitDepth),
		zap.Duration("duration", duration),
	)

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalises the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// getMaxValue returns the full-scale sample value for the given bit depth,
// or zero if the depth is unsupported.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

// processBuffers holds all preallocated buffers for block processing.
type processBuffers[F tremolo.Float] struct {
	intBuffer *audio.IntBuffer
	in        [][]F
	out       [][]F
	outInts   []int
	scratch   []float64
	maxVal    float64
	invMaxVal float64
}

func newProcessBuffers[F tremolo.Float](channels, bitDepth, blockSize int, format *audio.Format) *processBuffers[F] {
	maxVal := getMaxValue(bitDepth)
	b := &processBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, blockSize*channels),
			Format: format,
		},
		in:        make([][]F, channels),
		out:       make([][]F, channels),
		outInts:   make([]int, blockSize*channels),
		scratch:   make([]float64, blockSize),
		maxVal:    maxVal,
		invMaxVal: 1.0 / maxVal,
	}
	for ch := range channels {
		b.in[ch] = make([]F, blockSize)
		b.out[ch] = make([]F, blockSize)
	}
	return b
}

// frames returns per-channel views of length n.
func frames[F tremolo.Float](bufs [][]F, n int) [][]F {
	views := make([][]F, len(bufs))
	for ch := range bufs {
		views[ch] = bufs[ch][:n]
	}
	return views
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	logger       *zap.Logger
}

func newProgressTracker(totalFrames int64, logger *zap.Logger) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		logger:      logger,
	}
}

// reportIfNeeded logs progress if a threshold was crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		p.logger.Debug("progress", zap.Int("percent", progress))
		p.lastProgress = progress
	}
}

// processWAV runs the tremolo over inputPath and writes outputPath.
func processWAV[F tremolo.Float](inputPath, outputPath string, opts options, logger *zap.Logger) (stats *processStats, err error) {
	input, err := openWAVInput(inputPath, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	fx, err := tremolo.NewEffect[F](&tremolo.Config{
		SampleRate:     float64(input.rate),
		Channels:       input.channels,
		EnableParallel: opts.parallel,
	})
	if err != nil {
		return nil, err
	}

	presetName := "Custom"
	if opts.preset != noPreset {
		if err := fx.ApplyPreset(opts.preset); err != nil {
			return nil, err
		}
		presetName = fx.CurrentPreset().Name
	} else {
		fx.Parameters().SetParams(opts.params)
	}

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder writes the header sizes then)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newProcessBuffers[F](input.channels, input.bitDepth, opts.blockSize, input.format)
	stats = &processStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		params:     fx.Parameters().Snapshot(),
		presetName: presetName,
	}
	progress := newProgressTracker(input.totalFrames, logger)

	var inLevels, outLevels meter.Accumulator
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		numFrames := n / input.channels
		if numFrames == 0 {
			break
		}

		data := buffers.intBuffer.Data[:numFrames*input.channels]
		deinterleaveInto(data, buffers.in, input.channels, numFrames, buffers.invMaxVal)

		in := frames(buffers.in, numFrames)
		out := frames(buffers.out, numFrames)
		silent := isSilentBlock(in)
		if err := fx.ProcessMulti(in, out, silent); err != nil {
			return nil, fmt.Errorf("failed to process block %d: %w", stats.blocks, err)
		}
		if silent {
			// The effect leaves silent buffers to the host.
			for ch := range out {
				clear(out[ch])
			}
			stats.silentBlocks++
		}

		for ch := range input.channels {
			inLevels.Add(toFloat64(buffers.scratch, in[ch]))
			outLevels.Add(toFloat64(buffers.scratch, out[ch]))
		}

		written := interleaveInto(out, buffers.outInts, buffers.maxVal)
		if err := output.WriteSamples(buffers.outInts[:written]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.blocks++
		stats.frames += int64(numFrames)
		progress.reportIfNeeded(stats.frames)
	}

	stats.input = inLevels.Levels()
	stats.output = outLevels.Levels()

	logger.Debug("done",
		zap.Int64("frames", stats.frames),
		zap.Int("blocks", stats.blocks),
		zap.Int("silentBlocks", stats.silentBlocks),
		zap.Uint64("samplesProcessed", fx.Kernel(0).SamplesProcessed()),
	)

	return stats, nil
}

// isSilentBlock reports whether every channel of the block is digital silence.
func isSilentBlock[F tremolo.Float](channels [][]F) bool {
	for _, ch := range channels {
		if !meter.IsSilent(ch) {
			return false
		}
	}
	return true
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto[F tremolo.Float](data []int, channelBufs [][]F, numChannels, numFrames int, invMaxVal float64) {
	for i := range numFrames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int buffer,
// clamping to full scale. Returns the number of elements written.
func interleaveInto[F tremolo.Float](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	numFrames := len(channels[0])
	totalLen := numFrames * numChannels
	if len(dst) < totalLen {
		return 0
	}

	for i := range numFrames {
		base := i * numChannels
		for ch := range numChannels {
			sample := math.Max(-1, math.Min(1, float64(channels[ch][i])))
			dst[base+ch] = int(math.Round(sample * maxVal))
		}
	}

	return totalLen
}

// toFloat64 widens src into dst and returns the filled prefix.
func toFloat64[F tremolo.Float](dst []float64, src []F) []float64 {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}
