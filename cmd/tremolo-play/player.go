package main

import (
	"context"
	"io"
	"math"

	"github.com/dave-miller-dev/tremolo"
)

// toneSource renders a sine tone through the effect as 16-bit little-endian
// stereo PCM. Read returns io.EOF once ctx is done.
type toneSource struct {
	ctx       context.Context
	fx        *tremolo.Effect[float32]
	omega     float64
	amplitude float64
	phase     float64
	left      []float32
	right     []float32
	views     [][]float32
}

func newToneSource(ctx context.Context, fx *tremolo.Effect[float32], tone, amplitude float64) *toneSource {
	s := &toneSource{
		ctx:       ctx,
		fx:        fx,
		omega:     2 * math.Pi * tone / fx.SampleRate(),
		amplitude: amplitude,
		views:     make([][]float32, channelNum),
	}
	s.grow(bufferFrames)
	return s
}

func (s *toneSource) grow(frames int) {
	if frames <= len(s.left) {
		return
	}
	s.left = make([]float32, frames)
	s.right = make([]float32, frames)
}

// Read fills buf with whole frames.
func (s *toneSource) Read(buf []byte) (int, error) {
	select {
	case <-s.ctx.Done():
		return 0, io.EOF
	default:
	}

	frames := len(buf) / bytesPerFrame
	s.grow(frames)
	left, right := s.left[:frames], s.right[:frames]

	for i := range frames {
		v := float32(s.amplitude * math.Sin(s.phase))
		left[i], right[i] = v, v
		s.phase += s.omega
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}

	s.views[0], s.views[1] = left, right
	if err := s.fx.ProcessMulti(s.views, s.views, false); err != nil {
		return 0, err
	}

	for i := range frames {
		writeSample(buf[i*bytesPerFrame:], left[i])
		writeSample(buf[i*bytesPerFrame+bitDepthInBytes:], right[i])
	}
	return frames * bytesPerFrame, nil
}

func writeSample(dst []byte, v float32) {
	v = max(-1, min(1, v))
	b := int16(math.Round(float64(v) * maxInt16))
	dst[0] = byte(b)
	dst[1] = byte(b >> 8)
}
