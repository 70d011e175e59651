package main

import (
	"context"
	"fmt"
	"math"

	"gitlab.com/gomidi/rtmididrv"
	"go.uber.org/zap"

	"github.com/dave-miller-dev/tremolo"
)

// listenToMIDIIn forwards raw messages from the first MIDI input until ctx
// is done. The channel is closed when listening stops; it is closed
// immediately if no input is available.
func listenToMIDIIn(ctx context.Context, logger *zap.Logger) <-chan []byte {
	ch := make(chan []byte, midiMessageBufSize)
	go func() {
		defer close(ch)

		drv, err := rtmididrv.New()
		if err != nil {
			logger.Warn("failed to initialize MIDI driver", zap.Error(err))
			return
		}
		defer func() {
			if err := drv.Close(); err != nil {
				logger.Warn("failed to close MIDI driver", zap.Error(err))
			}
		}()

		ins, err := drv.Ins()
		if err != nil {
			logger.Warn("failed to list MIDI inputs", zap.Error(err))
			return
		}
		if len(ins) == 0 {
			logger.Info("no MIDI input found, parameters are fixed")
			return
		}

		in := ins[0]
		if err := in.Open(); err != nil {
			logger.Warn("failed to open MIDI input", zap.String("port", in.String()), zap.Error(err))
			return
		}
		defer func() {
			if err := in.Close(); err != nil {
				logger.Warn("failed to close MIDI input", zap.Error(err))
			}
		}()

		if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
			msg := make([]byte, len(data))
			copy(msg, data)
			select {
			case ch <- msg:
			default:
				logger.Warn("MIDI message dropped")
			}
		}); err != nil {
			logger.Warn("failed to set MIDI listener", zap.Error(err))
			return
		}
		defer func() {
			if err := in.StopListening(); err != nil {
				logger.Warn("failed to stop listening", zap.Error(err))
			}
		}()

		logger.Info("listening to MIDI input", zap.String("port", in.String()))
		<-ctx.Done()
	}()
	return ch
}

// midiEvent is a parameter change decoded from a MIDI message.
type midiEvent struct {
	param    tremolo.ParamID
	value    float64
	preset   int
	isPreset bool
}

// parseMIDI decodes control and program changes on any channel. It reports
// false for messages that do not map to a parameter.
func parseMIDI(data []byte) (midiEvent, bool) {
	if len(data) < 2 {
		return midiEvent{}, false
	}

	switch data[0] & midiStatusMask {
	case midiProgramChange:
		return midiEvent{preset: int(data[1]), isPreset: true}, true

	case midiControlChange:
		if len(data) < 3 {
			return midiEvent{}, false
		}
		v := float64(data[2])
		switch data[1] {
		case ccDepth:
			return midiEvent{param: tremolo.ParamDepth, value: v / midiMaxValue * tremolo.MaxDepth}, true
		case ccFrequency:
			return midiEvent{param: tremolo.ParamFrequency, value: frequencyFromCC(v)}, true
		case ccWaveform:
			wf := tremolo.WaveformSine
			if data[2] >= midiWaveformSplit {
				wf = tremolo.WaveformSquare
			}
			return midiEvent{param: tremolo.ParamWaveform, value: float64(wf)}, true
		}
	}

	return midiEvent{}, false
}

// frequencyFromCC maps 0-127 logarithmically onto the frequency range.
func frequencyFromCC(v float64) float64 {
	ratio := tremolo.MaxFrequency / tremolo.MinFrequency
	return tremolo.MinFrequency * math.Pow(ratio, v/midiMaxValue)
}

// apply writes the event into the effect's parameters.
func (e midiEvent) apply(fx *tremolo.Effect[float32]) error {
	if e.isPreset {
		if err := fx.ApplyPreset(e.preset); err != nil {
			return fmt.Errorf("program change: %w", err)
		}
		return nil
	}
	return fx.Parameters().Set(e.param, e.value)
}
