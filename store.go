package tremolo

import (
	"fmt"
	"math"
	"sync/atomic"
)

// ParameterStore holds the current parameter values where a host or an
// automation source writes them and the audio path reads them.
//
// Each value lives in its own atomic word, so Get and Snapshot never observe
// a torn value while another goroutine calls Set. A Snapshot is not atomic
// across the three values; a concurrent SetParams may be seen half applied
// for one buffer. Values are stored as written; range checks happen in the
// kernel.
type ParameterStore struct {
	values [paramCount]atomic.Uint64
}

// NewParameterStore returns a store holding the parameter defaults.
func NewParameterStore() *ParameterStore {
	s := &ParameterStore{}
	s.SetParams(DefaultParams())
	return s
}

// Get returns the value of parameter id.
func (s *ParameterStore) Get(id ParamID) (float64, error) {
	if !id.valid() {
		return 0, fmt.Errorf("%w: id %d", ErrInvalidParameter, int(id))
	}
	return math.Float64frombits(s.values[id].Load()), nil
}

// Set writes the value of parameter id.
func (s *ParameterStore) Set(id ParamID, v float64) error {
	if !id.valid() {
		return fmt.Errorf("%w: id %d", ErrInvalidParameter, int(id))
	}
	s.values[id].Store(math.Float64bits(v))
	return nil
}

// Snapshot reads all parameters. The waveform value is truncated toward zero.
func (s *ParameterStore) Snapshot() Params {
	return Params{
		Frequency: s.load(ParamFrequency),
		Depth:     s.load(ParamDepth),
		Waveform:  Waveform(int(s.load(ParamWaveform))),
	}
}

// SetParams writes all parameters.
func (s *ParameterStore) SetParams(p Params) {
	s.values[ParamFrequency].Store(math.Float64bits(p.Frequency))
	s.values[ParamDepth].Store(math.Float64bits(p.Depth))
	s.values[ParamWaveform].Store(math.Float64bits(float64(p.Waveform)))
}

// ApplyPreset writes the parameters of factory preset number.
func (s *ParameterStore) ApplyPreset(number int) (Preset, error) {
	preset, err := LookupPreset(number)
	if err != nil {
		return Preset{}, err
	}
	s.SetParams(preset.Params)
	return preset, nil
}

func (s *ParameterStore) load(id ParamID) float64 {
	return math.Float64frombits(s.values[id].Load())
}
