package tremolo

import (
	"errors"
	"fmt"
)

// Preset is a named factory parameter set.
type Preset struct {
	Number int
	Name   string
	Params Params
}

// Factory preset numbers.
const (
	PresetSlow = 0
	PresetFast = 1

	DefaultPreset = PresetSlow
)

// ErrInvalidPreset indicates an unknown preset number.
var ErrInvalidPreset = errors.New("invalid preset")

var factoryPresets = [...]Preset{
	PresetSlow: {
		Number: PresetSlow,
		Name:   "Slow & Gentle",
		Params: Params{Frequency: 2.0, Depth: 50, Waveform: WaveformSine},
	},
	PresetFast: {
		Number: PresetFast,
		Name:   "Fast & Hard",
		Params: Params{Frequency: 20.0, Depth: 90, Waveform: WaveformSquare},
	},
}

// FactoryPresets returns all factory presets ordered by number.
func FactoryPresets() []Preset {
	out := make([]Preset, len(factoryPresets))
	copy(out, factoryPresets[:])
	return out
}

// LookupPreset returns the factory preset with the given number.
func LookupPreset(number int) (Preset, error) {
	if number < 0 || number >= len(factoryPresets) {
		return Preset{}, fmt.Errorf("%w: %d (have %d)", ErrInvalidPreset, number, len(factoryPresets))
	}
	return factoryPresets[number], nil
}
