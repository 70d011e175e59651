package tremolo

import (
	"errors"
	"fmt"
	"math"
)

// ParamID identifies a host-visible parameter.
type ParamID int

const (
	ParamFrequency ParamID = iota
	ParamDepth
	ParamWaveform

	paramCount = 3
)

// Waveform selects the modulation shape. Any value other than
// [WaveformSine] selects the square shape.
type Waveform int

const (
	WaveformSine   Waveform = 1
	WaveformSquare Waveform = 2
)

// String returns the display name of the waveform.
func (w Waveform) String() string {
	if w == WaveformSine {
		return "Sine"
	}
	return "Square"
}

// Unit is the display unit of a parameter.
type Unit int

const (
	UnitHertz Unit = iota
	UnitPercent
	UnitIndexed
)

func (u Unit) String() string {
	switch u {
	case UnitHertz:
		return "Hz"
	case UnitPercent:
		return "%"
	case UnitIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParamFlags describe how a host may present a parameter.
type ParamFlags uint32

const (
	FlagReadable ParamFlags = 1 << iota
	FlagWritable
	FlagDisplayLogarithmic
)

// ParamInfo is the host-facing description of one parameter.
type ParamInfo struct {
	ID      ParamID
	Name    string
	Unit    Unit
	Min     float64
	Max     float64
	Default float64
	Flags   ParamFlags
}

// ErrInvalidParameter indicates an unknown parameter ID.
var ErrInvalidParameter = errors.New("invalid parameter")

var paramInfos = [paramCount]ParamInfo{
	ParamFrequency: {
		ID:      ParamFrequency,
		Name:    "Frequency",
		Unit:    UnitHertz,
		Min:     MinFrequency,
		Max:     MaxFrequency,
		Default: DefaultFrequency,
		Flags:   FlagReadable | FlagWritable | FlagDisplayLogarithmic,
	},
	ParamDepth: {
		ID:      ParamDepth,
		Name:    "Depth",
		Unit:    UnitPercent,
		Min:     MinDepth,
		Max:     MaxDepth,
		Default: DefaultDepth,
		Flags:   FlagReadable | FlagWritable,
	},
	ParamWaveform: {
		ID:      ParamWaveform,
		Name:    "Waveform",
		Unit:    UnitIndexed,
		Min:     float64(WaveformSine),
		Max:     float64(WaveformSquare),
		Default: float64(DefaultWaveform),
		Flags:   FlagReadable | FlagWritable,
	},
}

var waveformNames = [...]string{"Sine", "Square"}

func (id ParamID) valid() bool {
	return id >= 0 && id < paramCount
}

// ParamInfos returns the descriptions of all parameters, ordered by ID.
func ParamInfos() []ParamInfo {
	out := make([]ParamInfo, len(paramInfos))
	copy(out, paramInfos[:])
	return out
}

// LookupParamInfo returns the description of parameter id.
func LookupParamInfo(id ParamID) (ParamInfo, error) {
	if !id.valid() {
		return ParamInfo{}, fmt.Errorf("%w: id %d", ErrInvalidParameter, int(id))
	}
	return paramInfos[id], nil
}

// ValueStrings returns the display names of an indexed parameter's values.
// Only the waveform parameter has them.
func ValueStrings(id ParamID) ([]string, error) {
	if id != ParamWaveform {
		return nil, fmt.Errorf("%w: id %d has no value strings", ErrInvalidParameter, int(id))
	}
	out := make([]string, len(waveformNames))
	copy(out, waveformNames[:])
	return out, nil
}

// Params is one snapshot of the modulation parameters.
type Params struct {
	Frequency float64  // Hz
	Depth     float64  // percent
	Waveform  Waveform // 1 = sine, anything else = square
}

// DefaultParams returns the parameter defaults.
func DefaultParams() Params {
	return Params{
		Frequency: DefaultFrequency,
		Depth:     DefaultDepth,
		Waveform:  DefaultWaveform,
	}
}

// Clamped returns p with frequency and depth forced into range. NaN resolves
// to the parameter default. The waveform is left as is.
func (p Params) Clamped() Params {
	p.Frequency = clampParam(p.Frequency, MinFrequency, MaxFrequency, DefaultFrequency)
	p.Depth = clampParam(p.Depth, MinDepth, MaxDepth, DefaultDepth)
	return p
}

func clampParam(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Min(math.Max(v, lo), hi)
}
