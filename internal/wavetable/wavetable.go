// Package wavetable generates the unipolar gain curves that drive the tremolo.
//
// A Bank holds one full modulation cycle of two shapes:
//
//   - a sine mapped from [-1, 1] to [0, 1]
//   - a band-limited pseudo-square built from the odd harmonics 1..13 of a
//     phase-shifted sine, which rounds the corners so the square never clicks
//
// Tables are generated once by NewBank and never change afterwards. Every
// value lies in [0, 1] because it scales signal amplitude.
package wavetable

import (
	"errors"
	"fmt"
	"math"
)

// Shape selects one of the tables in a Bank.
type Shape int

const (
	// Sine selects the normalized sine table.
	Sine Shape = iota

	// Square selects the band-limited pseudo-square table.
	Square
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ErrInvalidSize is returned when a bank is requested with a non-positive size.
var ErrInvalidSize = errors.New("wavetable: size must be positive")

// Pseudo-square recipe. The constants are fixed; they define the timbre.
const (
	squarePhaseOffset = 0.32 // radians, starts the cycle at a smoother point
	squareDCOffset    = 0.8  // lifts the sum so the trough sits near zero
	squareScale       = 0.63 // brings the peak close to unity gain
)

// harmonic is one additive partial of the pseudo-square.
type harmonic struct {
	number    float64
	amplitude float64
}

var squareHarmonics = [...]harmonic{
	{number: 1, amplitude: 1},
	{number: 3, amplitude: 0.3},
	{number: 5, amplitude: 0.15},
	{number: 7, amplitude: 0.075},
	{number: 9, amplitude: 0.0375},
	{number: 11, amplitude: 0.01875},
	{number: 13, amplitude: 0.009375},
}

// Table is a read-only view of one cycle of a gain curve.
type Table struct {
	values []float64
}

// At returns the gain at index i. The caller wraps the phase into [0, Len()).
func (t Table) At(i int) float64 {
	return t.values[i]
}

// Len returns the number of entries in one cycle.
func (t Table) Len() int {
	return len(t.values)
}

// Values returns a copy of the table contents.
func (t Table) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)
	return out
}

// Bank owns the sine and square tables for one kernel.
type Bank struct {
	size   int
	sine   []float64
	square []float64
}

// NewBank generates both tables with size entries each.
func NewBank(size int) (*Bank, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	b := &Bank{
		size:   size,
		sine:   make([]float64, size),
		square: make([]float64, size),
	}
	GenerateSine(b.sine)
	GenerateSquare(b.square)

	return b, nil
}

// Size returns the number of entries per table.
func (b *Bank) Size() int {
	return b.size
}

// Table returns the table for shape. Any shape other than Sine yields the square.
func (b *Bank) Table(s Shape) Table {
	if s == Sine {
		return Table{values: b.sine}
	}
	return Table{values: b.square}
}

// GenerateSine fills dst with one cycle of (sin(2πi/N) + 1) / 2.
func GenerateSine(dst []float64) {
	n := float64(len(dst))
	for i := range dst {
		radians := 2 * math.Pi * float64(i) / n
		dst[i] = (math.Sin(radians) + 1) * 0.5
	}
}

// GenerateSquare fills dst with one cycle of the pseudo-square.
// Values are clamped to [0, 1]; the raw recipe overshoots by under 0.01.
func GenerateSquare(dst []float64) {
	for i := range dst {
		dst[i] = clampUnit(squareRecipe(i, len(dst)))
	}
}

// squareRecipe evaluates the additive recipe at index i of an n-entry cycle.
func squareRecipe(i, n int) float64 {
	radians := 2*math.Pi*float64(i)/float64(n) + squarePhaseOffset

	var sum float64
	for _, h := range squareHarmonics {
		sum += h.amplitude * math.Sin(h.number*radians)
	}

	return (sum + squareDCOffset) * squareScale
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
