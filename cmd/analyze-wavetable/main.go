// Command analyze-wavetable prints diagnostics for the modulation wavetables.
package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/dave-miller-dev/tremolo"
	"github.com/dave-miller-dev/tremolo/internal/wavetable"
)

const (
	harmonicsToShow = 17 // DC plus harmonics 1-16
	harmonicFloor   = 1e-6
)

var depthsToShow = []float64{0, 25, 50, 90, 100}

func main() {
	fmt.Println("=== Analyzing Modulation Wavetables ===")

	bank, err := wavetable.NewBank(tremolo.TableSize)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, shape := range []wavetable.Shape{wavetable.Sine, wavetable.Square} {
		values := bank.Table(shape).Values()
		lo, hi := floats.Min(values), floats.Max(values)

		fmt.Printf("\n%s table:\n", shape)
		fmt.Printf("  Size:     %d\n", len(values))
		fmt.Printf("  Min:      %.6f (index %d)\n", lo, floats.MinIdx(values))
		fmt.Printf("  Max:      %.6f (index %d)\n", hi, floats.MaxIdx(values))
		fmt.Printf("  Index 0:  %.6f\n", values[0])
		fmt.Printf("  Mean:     %.6f\n", floats.Sum(values)/float64(len(values)))

		fmt.Println("  Harmonic amplitudes:")
		for k, amp := range wavetable.Harmonics(values, harmonicsToShow) {
			if amp < harmonicFloor {
				continue
			}
			label := fmt.Sprintf("H%d", k)
			if k == 0 {
				label = "DC"
			}
			fmt.Printf("    %-4s %.6f\n", label, amp)
		}

		fmt.Println("  Gain range by depth:")
		for _, depth := range depthsToShow {
			fmt.Printf("    %3.0f%%  %.4f .. %.4f\n", depth, gainAt(lo, depth), gainAt(hi, depth))
		}
	}
}

// gainAt applies the depth formula to a raw table value.
func gainAt(raw, depth float64) float64 {
	return (raw*depth - depth + 100) * 0.01
}
