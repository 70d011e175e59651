// Package meter measures signal levels for the command-line hosts and tests.
package meter

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dave-miller-dev/tremolo/internal/simdops"
)

// Levels summarises a block of samples.
type Levels struct {
	Peak float64 // largest absolute sample
	RMS  float64
	DC   float64 // mean
}

// Measure returns the levels of s. An empty slice measures as silence.
func Measure(s []float64) Levels {
	if len(s) == 0 {
		return Levels{}
	}
	n := float64(len(s))
	return Levels{
		Peak: floats.Norm(s, math.Inf(1)),
		RMS:  math.Sqrt(simdops.Energy(s) / n),
		DC:   simdops.For[float64]().Sum(s) / n,
	}
}

// Accumulator aggregates levels across blocks of one stream.
type Accumulator struct {
	peak   float64
	energy float64
	sum    float64
	count  int
}

// Add folds a block into the running totals.
func (a *Accumulator) Add(s []float64) {
	if len(s) == 0 {
		return
	}
	a.peak = math.Max(a.peak, floats.Norm(s, math.Inf(1)))
	a.energy += simdops.Energy(s)
	a.sum += simdops.For[float64]().Sum(s)
	a.count += len(s)
}

// Levels returns the levels of everything added so far.
func (a *Accumulator) Levels() Levels {
	if a.count == 0 {
		return Levels{}
	}
	n := float64(a.count)
	return Levels{
		Peak: a.peak,
		RMS:  math.Sqrt(a.energy / n),
		DC:   a.sum / n,
	}
}

// Count returns the number of samples added.
func (a *Accumulator) Count() int {
	return a.count
}

// DBFS converts a linear level to decibels relative to full scale.
// Zero maps to -Inf.
func DBFS(level float64) float64 {
	if level <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(level)
}

// IsSilent reports whether every sample in s is exactly zero.
func IsSilent[F simdops.Float](s []F) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}
