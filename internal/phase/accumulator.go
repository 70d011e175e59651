package phase

// Accumulator maps a running sample count onto wavetable indices.
//
// The index for a sample is floor(samplesProcessed * rate) mod tableSize.
// Two events restart the count at a cycle start (index 0): adopting a new
// rate, and the count reaching limit. Restarting only at index 0 keeps the
// output continuous while bounding float64 precision loss.
type Accumulator struct {
	tableSize uint64
	limit     uint64
	samples   uint64
	scale     Scale
}

// NewAccumulator returns an accumulator for a table of tableSize entries
// whose sample count restarts once it reaches limit. It panics if tableSize
// is not positive.
func NewAccumulator(tableSize int, limit uint64) *Accumulator {
	if tableSize < 1 {
		panic("phase: table size must be positive")
	}
	return &Accumulator{
		tableSize: uint64(tableSize),
		limit:     limit,
	}
}

// Request records the rate to adopt at the next cycle start.
func (a *Accumulator) Request(rate float64) {
	a.scale.Request(rate)
}

// Next returns the table index for the current sample and advances the count.
func (a *Accumulator) Next() int {
	index := int(uint64(float64(a.samples)*a.scale.current) % a.tableSize)

	if a.scale.CommitAt(index) {
		a.samples = 0
	}
	if index == 0 && a.samples >= a.limit {
		a.samples = 0
	}

	a.samples++
	return index
}

// Reset returns the accumulator to its initial state except for the pending
// rate.
func (a *Accumulator) Reset() {
	a.samples = 0
	a.scale.Reset()
}

// SamplesProcessed returns the sample count since the last restart.
func (a *Accumulator) SamplesProcessed() uint64 {
	return a.samples
}

// Scale returns a copy of the rate state.
func (a *Accumulator) Scale() Scale {
	return a.scale
}

// TableSize returns the number of table entries per cycle.
func (a *Accumulator) TableSize() int {
	return int(a.tableSize)
}
