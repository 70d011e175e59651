// Package phase tracks the position of a modulation cycle across buffers.
//
// The rate at which a wavetable is traversed lives in a two-state Scale: the
// rate currently in effect and the rate most recently requested. A requested
// change is only adopted when the traversal sits exactly on the start of a
// cycle, so the modulation never jumps mid-cycle.
package phase

// Scale holds the table-steps-per-sample rate in effect and the one waiting
// to take over. The zero value has both rates at zero.
type Scale struct {
	current float64
	pending float64
}

// Request records the rate implied by the latest frequency read.
func (s *Scale) Request(next float64) {
	s.pending = next
}

// Current returns the rate in effect.
func (s *Scale) Current() float64 {
	return s.current
}

// Pending returns the most recently requested rate.
func (s *Scale) Pending() float64 {
	return s.pending
}

// Dirty reports whether a requested rate differs from the one in effect.
func (s *Scale) Dirty() bool {
	return s.pending != s.current
}

// CommitAt adopts the pending rate if index is a cycle start and the rates
// differ. It reports whether a commit happened.
func (s *Scale) CommitAt(index int) bool {
	if index != 0 || !s.Dirty() {
		return false
	}
	s.current = s.pending
	return true
}

// Reset clears the rate in effect. The pending rate is kept, so the next
// cycle start (immediately, since a zero rate always reads index 0) commits it.
func (s *Scale) Reset() {
	s.current = 0
}
