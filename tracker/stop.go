// Package tracker - pluggable stopping criteria.
package tracker

import "math"

// MaxIterations stops after N updates. The trivial counter criterion;
// also the safety net every solver applies through its own budget.
type MaxIterations struct {
	N int
}

// Done reports true once N updates have been consumed.
func (m MaxIterations) Done(s State) bool {
	return m.N > 0 && s.Iteration+1 >= m.N
}

// Threshold stops when the raw error estimate falls to Value or below.
type Threshold struct {
	Value float64
}

// Done compares the latest estimate against the fixed value.
func (t Threshold) Done(s State) bool {
	return s.Estimate <= t.Value
}

// MAThreshold stops on the moving-average location (and, optionally, the
// width of its credible band): it fires when rho <= Target and, if
// MaxWidth > 0, when Upper-rho <= MaxWidth as well. Intended for the MA
// tracker; against trackers without a moving average it never fires.
type MAThreshold struct {
	Target   float64
	MaxWidth float64
}

// Done checks the credible interval's location and width.
func (t MAThreshold) Done(s State) bool {
	if math.IsNaN(s.Rho) || s.Rho > t.Target {
		return false
	}
	if t.MaxWidth > 0 && (math.IsNaN(s.Upper) || s.Upper-s.Rho > t.MaxWidth) {
		return false
	}

	return true
}
