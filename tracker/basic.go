// Package tracker - plain history tracker.
package tracker

import "math"

// Basic configures the plain tracker: it records the raw estimate stream
// and stops on a fixed threshold and/or iteration budget. Zero values
// disable the corresponding criterion; an explicit Stop overrides both.
type Basic struct {
	// MaxIterations stops after this many updates; 0 disables.
	MaxIterations int

	// Threshold stops once the estimate falls to this value; 0 disables.
	Threshold float64

	// CollectionRate appends every k-th estimate to the history
	// (default 1: every iteration).
	CollectionRate int

	// Stop replaces the built-in criteria when non-nil.
	Stop StopCriterion
}

type basicTracker struct {
	rate  int
	stop  StopCriterion
	hist  []float64
	conv  bool
	maxN  int
	thres float64
}

var _ Tracker = (*basicTracker)(nil)

// Complete realizes the config. Errors: ErrCollectionRate.
func (b Basic) Complete(_ Meta) (Tracker, error) {
	rate := b.CollectionRate
	if rate == 0 {
		rate = DefaultCollectionRate
	}
	if rate < 1 {
		return nil, ErrCollectionRate
	}

	return &basicTracker{
		rate:  rate,
		stop:  b.Stop,
		maxN:  b.MaxIterations,
		thres: b.Threshold,
	}, nil
}

func (t *basicTracker) Update(iter int, est float64) {
	if iter%t.rate == 0 {
		t.hist = append(t.hist, est)
	}
	s := State{
		Iteration: iter,
		Estimate:  est,
		Rho:       math.NaN(),
		Lower:     math.NaN(),
		Upper:     math.NaN(),
	}
	if t.stop != nil {
		t.conv = t.stop.Done(s)

		return
	}
	t.conv = (t.thres > 0 && est <= t.thres) ||
		(t.maxN > 0 && iter+1 >= t.maxN)
}

func (t *basicTracker) Converged() bool    { return t.conv }
func (t *basicTracker) History() []float64 { return t.hist }
