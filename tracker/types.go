// Package tracker - shared vocabulary: contracts, sentinels and defaults.
package tracker

import (
	"errors"

	"github.com/katalvlaran/randla/sketch"
)

// Meta describes the solver context a tracker is completed against: the
// active sketch kind, its realized block size (1 for single-row/column
// samplers) and the full problem dimension. Populated once by the solver
// at completion time.
type Meta struct {
	Kind      sketch.Kind
	BlockSize int
	Dim       int
}

// Config is an immutable tracker configuration, realized by Complete.
type Config interface {
	Complete(m Meta) (Tracker, error)
}

// Tracker consumes one scalar progress estimate per iteration and exposes
// the convergence flag the solver loop polls. Implementations are not
// safe for concurrent use; each solver recipe owns its tracker.
type Tracker interface {
	// Update feeds the error estimate of iteration iter (0-based).
	Update(iter int, est float64)

	// Converged reports whether the stopping criterion has fired.
	Converged() bool

	// History returns the recorded raw estimates (at the collection rate).
	History() []float64
}

// State is the snapshot a StopCriterion sees after every update. Rho,
// Lower and Upper are NaN when the tracker keeps no moving average.
type State struct {
	Iteration int
	Estimate  float64
	Rho       float64
	Lower     float64
	Upper     float64
}

// StopCriterion decides termination from the tracker's latest state.
type StopCriterion interface {
	Done(s State) bool
}

// Band is one recorded credible interval on the true squared residual.
type Band struct {
	Rho   float64
	Lower float64
	Upper float64
}

// Sentinel errors.
var (
	// ErrWindowWidths is returned when Lambda1 < 1 or Lambda2 < Lambda1.
	ErrWindowWidths = errors.New("tracker: window widths must satisfy 1 <= lambda1 <= lambda2")

	// ErrCollectionRate is returned for a negative collection rate.
	ErrCollectionRate = errors.New("tracker: collection rate must be >= 1")

	// ErrBadAlpha is returned when a credibility level is outside (0, 1).
	ErrBadAlpha = errors.New("tracker: alpha must be in (0, 1)")
)

// Documented defaults (single source of truth).
const (
	// DefaultLambda1 is the fast-phase window width.
	DefaultLambda1 = 1

	// DefaultLambda2 is the slow-phase window width (ring buffer length).
	DefaultLambda2 = 30

	// DefaultCollectionRate appends every iteration to the histories.
	DefaultCollectionRate = 1

	// DefaultAlpha is the credibility level for uncertainty bands.
	DefaultAlpha = 0.05
)
