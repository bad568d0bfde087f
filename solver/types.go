// Package solver - shared vocabulary: sentinels, statistics and defaults.
package solver

import "errors"

// Sentinel errors. Every failure mode surfaces exactly one of these,
// wrapped with context; match with errors.Is.
var (
	// ErrNilOperand is returned when x, A or b is nil at Complete time.
	ErrNilOperand = errors.New("solver: nil solution vector, matrix or right-hand side")

	// ErrDimensionMismatch is returned when the shapes of x, A and b do
	// not describe one linear system.
	ErrDimensionMismatch = errors.New("solver: x, A and b dimensions are incompatible")

	// ErrCardinality is returned when the compressor's realized shape does
	// not match the side the solver compresses (rows for Kaczmarz and IHS,
	// columns for coordinate projection).
	ErrCardinality = errors.New("solver: compressor cardinality does not fit this solver")

	// ErrIncompatible is returned when an error-method/tracker combination
	// needs a capability the solver cannot provide, e.g. a compressed
	// residual from a solver that never forms one.
	ErrIncompatible = errors.New("solver: incompatible error method or tracker for this solver")

	// ErrSketchTooSmall is returned by IHS when the compression dimension
	// is below the number of unknowns, which makes S·A rank deficient by
	// construction.
	ErrSketchTooSmall = errors.New("solver: compression dimension must be >= the number of unknowns")

	// ErrMaxIterations is returned for a negative iteration budget.
	ErrMaxIterations = errors.New("solver: max iterations must be >= 0")

	// ErrSubSolverShape is returned when a sub-solver is factorized against
	// a block whose shape it cannot handle (LQ needs wide, QR needs tall).
	ErrSubSolverShape = errors.New("solver: compressed block shape does not fit the sub-solver")
)

// Stats reports what a finished (or interrupted) run actually did.
type Stats struct {
	// Iterations is the number of completed loop iterations.
	Iterations int

	// Resamples counts compressor regenerations (one per iteration that
	// reached the projection stage).
	Resamples int

	// Skipped counts iterations abandoned because the compressed block was
	// numerically unusable (zero row, failed factorization). The iterate
	// is left untouched on a skip.
	Skipped int
}

// DefaultAlpha is the relaxation parameter applied to every update.
const DefaultAlpha = 1.0

// defaultMaxIterations is the iteration budget when the config leaves
// MaxIterations at zero: twice the larger system dimension.
func defaultMaxIterations(m, n int) int {
	if m > n {
		return 2 * m
	}

	return 2 * n
}
