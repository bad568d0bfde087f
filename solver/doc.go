// Package solver implements randomized projection solvers for linear
// systems and least-squares problems: Kaczmarz row projection, its
// column-space analog, and the Iterative Hessian Sketch.
//
// What you get:
//
//   - ✅ Kaczmarz: per-iteration row compression S·A, S·b; closed-form
//     single-equation projection when the sketch has one row, minimum-norm
//     block update otherwise.
//   - ✅ CoordinateProjection: the column-space analog - compresses A·S and
//     projects the residual onto the compressed column block, lifting the
//     update back through the compressor.
//   - ✅ IHS: Iterative Hessian Sketch - fresh sketch per step, QR of S·A,
//     two triangular solves against the exact gradient.
//   - ✅ Pluggable error metrics (full residual, compressed residual,
//     least-squares gradient) and convergence trackers.
//   - ✅ Allocation-free steady state: every buffer is sized once at
//     Complete time and re-viewed per iteration.
//
// Shape of the API:
//
//	cfg := solver.Kaczmarz{
//	    Compressor: sketch.SparseSign{Cardinality: sketch.Left, Dim: 8},
//	    Tracker:    tracker.Basic{Threshold: 1e-8},
//	}
//	rec, err := cfg.Complete(x, a, b)   // x is aliased, not copied
//	err = rec.Run()                     // iterate until converged/budget
//	ok := rec.Converged()
//
// Run never fails on non-convergence: exhausting the iteration budget
// returns the best-effort iterate silently, and callers decide via
// Converged(). The relaxation parameter Alpha must lie in (0, 2) for
// guaranteed convergence; this is a documented caller responsibility,
// not an enforced one (Alpha == 2 risks non-convergent cycling).
//
// Recipes are single-goroutine state machines; any parallelism lives
// inside the BLAS kernels the loops call.
package solver
