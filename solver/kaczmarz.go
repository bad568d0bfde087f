package solver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/tracker"
)

// Kaczmarz configures randomized row-projection for A·x = b. Each
// iteration draws a fresh row compression S (s×m), forms the compressed
// system (S·A, S·b) and projects the iterate onto its solution set.
//
// With s == 1 the update is the classical Kaczmarz step
// x ← x − α·(aᵀx − c)/‖a‖² · a; with s > 1 the minimum-norm solution of
// the compressed block drives the update x ← x + α·u.
//
// Zero values resolve to defaults: Gaussian row compression of dimension
// sketch.DefaultDim, the full-residual metric, a criterion-less basic
// tracker, a shape-matched sub-solver, Alpha 1 and an iteration budget
// of twice the larger system dimension.
type Kaczmarz struct {
	Compressor    sketch.Config
	Error         ErrorConfig
	Tracker       tracker.Config
	Sub           SubSolver
	Alpha         float64
	MaxIterations int
}

// KaczmarzRecipe is a realized row-projection solve. Not safe for
// concurrent use; it aliases the caller's x.
type KaczmarzRecipe struct {
	x *mat.VecDense
	a *mat.Dense
	b *mat.VecDense

	comp   sketch.Recipe
	trk    tracker.Tracker
	errRec errorRecipe
	sub    SubSolver

	alpha   float64
	maxIter int

	s  int // realized sketch rows
	sa *mat.Dense
	sb *mat.VecDense
	rc *mat.VecDense
	u  *mat.VecDense

	stats Stats
}

var _ sketchSystem = (*KaczmarzRecipe)(nil)

// Complete realizes the config against the system. x is aliased, not
// copied: Run mutates it in place.
//
// Errors: ErrNilOperand, ErrDimensionMismatch, ErrCardinality,
// ErrIncompatible, ErrMaxIterations, plus the compressor's and tracker's
// own sentinels.
func (k Kaczmarz) Complete(x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (*KaczmarzRecipe, error) {
	// Stage 1: validate the system and the budget.
	m, n, err := checkSystem(x, a, b)
	if err != nil {
		return nil, err
	}
	if k.MaxIterations < 0 {
		return nil, ErrMaxIterations
	}

	// Stage 2: realize the row compressor against A.
	cfg := k.Compressor
	if cfg == nil {
		cfg = sketch.Gaussian{Cardinality: sketch.Left}
	}
	comp, err := sketch.CompleteFor(cfg, a)
	if err != nil {
		return nil, err
	}
	s, cols := comp.Dims()
	if cols != m {
		return nil, ErrCardinality
	}

	r := &KaczmarzRecipe{
		x:       x,
		a:       a,
		b:       b,
		comp:    comp,
		alpha:   k.Alpha,
		maxIter: k.MaxIterations,
		s:       s,
		sa:      mat.NewDense(s, n, nil),
		sb:      mat.NewVecDense(s, nil),
		rc:      mat.NewVecDense(s, nil),
		u:       mat.NewVecDense(n, nil),
	}
	if r.alpha == 0 {
		r.alpha = DefaultAlpha
	}
	if r.maxIter == 0 {
		r.maxIter = defaultMaxIterations(m, n)
	}

	// Stage 3: realize the error metric and the tracker, wiring the
	// compressed-system capability where the metric needs it.
	errCfg := k.Error
	if errCfg == nil {
		errCfg = FullResidual{}
	}
	if r.errRec, err = errCfg.complete(a, b); err != nil {
		return nil, err
	}
	if cb, ok := r.errRec.(sketchBound); ok {
		cb.bind(r, s)
	}

	trkCfg := k.Tracker
	if trkCfg == nil {
		trkCfg = tracker.Basic{}
	}
	if r.trk, err = trkCfg.Complete(tracker.Meta{Kind: comp.Kind(), BlockSize: s, Dim: m}); err != nil {
		return nil, err
	}

	// Stage 4: sub-solver and the initial projection, so iteration 0 sees
	// a valid compressed system.
	r.sub = k.Sub
	if r.sub == nil {
		r.sub = defaultSubSolver(s, n)
	}
	if err = r.project(); err != nil {
		return nil, err
	}
	if s > 1 {
		if err = r.sub.Factorize(r.sa); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Run iterates until the tracker converges or the budget is exhausted.
// Exhaustion is not an error: the best-effort iterate is left in x and
// callers consult Converged().
func (r *KaczmarzRecipe) Run() error {
	for i := 0; i < r.maxIter; i++ {
		// Estimate against the sketch of the previous iteration, then let
		// the tracker decide.
		r.trk.Update(i, r.errRec.estimate(r.x))
		if r.trk.Converged() {
			return nil
		}

		// Fresh randomness, fresh compressed system, one projection.
		if err := r.comp.Update(); err != nil {
			return err
		}
		r.stats.Resamples++
		if err := r.project(); err != nil {
			return err
		}
		r.step()
		r.stats.Iterations = i + 1
	}

	return nil
}

// project refreshes the compressed system: sa = S·A, sb = S·b.
func (r *KaczmarzRecipe) project() error {
	if err := sketch.Mul(r.sa, r.comp, r.a, 1, 0); err != nil {
		return err
	}

	return sketch.MulVec(r.sb, r.comp, r.b, 1, 0)
}

// step applies one projection update to x. Degenerate blocks (zero row,
// failed sub-solve) skip the iteration, leaving x untouched.
func (r *KaczmarzRecipe) step() {
	xv := r.x.RawVector()

	if r.s == 1 {
		am := r.sa.RawMatrix()
		row := blas64.Vector{N: am.Cols, Inc: 1, Data: am.Data[:am.Cols]}
		denom := blas64.Dot(row, row)
		if denom == 0 {
			r.stats.Skipped++

			return
		}
		coef := -r.alpha * (blas64.Dot(row, xv) - r.sb.AtVec(0)) / denom
		blas64.Axpy(coef, row, xv)

		return
	}

	// Block path: rc = S·b − S·A·x, u = (S·A)⁺·rc, x ← x + α·u.
	blas64.Copy(r.sb.RawVector(), r.rc.RawVector())
	blas64.Gemv(blas.NoTrans, -1, r.sa.RawMatrix(), xv, 1, r.rc.RawVector())
	if err := r.sub.Factorize(r.sa); err != nil {
		r.stats.Skipped++

		return
	}
	if err := r.sub.SolveVec(r.u, r.rc); err != nil {
		r.stats.Skipped++

		return
	}
	blas64.Axpy(r.alpha, r.u.RawVector(), xv)
}

// compressedSystem exposes the current (S·A, S·b) pair to sketched error
// metrics.
func (r *KaczmarzRecipe) compressedSystem() (*mat.Dense, *mat.VecDense) {
	return r.sa, r.sb
}

// Converged reports whether the tracker's stopping criterion fired.
func (r *KaczmarzRecipe) Converged() bool { return r.trk.Converged() }

// Residual returns the vector behind the metric's latest estimate:
// b − A·x for the full metrics, S·b − S·A·x for the compressed one.
// The storage is shared with the metric and overwritten by the next
// iteration; nil before the first estimate for the compressed metric.
func (r *KaczmarzRecipe) Residual() *mat.VecDense { return r.errRec.residual() }

// Tracker returns the realized tracker, for history and band export.
func (r *KaczmarzRecipe) Tracker() tracker.Tracker { return r.trk }

// Stats reports iteration counts for the run so far.
func (r *KaczmarzRecipe) Stats() Stats { return r.stats }

// SolveKaczmarz is Complete followed by Run.
func SolveKaczmarz(cfg Kaczmarz, x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (Stats, error) {
	r, err := cfg.Complete(x, a, b)
	if err != nil {
		return Stats{}, err
	}
	if err = r.Run(); err != nil {
		return r.Stats(), err
	}

	return r.Stats(), nil
}
