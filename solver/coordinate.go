package solver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/tracker"
)

// CoordinateProjection configures randomized column-space projection for
// least-squares problems min ‖A·x − b‖. Each iteration draws a fresh
// column compression S (n×s), forms the compressed column block A·S and
// projects the current residual onto its range; the compressed update u
// is lifted back through the compressor: x ← x + α·S·u.
//
// With s == 1 this is randomized coordinate descent along the sketched
// direction; with s > 1 a least-squares block step.
//
// Zero values resolve like Kaczmarz's, except the default compressor is
// a Right-cardinality Gaussian.
type CoordinateProjection struct {
	Compressor    sketch.Config
	Error         ErrorConfig
	Tracker       tracker.Config
	Sub           SubSolver
	Alpha         float64
	MaxIterations int
}

// CoordinateRecipe is a realized column-projection solve. Not safe for
// concurrent use; it aliases the caller's x.
type CoordinateRecipe struct {
	x *mat.VecDense
	a *mat.Dense
	b *mat.VecDense

	comp   sketch.Recipe
	trk    tracker.Tracker
	errRec errorRecipe
	sub    SubSolver

	alpha   float64
	maxIter int

	s  int // realized sketch columns
	as *mat.Dense    // A·S, m×s
	rf *mat.VecDense // full residual b − A·x
	u  *mat.VecDense // compressed update, length s

	stats Stats
}

// Complete realizes the config against the system. x is aliased, not
// copied.
//
// Errors: ErrNilOperand, ErrDimensionMismatch, ErrCardinality,
// ErrIncompatible, ErrMaxIterations, plus the compressor's and tracker's
// own sentinels.
func (c CoordinateProjection) Complete(x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (*CoordinateRecipe, error) {
	// Stage 1: validate the system and the budget.
	m, n, err := checkSystem(x, a, b)
	if err != nil {
		return nil, err
	}
	if c.MaxIterations < 0 {
		return nil, ErrMaxIterations
	}

	// Stage 2: realize the column compressor against A.
	cfg := c.Compressor
	if cfg == nil {
		cfg = sketch.Gaussian{Cardinality: sketch.Right}
	}
	comp, err := sketch.CompleteFor(cfg, a)
	if err != nil {
		return nil, err
	}
	rows, s := comp.Dims()
	if rows != n {
		return nil, ErrCardinality
	}

	r := &CoordinateRecipe{
		x:       x,
		a:       a,
		b:       b,
		comp:    comp,
		alpha:   c.Alpha,
		maxIter: c.MaxIterations,
		s:       s,
		as:      mat.NewDense(m, s, nil),
		rf:      mat.NewVecDense(m, nil),
		u:       mat.NewVecDense(s, nil),
	}
	if r.alpha == 0 {
		r.alpha = DefaultAlpha
	}
	if r.maxIter == 0 {
		r.maxIter = defaultMaxIterations(m, n)
	}

	// Stage 3: error metric and tracker. This solver keeps no (S·A, S·b)
	// pair, so sketched metrics are rejected up front.
	errCfg := c.Error
	if errCfg == nil {
		errCfg = FullResidual{}
	}
	if r.errRec, err = errCfg.complete(a, b); err != nil {
		return nil, err
	}
	if _, ok := r.errRec.(sketchBound); ok {
		return nil, ErrIncompatible
	}

	trkCfg := c.Tracker
	if trkCfg == nil {
		trkCfg = tracker.Basic{}
	}
	if r.trk, err = trkCfg.Complete(tracker.Meta{Kind: comp.Kind(), BlockSize: s, Dim: n}); err != nil {
		return nil, err
	}

	// Stage 4: sub-solver (least-squares QR for tall column blocks) and
	// the initial projection.
	r.sub = c.Sub
	if r.sub == nil {
		r.sub = defaultSubSolver(m, s)
	}
	if err = sketch.MulRight(r.as, r.a, r.comp, 1, 0); err != nil {
		return nil, err
	}
	if s > 1 {
		if err = r.sub.Factorize(r.as); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Run iterates until the tracker converges or the budget is exhausted.
// Exhaustion is silent; callers consult Converged().
func (r *CoordinateRecipe) Run() error {
	for i := 0; i < r.maxIter; i++ {
		r.trk.Update(i, r.errRec.estimate(r.x))
		if r.trk.Converged() {
			return nil
		}

		if err := r.comp.Update(); err != nil {
			return err
		}
		r.stats.Resamples++
		if err := sketch.MulRight(r.as, r.a, r.comp, 1, 0); err != nil {
			return err
		}
		if err := r.step(); err != nil {
			return err
		}
		r.stats.Iterations = i + 1
	}

	return nil
}

// step projects the residual onto the compressed column block and lifts
// the update back through the compressor. Degenerate blocks skip the
// iteration.
func (r *CoordinateRecipe) step() error {
	// rf = b − A·x.
	blas64.Copy(r.b.RawVector(), r.rf.RawVector())
	blas64.Gemv(blas.NoTrans, -1, r.a.RawMatrix(), r.x.RawVector(), 1, r.rf.RawVector())

	if r.s == 1 {
		am := r.as.RawMatrix()
		v := blas64.Vector{N: am.Rows, Inc: am.Stride, Data: am.Data}
		denom := blas64.Dot(v, v)
		if denom == 0 {
			r.stats.Skipped++

			return nil
		}
		r.u.SetVec(0, blas64.Dot(v, r.rf.RawVector())/denom)
	} else {
		if err := r.sub.Factorize(r.as); err != nil {
			r.stats.Skipped++

			return nil
		}
		if err := r.sub.SolveVec(r.u, r.rf); err != nil {
			r.stats.Skipped++

			return nil
		}
	}

	// Lift: x ← x + α·S·u.
	return sketch.MulVec(r.x, r.comp, r.u, r.alpha, 1)
}

// Converged reports whether the tracker's stopping criterion fired.
func (r *CoordinateRecipe) Converged() bool { return r.trk.Converged() }

// Residual returns the vector behind the metric's latest estimate,
// sharing storage with the metric; overwritten by the next iteration.
func (r *CoordinateRecipe) Residual() *mat.VecDense { return r.errRec.residual() }

// Tracker returns the realized tracker.
func (r *CoordinateRecipe) Tracker() tracker.Tracker { return r.trk }

// Stats reports iteration counts for the run so far.
func (r *CoordinateRecipe) Stats() Stats { return r.stats }

// SolveCoordinate is Complete followed by Run.
func SolveCoordinate(cfg CoordinateProjection, x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (Stats, error) {
	r, err := cfg.Complete(x, a, b)
	if err != nil {
		return Stats{}, err
	}
	if err = r.Run(); err != nil {
		return r.Stats(), err
	}

	return r.Stats(), nil
}
