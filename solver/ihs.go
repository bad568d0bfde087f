package solver

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/tracker"
)

// IHS configures the Iterative Hessian Sketch for overdetermined
// least-squares min ‖A·x − b‖. Each iteration draws a fresh row
// compression S (s×m, s >= n), takes the QR of S·A and solves the
// sketched normal equations (S·A)ᵀ(S·A)·u = Aᵀ(b − A·x) as two
// triangular systems against R, never forming the normal equations
// explicitly: x ← x + α·u.
//
// The compression dimension must reach the number of unknowns, or S·A is
// rank deficient by construction (ErrSketchTooSmall at Complete).
type IHS struct {
	Compressor    sketch.Config
	Error         ErrorConfig
	Tracker       tracker.Config
	Alpha         float64
	MaxIterations int
}

// IHSRecipe is a realized Hessian-sketch solve. Not safe for concurrent
// use; it aliases the caller's x.
type IHSRecipe struct {
	x *mat.VecDense
	a *mat.Dense
	b *mat.VecDense

	comp   sketch.Recipe
	trk    tracker.Tracker
	errRec errorRecipe

	alpha   float64
	maxIter int

	s  int
	sa *mat.Dense    // S·A, s×n
	qr mat.QR
	rm *mat.Dense    // R of the QR, s×n upper trapezoidal
	rf *mat.VecDense // full residual b − A·x
	g  *mat.VecDense // gradient Aᵀ·rf, doubles as the update direction

	stats Stats
}

// Complete realizes the config against the system. x is aliased, not
// copied.
//
// Errors: ErrNilOperand, ErrDimensionMismatch, ErrCardinality,
// ErrSketchTooSmall, ErrIncompatible, ErrMaxIterations, plus the
// compressor's and tracker's own sentinels.
func (h IHS) Complete(x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (*IHSRecipe, error) {
	// Stage 1: validate the system and the budget.
	m, n, err := checkSystem(x, a, b)
	if err != nil {
		return nil, err
	}
	if h.MaxIterations < 0 {
		return nil, ErrMaxIterations
	}

	// Stage 2: realize the row compressor; the sketched Hessian needs at
	// least n rows to stay full rank.
	cfg := h.Compressor
	if cfg == nil {
		cfg = sketch.Gaussian{Cardinality: sketch.Left, Dim: 2 * n}
	}
	comp, err := sketch.CompleteFor(cfg, a)
	if err != nil {
		return nil, err
	}
	s, cols := comp.Dims()
	if cols != m {
		return nil, ErrCardinality
	}
	if s < n {
		return nil, ErrSketchTooSmall
	}

	r := &IHSRecipe{
		x:       x,
		a:       a,
		b:       b,
		comp:    comp,
		alpha:   h.Alpha,
		maxIter: h.MaxIterations,
		s:       s,
		sa:      mat.NewDense(s, n, nil),
		rm:      mat.NewDense(s, n, nil),
		rf:      mat.NewVecDense(m, nil),
		g:       mat.NewVecDense(n, nil),
	}
	if r.alpha == 0 {
		r.alpha = DefaultAlpha
	}
	if r.maxIter == 0 {
		r.maxIter = defaultMaxIterations(m, n)
	}

	// Stage 3: error metric and tracker. No (S·A, S·b) pair is kept, so
	// sketched metrics are rejected.
	errCfg := h.Error
	if errCfg == nil {
		errCfg = LSGradient{}
	}
	if r.errRec, err = errCfg.complete(a, b); err != nil {
		return nil, err
	}
	if _, ok := r.errRec.(sketchBound); ok {
		return nil, ErrIncompatible
	}

	trkCfg := h.Tracker
	if trkCfg == nil {
		trkCfg = tracker.Basic{}
	}
	if r.trk, err = trkCfg.Complete(tracker.Meta{Kind: comp.Kind(), BlockSize: s, Dim: m}); err != nil {
		return nil, err
	}

	// Stage 4: initial projection.
	if err = sketch.Mul(r.sa, r.comp, r.a, 1, 0); err != nil {
		return nil, err
	}

	return r, nil
}

// Run iterates until the tracker converges or the budget is exhausted.
// Exhaustion is silent; callers consult Converged().
func (r *IHSRecipe) Run() error {
	for i := 0; i < r.maxIter; i++ {
		r.trk.Update(i, r.errRec.estimate(r.x))
		if r.trk.Converged() {
			return nil
		}

		if err := r.comp.Update(); err != nil {
			return err
		}
		r.stats.Resamples++
		if err := sketch.Mul(r.sa, r.comp, r.a, 1, 0); err != nil {
			return err
		}
		r.step()
		r.stats.Iterations = i + 1
	}

	return nil
}

// step solves the sketched normal equations through R and applies the
// relaxed update. A numerically singular R skips the iteration.
func (r *IHSRecipe) step() {
	_, n := r.a.Dims()

	r.qr.Factorize(r.sa)
	r.qr.RTo(r.rm)

	// Leading n×n block of the trapezoidal R is the triangular factor.
	rraw := r.rm.RawMatrix()
	for i := 0; i < n; i++ {
		if math.Abs(rraw.Data[i*rraw.Stride+i]) == 0 {
			r.stats.Skipped++

			return
		}
	}
	tri := blas64.Triangular{
		Uplo:   blas.Upper,
		Diag:   blas.NonUnit,
		N:      n,
		Data:   rraw.Data,
		Stride: rraw.Stride,
	}

	// g = Aᵀ(b − A·x).
	blas64.Copy(r.b.RawVector(), r.rf.RawVector())
	blas64.Gemv(blas.NoTrans, -1, r.a.RawMatrix(), r.x.RawVector(), 1, r.rf.RawVector())
	blas64.Gemv(blas.Trans, 1, r.a.RawMatrix(), r.rf.RawVector(), 0, r.g.RawVector())

	// Rᵀz = g, then R·u = z, in place.
	gv := r.g.RawVector()
	blas64.Trsv(blas.Trans, tri, gv)
	blas64.Trsv(blas.NoTrans, tri, gv)

	blas64.Axpy(r.alpha, gv, r.x.RawVector())
}

// Converged reports whether the tracker's stopping criterion fired.
func (r *IHSRecipe) Converged() bool { return r.trk.Converged() }

// Residual returns the vector behind the metric's latest estimate,
// sharing storage with the metric; overwritten by the next iteration.
func (r *IHSRecipe) Residual() *mat.VecDense { return r.errRec.residual() }

// Tracker returns the realized tracker.
func (r *IHSRecipe) Tracker() tracker.Tracker { return r.trk }

// Stats reports iteration counts for the run so far.
func (r *IHSRecipe) Stats() Stats { return r.stats }

// SolveIHS is Complete followed by Run.
func SolveIHS(cfg IHS, x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (Stats, error) {
	r, err := cfg.Complete(x, a, b)
	if err != nil {
		return Stats{}, err
	}
	if err = r.Run(); err != nil {
		return r.Stats(), err
	}

	return r.Stats(), nil
}
