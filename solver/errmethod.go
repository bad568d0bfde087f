package solver

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// ErrorConfig selects the scalar progress metric the loop feeds its
// tracker. Realized once per solve; realizations own their buffers.
type ErrorConfig interface {
	// complete binds the metric to the system. a and b are borrowed for
	// the lifetime of the recipe.
	complete(a *mat.Dense, b *mat.VecDense) (errorRecipe, error)
}

// errorRecipe computes one estimate per iteration into reused storage.
type errorRecipe interface {
	// estimate returns the metric at the current iterate.
	estimate(x *mat.VecDense) float64

	// residual exposes the vector behind the last estimate. Valid until
	// the next estimate call.
	residual() *mat.VecDense
}

// sketchSystem is the capability a solver offers when it maintains a
// compressed (S·A, S·b) pair between iterations. CompressedResidual
// requires it; mixing that metric with a solver lacking the capability
// is an ErrIncompatible at Complete time.
type sketchSystem interface {
	compressedSystem() (sa *mat.Dense, sb *mat.VecDense)
}

// sketchBound marks error recipes that read the solver's compressed
// system; the solver wires itself in during Complete.
type sketchBound interface {
	bind(src sketchSystem, maxRows int)
}

// FullResidual measures ‖b − A·x‖: exact, one matrix-vector product per
// iteration. The default metric.
type FullResidual struct{}

type fullResidual struct {
	a  blas64.General
	b  blas64.Vector
	r  blas64.Vector
	rv *mat.VecDense
}

func (FullResidual) complete(a *mat.Dense, b *mat.VecDense) (errorRecipe, error) {
	m, _ := a.Dims()
	data := make([]float64, m)

	return &fullResidual{
		a:  a.RawMatrix(),
		b:  b.RawVector(),
		r:  blas64.Vector{N: m, Inc: 1, Data: data},
		rv: mat.NewVecDense(m, data),
	}, nil
}

func (f *fullResidual) estimate(x *mat.VecDense) float64 {
	blas64.Copy(f.b, f.r)
	blas64.Gemv(blas.NoTrans, -1, f.a, x.RawVector(), 1, f.r)

	return blas64.Nrm2(f.r)
}

func (f *fullResidual) residual() *mat.VecDense { return f.rv }

// LSGradient measures ‖Aᵀ(b − A·x)‖, the least-squares gradient norm:
// the right metric for inconsistent systems, where the residual itself
// never reaches zero.
type LSGradient struct{}

type lsGradient struct {
	a  blas64.General
	b  blas64.Vector
	r  blas64.Vector
	g  blas64.Vector
	rv *mat.VecDense
}

func (LSGradient) complete(a *mat.Dense, b *mat.VecDense) (errorRecipe, error) {
	m, n := a.Dims()
	rdata := make([]float64, m)

	return &lsGradient{
		a:  a.RawMatrix(),
		b:  b.RawVector(),
		r:  blas64.Vector{N: m, Inc: 1, Data: rdata},
		g:  blas64.Vector{N: n, Inc: 1, Data: make([]float64, n)},
		rv: mat.NewVecDense(m, rdata),
	}, nil
}

func (l *lsGradient) estimate(x *mat.VecDense) float64 {
	blas64.Copy(l.b, l.r)
	blas64.Gemv(blas.NoTrans, -1, l.a, x.RawVector(), 1, l.r)
	blas64.Gemv(blas.Trans, 1, l.a, l.r, 0, l.g)

	return blas64.Nrm2(l.g)
}

func (l *lsGradient) residual() *mat.VecDense { return l.rv }

// CompressedResidual measures ‖S·b − S·A·x‖ against the solver's current
// sketch: O(s·n) per estimate instead of O(m·n), and the quantity whose
// concentration the moving-average tracker's credible bands model.
//
// Only solvers that keep a compressed (S·A, S·b) pair support it.
type CompressedResidual struct{}

type compressedResidual struct {
	src sketchSystem
	buf []float64
	rc  *mat.VecDense
}

func (CompressedResidual) complete(_ *mat.Dense, _ *mat.VecDense) (errorRecipe, error) {
	// Wiring happens at bind time; the system matrices are read through
	// the solver's compressed views.
	return &compressedResidual{}, nil
}

func (c *compressedResidual) bind(src sketchSystem, maxRows int) {
	c.src = src
	c.buf = make([]float64, maxRows)
}

func (c *compressedResidual) estimate(x *mat.VecDense) float64 {
	sa, sb := c.src.compressedSystem()
	s := sb.Len()
	rc := blas64.Vector{N: s, Inc: 1, Data: c.buf[:s]}

	blas64.Copy(sb.RawVector(), rc)
	blas64.Gemv(blas.NoTrans, -1, sa.RawMatrix(), x.RawVector(), 1, rc)
	c.rc = mat.NewVecDense(s, rc.Data)

	return blas64.Nrm2(rc)
}

func (c *compressedResidual) residual() *mat.VecDense { return c.rc }
