// Package sketch - dense Gaussian compression.
package sketch

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Gaussian configures a dense operator with i.i.d. N(0, 1/Dim) entries, so
// that E‖S·x‖² = ‖x‖². The most robust (and most expensive) sketch: one
// dense BLAS-3 product per application.
//
// Zero values resolve to documented defaults: Dim=DefaultDim, Src=nil ⇒
// deterministic fixed-seed stream.
type Gaussian struct {
	// Cardinality selects row (Left) or column (Right) compression.
	Cardinality Cardinality

	// Dim is the compression dimension s.
	Dim int

	// Src is the randomness source; nil selects the deterministic default.
	Src *rand.Rand
}

type gaussianRecipe struct {
	card Cardinality
	dim  int // compression dimension s
	m    *mat.Dense
	src  *rand.Rand
}

var _ Recipe = (*gaussianRecipe)(nil)

func (g Gaussian) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(g.Dim)
	if err != nil {
		return nil, err
	}

	r, c, _ := realizedShape(g.Cardinality, dim, rows, cols)
	rec := &gaussianRecipe{
		card: g.Cardinality,
		dim:  dim,
		m:    mat.NewDense(r, c, nil),
		src:  ensureSrc(g.Src),
	}
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (g *gaussianRecipe) Dims() (int, int) { return g.m.Dims() }
func (g *gaussianRecipe) Kind() Kind       { return KindGaussian }

// Update refills the dense operator with fresh N(0, 1/s) draws in place.
// O(rows*cols), zero allocations.
func (g *gaussianRecipe) Update() error {
	raw := g.m.RawMatrix()
	std := 1 / math.Sqrt(float64(g.dim))
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] = g.src.NormFloat64() * std
		}
	}

	return nil
}

func (g *gaussianRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error {
	return denseApply(dst, g.m, src, alpha, beta, s, trans)
}

// denseApply runs the multiply protocol for dense-backed operators through
// a single BLAS-3 call. Shared with the Identity pass-through.
func denseApply(dst, opm *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error {
	tOp := blas.NoTrans
	if trans {
		tOp = blas.Trans
	}
	sg := generalOf(src)
	dg := dst.RawMatrix()
	og := opm.RawMatrix()
	if s == sideLeft {
		blas64.Gemm(tOp, blas.NoTrans, alpha, og, sg, beta, dg)

		return nil
	}
	blas64.Gemm(blas.NoTrans, tOp, alpha, sg, og, beta, dg)

	return nil
}
