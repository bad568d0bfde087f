// Package sketch - shared multiply kernels and raw-storage helpers.
//
// Purpose:
//   - One set of low-level utilities used by every recipe: raw views of
//     gonum containers, beta pre-scaling, transposed-access adapters and
//     the compressed-sparse-column scatter kernel shared by SparseSign
//     and CountSketch.
//
// Determinism & Performance:
//   - Fixed loop orders, no map iteration, no hidden allocations on the
//     fast paths (*mat.Dense / contiguous *mat.VecDense operands); other
//     mat.Matrix implementations are copied once per call.
package sketch

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// generalOf returns a raw row-major view of m, copying only when m does
// not expose contiguous raw storage.
func generalOf(m mat.Matrix) blas64.General {
	switch t := m.(type) {
	case *mat.Dense:
		return t.RawMatrix()
	case *mat.VecDense:
		if rv := t.RawVector(); rv.Inc == 1 {
			return blas64.General{Rows: t.Len(), Cols: 1, Stride: 1, Data: rv.Data}
		}
	case mat.RawMatrixer:
		return t.RawMatrix()
	}

	return mat.DenseCopyOf(m).RawMatrix()
}

// colDense wraps a contiguous vector as an n×1 dense view without copying.
// The second return is false when the vector is strided.
func colDense(v mat.Vector) (*mat.Dense, bool) {
	vd, ok := v.(*mat.VecDense)
	if !ok {
		return nil, false
	}
	rv := vd.RawVector()
	if rv.Inc != 1 {
		return nil, false
	}

	return mat.NewDense(vd.Len(), 1, rv.Data[:vd.Len()]), true
}

// prescale folds the beta term of dst = alpha*M*src + beta*dst into dst,
// so scatter kernels only accumulate afterwards. O(rows*cols).
func prescale(dst *mat.Dense, beta float64) {
	if beta == 1 {
		return
	}
	raw := dst.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		if beta == 0 {
			for j := range row {
				row[j] = 0
			}
			continue
		}
		for j := range row {
			row[j] *= beta
		}
	}
}

// view is a possibly-transposed accessor over raw row-major storage.
// It lets one kernel serve all four side/transpose combinations: a right
// multiply dst = src*M is executed as dstᵀ = Mᵀ*srcᵀ on transposed views.
type view struct {
	g blas64.General
	t bool
}

func (v view) rows() int {
	if v.t {
		return v.g.Cols
	}

	return v.g.Rows
}

func (v view) cols() int {
	if v.t {
		return v.g.Rows
	}

	return v.g.Cols
}

func (v view) at(i, j int) float64 {
	if v.t {
		i, j = j, i
	}

	return v.g.Data[i*v.g.Stride+j]
}

func (v view) add(i, j int, x float64) {
	if v.t {
		i, j = j, i
	}
	v.g.Data[i*v.g.Stride+j] += x
}

// cscMatrix is a compressed-sparse-column operator with a fixed column
// count and a fixed per-column entry budget. SparseSign stores nnz entries
// per column; CountSketch stores exactly one. Entry positions and values
// are resampled in place by the owning recipe's Update.
type cscMatrix struct {
	rows, cols int
	indptr     []int     // len cols+1, fixed after allocation
	rowind     []int     // len indptr[cols]
	val        []float64 // len indptr[cols]
}

// newCSC allocates a CSC skeleton with perCol entries in every column.
func newCSC(rows, cols, perCol int) *cscMatrix {
	m := &cscMatrix{
		rows:   rows,
		cols:   cols,
		indptr: make([]int, cols+1),
		rowind: make([]int, cols*perCol),
		val:    make([]float64, cols*perCol),
	}
	for j := 1; j <= cols; j++ {
		m.indptr[j] = j * perCol
	}

	return m
}

// scatter accumulates dst += alpha*M*src where M is the stored matrix,
// transposed when trans is true. Beta handling is the caller's concern
// (prescale). O(nnz * cols(src)).
func (m *cscMatrix) scatter(dst, src view, alpha float64, trans bool) {
	k := src.cols()
	for j := 0; j < m.cols; j++ {
		for e := m.indptr[j]; e < m.indptr[j+1]; e++ {
			r, c := m.rowind[e], j
			if trans {
				r, c = c, r
			}
			av := alpha * m.val[e]
			for cc := 0; cc < k; cc++ {
				dst.add(r, cc, av*src.at(c, cc))
			}
		}
	}
}

// scatterApply is the full side/transpose router shared by the CSC-backed
// recipes. stored is the orientation of the in-memory matrix relative to
// the effective operator: when the recipe realizes a Right-cardinality
// operator from Left-shaped storage it passes storedTrans=true.
func (m *cscMatrix) scatterApply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans, storedTrans bool) error {
	prescale(dst, beta)
	eff := trans != storedTrans // effective transposition of the stored matrix
	dv := view{g: dst.RawMatrix()}
	sv := view{g: generalOf(src)}
	if s == sideRight {
		// dst = src*M  ⇔  dstᵀ = Mᵀ*srcᵀ.
		dv.t, sv.t = true, true
		eff = !eff
	}
	m.scatter(dv, sv, alpha, eff)

	return nil
}
