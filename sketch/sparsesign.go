// Package sketch - sparse-sign compression.
package sketch

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// SparseSign configures a sparse operator where each of the target's
// initial dimensions (columns for Left, rows for Right) receives exactly
// NNZ nonzero positions drawn without replacement from 1..Dim, each
// independently ±1/√NNZ. Storage is compressed-sparse-column; the Right
// cardinality stores the transpose of a Left-shaped matrix so both
// directions share one code path.
//
// Defaults: Dim=DefaultDim, NNZ=min(DefaultNNZ, Dim).
type SparseSign struct {
	Cardinality Cardinality

	// Dim is the compression dimension s.
	Dim int

	// NNZ is the number of nonzeros per initial dimension; must satisfy
	// 1 <= NNZ <= Dim. Zero resolves to min(DefaultNNZ, Dim).
	NNZ int

	Src *rand.Rand
}

type sparseSignRecipe struct {
	card Cardinality
	dim  int
	nnz  int
	n    int        // initial (uncompressed) dimension
	m    *cscMatrix // Left-shaped (dim × n) storage
	perm []int      // reusable partial Fisher–Yates buffer, len dim
	src  *rand.Rand
}

var _ Recipe = (*sparseSignRecipe)(nil)

func (s SparseSign) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(s.Dim)
	if err != nil {
		return nil, err
	}
	nnz := s.NNZ
	if nnz == 0 {
		nnz = DefaultNNZ
		if nnz > dim {
			nnz = dim
		}
	}
	if nnz < 1 || nnz > dim {
		return nil, ErrNNZRange
	}

	_, _, n := realizedShape(s.Cardinality, dim, rows, cols)
	rec := &sparseSignRecipe{
		card: s.Cardinality,
		dim:  dim,
		nnz:  nnz,
		n:    n,
		m:    newCSC(dim, n, nnz),
		perm: make([]int, dim),
		src:  ensureSrc(s.Src),
	}
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *sparseSignRecipe) Dims() (int, int) {
	if s.card == Right {
		return s.n, s.dim
	}

	return s.dim, s.n
}

func (s *sparseSignRecipe) Kind() Kind { return KindSparseSign }

// Update resamples every column's nonzero positions (without replacement,
// partial Fisher–Yates over a reused buffer) and signs in place.
// O(n*(dim+nnz)), zero allocations.
func (s *sparseSignRecipe) Update() error {
	v := 1 / math.Sqrt(float64(s.nnz))
	for j := 0; j < s.n; j++ {
		for i := range s.perm {
			s.perm[i] = i
		}
		base := s.m.indptr[j]
		for k := 0; k < s.nnz; k++ {
			r := k + s.src.Intn(s.dim-k)
			s.perm[k], s.perm[r] = s.perm[r], s.perm[k]
			s.m.rowind[base+k] = s.perm[k]
			if s.src.Float64() < 0.5 {
				s.m.val[base+k] = v
			} else {
				s.m.val[base+k] = -v
			}
		}
	}

	return nil
}

func (s *sparseSignRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, sd side, trans bool) error {
	// Right cardinality realizes the transpose of the stored Left shape.
	return s.m.scatterApply(dst, src, alpha, beta, sd, trans, s.card == Right)
}
