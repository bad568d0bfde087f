// Package sketch - Subsampled Randomized Hadamard Transform.
package sketch

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// SRHT configures the same skeleton as FJLT but with a structurally
// simpler K: a uniform without-replacement selection of Dim coordinates
// out of the padded dimension p, scaled by √(p/Dim) so that the operator
// is expectation-correct against the orthonormal transform.
type SRHT struct {
	Cardinality Cardinality

	// Dim is the compression dimension s.
	Dim int

	// BlockSize bounds the padded streaming buffer.
	BlockSize int

	Src *rand.Rand
}

type srhtRecipe struct {
	*hadamardCore

	kscale float64 // √(p/dim)
	idx    []int   // selected coordinates, len dim, sorted ascending
	perm   []int   // reusable Fisher–Yates buffer, len p
}

var _ Recipe = (*srhtRecipe)(nil)

func (s SRHT) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(s.Dim)
	if err != nil {
		return nil, err
	}
	block, err := effectiveBlock(s.BlockSize)
	if err != nil {
		return nil, err
	}

	_, _, n := realizedShape(s.Cardinality, dim, rows, cols)
	core := newHadamardCore(s.Cardinality, dim, n, block, ensureSrc(s.Src))
	if dim > core.p {
		// Cannot select more coordinates than the padded dimension holds.
		return nil, ErrNonPositiveDim
	}
	rec := &srhtRecipe{
		hadamardCore: core,
		kscale:       math.Sqrt(float64(core.p) / float64(dim)),
		idx:          make([]int, dim),
		perm:         make([]int, core.p),
	}
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *srhtRecipe) Dims() (int, int) { return s.dims() }
func (s *srhtRecipe) Kind() Kind       { return KindSRHT }

// Update resamples the sign diagonal and the coordinate selection in
// place (partial Fisher–Yates over a reused buffer, then sorted for
// deterministic traversal). O(p + dim log dim), zero allocations.
func (s *srhtRecipe) Update() error {
	s.resampleSigns()
	for i := range s.perm {
		s.perm[i] = i
	}
	for k := 0; k < s.dim; k++ {
		r := k + s.src.Intn(s.p-k)
		s.perm[k], s.perm[r] = s.perm[r], s.perm[k]
		s.idx[k] = s.perm[k]
	}
	sort.Ints(s.idx)

	return nil
}

func (s *srhtRecipe) pushK(dst view, off, nb int, alpha float64, pad [][]float64) {
	a := alpha * s.kscale
	for i, j := range s.idx {
		for c := 0; c < nb; c++ {
			dst.add(i, off+c, a*pad[c][j])
		}
	}
}

func (s *srhtRecipe) pullK(src view, off, nb int, pad [][]float64) {
	for i, j := range s.idx {
		for c := 0; c < nb; c++ {
			pad[c][j] += s.kscale * src.at(i, off+c)
		}
	}
}

func (s *srhtRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, sd side, trans bool) error {
	return s.hadamardApply(s, dst, src, alpha, beta, sd, trans)
}
