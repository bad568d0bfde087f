// Package sketch - sub-sampling by distribution.
package sketch

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/dist"
)

// SubSample configures a compression operator that draws Dim indices from
// a weighted index distribution over the target's rows (Left) or columns
// (Right). Application is a gather-scale-accumulate rather than a matrix
// product; sampled index i carries the importance weight 1/√(Dim·wᵢ), so
// with-replacement draws are expectation-correct: E‖S·x‖² = ‖x‖².
//
// Data-dependent distributions (FrobeniusNorm, LeverageScore) require
// CompleteFor; Complete with only a shape works for dist.Uniform and
// otherwise fails with ErrTargetRequired.
type SubSample struct {
	Cardinality Cardinality

	// Dim is the number of indices drawn per realization.
	Dim int

	// Dist selects the weight model; nil means dist.Uniform{}.
	Dist dist.Config

	// Replace selects drawing with replacement. Without replacement the
	// importance weights keep the same form; the small bias this leaves is
	// the usual price of distinct indices and is documented, not hidden.
	Replace bool

	Src *rand.Rand
}

type subSampleRecipe struct {
	card    Cardinality
	dim     int
	n       int
	replace bool
	d       *dist.Recipe
	idx     []int     // sampled indices, len dim
	scale   []float64 // importance weights, len dim
	src     *rand.Rand
}

var _ Recipe = (*subSampleRecipe)(nil)

func (s SubSample) complete(rows, cols int, target mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(s.Dim)
	if err != nil {
		return nil, err
	}

	_, _, n := realizedShape(s.Cardinality, dim, rows, cols)
	cfg := s.Dist
	if cfg == nil {
		cfg = dist.Uniform{}
	}
	src := ensureSrc(s.Src)

	var d *dist.Recipe
	if target == nil {
		if _, uniform := cfg.(dist.Uniform); !uniform {
			return nil, ErrTargetRequired
		}
		d, err = dist.CompleteUniform(n, src)
	} else {
		ax := dist.ByRow
		if s.Cardinality == Right {
			ax = dist.ByCol
		}
		d, err = dist.Complete(cfg, target, ax, src)
	}
	if err != nil {
		return nil, err
	}
	if !s.Replace && dim > n {
		return nil, ErrNonPositiveDim
	}

	rec := &subSampleRecipe{
		card:    s.Cardinality,
		dim:     dim,
		n:       n,
		replace: s.Replace,
		d:       d,
		idx:     make([]int, dim),
		scale:   make([]float64, dim),
		src:     src,
	}
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *subSampleRecipe) Dims() (int, int) {
	if s.card == Right {
		return s.n, s.dim
	}

	return s.dim, s.n
}

func (s *subSampleRecipe) Kind() Kind { return KindSubSample }

// Update redraws the index sample and its importance weights in place.
// O(dim log n), zero allocations.
func (s *subSampleRecipe) Update() error {
	if err := s.d.Sample(s.idx, s.replace); err != nil {
		return err
	}
	sInv := float64(s.dim)
	for k, i := range s.idx {
		s.scale[k] = 1 / math.Sqrt(sInv*s.d.Weights[i])
	}

	return nil
}

func (s *subSampleRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, sd side, trans bool) error {
	prescale(dst, beta)
	dv := view{g: dst.RawMatrix()}
	sv := view{g: generalOf(src)}
	eff := trans
	if sd == sideRight {
		dv.t, sv.t = true, true
		eff = !eff
	}
	toS := (s.card == Left) != eff

	k := sv.cols()
	for r, i := range s.idx {
		av := alpha * s.scale[r]
		for c := 0; c < k; c++ {
			if toS {
				dv.add(r, c, av*sv.at(i, c)) // gather row i into slot r
			} else {
				dv.add(i, c, av*sv.at(r, c)) // scatter slot r back to row i
			}
		}
	}

	return nil
}
