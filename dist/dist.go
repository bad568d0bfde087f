// Package dist - configs, completion and weighted sampling.
//
// Design principles:
//   - Configs are immutable tags; Complete realizes them into a Recipe
//     owning the index universe and the normalized weight vector.
//   - Sampling is deterministic for a fixed source: without replacement
//     uses gonum's weighted sampler over a reused state, with replacement
//     uses inverse-CDF draws over a precomputed cumulative table.
//   - Only sentinel errors; no panics on user input.
package dist

import (
	"errors"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Axis selects which index universe a distribution covers.
type Axis uint8

const (
	// ByRow weights the row indices of the target.
	ByRow Axis = iota
	// ByCol weights the column indices of the target.
	ByCol
)

// Sentinel errors.
var (
	// ErrNilMatrix is returned when Complete receives a nil target.
	ErrNilMatrix = errors.New("dist: nil target matrix")

	// ErrBadAxis is returned for an unknown Axis value.
	ErrBadAxis = errors.New("dist: unknown axis")

	// ErrZeroWeights is returned when every candidate weight is zero
	// (e.g. a frobenius distribution over an all-zero matrix).
	ErrZeroWeights = errors.New("dist: all weights are zero")

	// ErrSampleSize is returned when a without-replacement sample asks for
	// more indices than the universe holds, or for an empty request.
	ErrSampleSize = errors.New("dist: invalid sample size")
)

// defaultRNGSeed mirrors the sketch package policy: nil source ⇒ fixed
// deterministic stream.
const defaultRNGSeed uint64 = 1

// Config is an immutable distribution configuration.
type Config interface {
	weights(a mat.Matrix, ax Axis, n int) ([]float64, error)
}

// Uniform assigns equal weight to every index. It is the only variant
// that can be completed without a target matrix (see CompleteUniform).
type Uniform struct{}

// FrobeniusNorm weights each index by the squared Euclidean norm of the
// corresponding row (ByRow) or column (ByCol).
type FrobeniusNorm struct{}

// LeverageScore weights each index by its statistical leverage: the
// squared row norm of the thin singular factor (U for rows, V for
// columns). More expensive to build (one thin SVD) but sharply favors
// influential rows/columns.
type LeverageScore struct{}

// Recipe owns an index universe 0..N-1 and a normalized weight vector.
// Invariant: weights are non-negative and sum to 1.
type Recipe struct {
	// N is the universe size.
	N int

	// Weights is the normalized weight vector, len N.
	Weights []float64

	cum []float64 // cumulative table for with-replacement draws
	w   sampleuv.Weighted
	src *rand.Rand
}

// Complete realizes cfg against a's ax-side index universe. src may be
// nil for the deterministic default stream.
//
// Complexity: Uniform/FrobeniusNorm O(rows*cols); LeverageScore adds one
// thin SVD, O(rows*cols*min(rows,cols)).
func Complete(cfg Config, a mat.Matrix, ax Axis, src *rand.Rand) (*Recipe, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if ax != ByRow && ax != ByCol {
		return nil, ErrBadAxis
	}
	r, c := a.Dims()
	n := r
	if ax == ByCol {
		n = c
	}
	w, err := cfg.weights(a, ax, n)
	if err != nil {
		return nil, err
	}

	return newRecipe(w, src)
}

// CompleteUniform realizes a uniform distribution over 0..n-1 without a
// target matrix.
func CompleteUniform(n int, src *rand.Rand) (*Recipe, error) {
	if n <= 0 {
		return nil, ErrSampleSize
	}

	return newRecipe(uniformWeights(n), src)
}

func newRecipe(w []float64, src *rand.Rand) (*Recipe, error) {
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total <= 0 {
		return nil, ErrZeroWeights
	}
	cum := make([]float64, len(w))
	run := 0.0
	for i, v := range w {
		w[i] = v / total
		run += w[i]
		cum[i] = run
	}
	if src == nil {
		src = rand.New(rand.NewSource(defaultRNGSeed))
	}

	return &Recipe{
		N:       len(w),
		Weights: w,
		cum:     cum,
		w:       sampleuv.NewWeighted(w, src),
		src:     src,
	}, nil
}

// Sample draws len(dst) indices into dst, weighted, ordered ascending.
// Without replacement the draw reuses the recipe's sampler state; with
// replacement it runs inverse-CDF lookups on the cumulative table.
// Amortized allocation-free.
//
// Errors: ErrSampleSize when len(dst) == 0 or, without replacement,
// len(dst) > N.
func (r *Recipe) Sample(dst []int, replace bool) error {
	k := len(dst)
	if k == 0 || (!replace && k > r.N) {
		return ErrSampleSize
	}
	if replace {
		for i := range dst {
			u := r.src.Float64()
			dst[i] = sort.SearchFloat64s(r.cum, u)
			if dst[i] >= r.N { // guard the u==1.0 boundary
				dst[i] = r.N - 1
			}
		}
		sort.Ints(dst)

		return nil
	}

	// Without replacement: gonum's weighted sampler zeroes taken weights;
	// reset them for the next call via ReweightAll.
	r.w.ReweightAll(r.Weights)
	for i := range dst {
		idx, ok := r.w.Take()
		if !ok {
			return ErrZeroWeights
		}
		dst[i] = idx
	}
	sort.Ints(dst)

	return nil
}

// ---------- weight builders ----------

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}

func (Uniform) weights(_ mat.Matrix, _ Axis, n int) ([]float64, error) {
	return uniformWeights(n), nil
}

func (FrobeniusNorm) weights(a mat.Matrix, ax Axis, n int) ([]float64, error) {
	r, c := a.Dims()
	w := make([]float64, n)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if ax == ByRow {
				w[i] += v * v
			} else {
				w[j] += v * v
			}
		}
	}

	return w, nil
}

func (LeverageScore) weights(a mat.Matrix, ax Axis, n int) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, ErrZeroWeights
	}
	var f mat.Dense
	if ax == ByRow {
		svd.UTo(&f)
	} else {
		svd.VTo(&f)
	}
	fr, fc := f.Dims()
	if fr != n {
		return nil, ErrBadAxis
	}
	w := make([]float64, n)
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			v := f.At(i, j)
			w[i] += v * v
		}
	}

	return w, nil
}
