package approx

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/dist"
	"github.com/katalvlaran/randla/sketch"
)

// Sentinel errors.
var (
	// ErrBadRank is returned for a non-positive target rank.
	ErrBadRank = errors.New("approx: target rank must be > 0")

	// ErrNotApproximated is returned by accessors called before a
	// successful Approximate.
	ErrNotApproximated = errors.New("approx: Approximate has not run")
)

// Approximator consumes a matrix and retains a low-rank surrogate;
// realization-specific accessors expose the factors.
type Approximator interface {
	Approximate(a mat.Matrix) error
}

// CUR declares the configuration of a column/row skeleton factorization
// A ≈ C·U·R, with C and R drawn by importance sampling. Boundary
// contract: the factorization itself is not implemented here.
type CUR struct {
	// Rows and Cols select the sampling distributions for the skeleton
	// (leverage scores are the standard choice).
	Rows dist.Config
	Cols dist.Config

	Rank int
}

// Nystrom declares the configuration of a symmetric positive
// semi-definite Nyström approximation A ≈ C·W⁺·Cᵀ built from sampled
// landmark columns. Boundary contract: not implemented here.
type Nystrom struct {
	Landmarks dist.Config
	Rank      int
}

// RangeFinder computes an orthonormal basis Q of the sketched column
// space A·S, the first stage of every randomized factorization:
// ‖A − Q·Qᵀ·A‖ is small when Rank (plus oversampling) covers the
// numerical rank of A.
type RangeFinder struct {
	// Rank is the target basis size.
	Rank int

	// Oversample pads the sketch beyond Rank (default 8) to sharpen the
	// range capture.
	Oversample int

	// Compressor overrides the default Right-cardinality Gaussian.
	Compressor sketch.Config

	// Src seeds the default compressor; nil falls back to the package-wide
	// deterministic default.
	Src *rand.Rand

	q *mat.Dense
}

var _ Approximator = (*RangeFinder)(nil)

const defaultOversample = 8

// Approximate sketches a and orthonormalizes the result. The basis is
// available from Q afterwards.
//
// Errors: ErrBadRank, plus the compressor's own sentinels.
func (r *RangeFinder) Approximate(a mat.Matrix) error {
	if r.Rank <= 0 {
		return ErrBadRank
	}
	over := r.Oversample
	if over == 0 {
		over = defaultOversample
	}

	m, n := a.Dims()
	s := r.Rank + over
	if s > n {
		s = n
	}

	cfg := r.Compressor
	if cfg == nil {
		cfg = sketch.Gaussian{Cardinality: sketch.Right, Dim: s, Src: r.Src}
	}
	comp, err := sketch.CompleteFor(cfg, a)
	if err != nil {
		return err
	}
	_, s = comp.Dims()

	// Y = A·S, then Q from its thin QR.
	y, err := sketch.ApplyRight(a, comp)
	if err != nil {
		return err
	}
	var qr mat.QR
	qr.Factorize(y)
	var qfull mat.Dense
	qr.QTo(&qfull)
	r.q = mat.DenseCopyOf(qfull.Slice(0, m, 0, s))

	return nil
}

// Q returns the orthonormal basis of the captured range.
//
// Errors: ErrNotApproximated.
func (r *RangeFinder) Q() (*mat.Dense, error) {
	if r.q == nil {
		return nil, ErrNotApproximated
	}

	return r.q, nil
}

// Residual measures ‖A − Q·Qᵀ·A‖_F, the range-capture error of the
// current basis.
//
// Errors: ErrNotApproximated.
func (r *RangeFinder) Residual(a mat.Matrix) (float64, error) {
	if r.q == nil {
		return 0, ErrNotApproximated
	}

	var proj, diff mat.Dense
	proj.Mul(r.q.T(), a)
	diff.Mul(r.q, &proj)
	diff.Sub(a, &diff)

	return mat.Norm(&diff, 2), nil
}
