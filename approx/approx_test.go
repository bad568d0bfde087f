package approx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/approx"
)

// lowRank builds an m×n matrix of exact rank k with unit-scale factors.
func lowRank(m, n, k int, rng *rand.Rand) *mat.Dense {
	left := mat.NewDense(m, k, nil)
	right := mat.NewDense(k, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			left.Set(i, j, rng.NormFloat64())
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			right.Set(i, j, rng.NormFloat64())
		}
	}
	var a mat.Dense
	a.Mul(left, right)

	return &a
}

// TestRangeFinder_CapturesLowRank verifies that the sketched basis
// captures an exactly rank-k matrix to numerical precision.
func TestRangeFinder_CapturesLowRank(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a := lowRank(60, 40, 5, rng)

	rf := &approx.RangeFinder{Rank: 5, Src: rng}
	require.NoError(t, rf.Approximate(a))

	q, err := rf.Q()
	require.NoError(t, err)
	qr, qc := q.Dims()
	assert.Equal(t, 60, qr, "basis rows match the target")
	assert.Equal(t, 5+8, qc, "basis cols are rank plus default oversampling")

	res, err := rf.Residual(a)
	require.NoError(t, err)
	assert.Less(t, res, 1e-10, "an exact rank-5 matrix must be captured")
}

// TestRangeFinder_Orthonormal verifies QᵀQ = I.
func TestRangeFinder_Orthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	a := lowRank(30, 20, 4, rng)

	rf := &approx.RangeFinder{Rank: 4, Oversample: 2, Src: rng}
	require.NoError(t, rf.Approximate(a))
	q, err := rf.Q()
	require.NoError(t, err)

	var gram mat.Dense
	gram.Mul(q.T(), q)
	r, _ := gram.Dims()
	eye := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		eye.Set(i, i, 1)
	}
	assert.True(t, mat.EqualApprox(eye, &gram, 1e-10), "the basis must be orthonormal")
}

// TestRangeFinder_Errors covers the validation and ordering sentinels.
func TestRangeFinder_Errors(t *testing.T) {
	rf := &approx.RangeFinder{}
	assert.ErrorIs(t, rf.Approximate(mat.NewDense(4, 4, nil)), approx.ErrBadRank,
		"zero rank must error")

	rf = &approx.RangeFinder{Rank: 2}
	_, err := rf.Q()
	assert.ErrorIs(t, err, approx.ErrNotApproximated, "Q before Approximate must error")
	_, err = rf.Residual(mat.NewDense(4, 4, nil))
	assert.ErrorIs(t, err, approx.ErrNotApproximated, "Residual before Approximate must error")
}
