package dist_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/dist"
)

func src(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// TestComplete_UniformWeights verifies that uniform weights normalize to
// 1/n on both axes.
func TestComplete_UniformWeights(t *testing.T) {
	a := mat.NewDense(4, 6, nil)

	byRow, err := dist.Complete(dist.Uniform{}, a, dist.ByRow, src(1))
	require.NoError(t, err)
	require.Equal(t, 4, byRow.N, "row axis must weight rows")
	for _, w := range byRow.Weights {
		assert.InDelta(t, 0.25, w, 1e-15, "uniform row weight")
	}

	byCol, err := dist.Complete(dist.Uniform{}, a, dist.ByCol, src(2))
	require.NoError(t, err)
	require.Equal(t, 6, byCol.N, "col axis must weight cols")
}

// TestComplete_FrobeniusWeights verifies the squared-norm proportions.
func TestComplete_FrobeniusWeights(t *testing.T) {
	// Rows with norms 1, 2, 3 → squared weights 1/14, 4/14, 9/14.
	a := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 2,
		3, 0,
	})

	rec, err := dist.Complete(dist.FrobeniusNorm{}, a, dist.ByRow, src(3))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/14, rec.Weights[0], 1e-12, "first row weight")
	assert.InDelta(t, 4.0/14, rec.Weights[1], 1e-12, "second row weight")
	assert.InDelta(t, 9.0/14, rec.Weights[2], 1e-12, "third row weight")
}

// TestComplete_LeverageWeights verifies leverage scores sum to one and
// rank an outlier row above interior rows.
func TestComplete_LeverageWeights(t *testing.T) {
	rng := src(4)
	a := mat.NewDense(20, 3, nil)
	for i := 0; i < 20; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}
	// Give the last row ten times the scale of the others.
	for j := 0; j < 3; j++ {
		a.Set(19, j, 10*a.At(19, j))
	}

	rec, err := dist.Complete(dist.LeverageScore{}, a, dist.ByRow, src(5))
	require.NoError(t, err)

	var sum float64
	for _, w := range rec.Weights {
		require.False(t, math.IsNaN(w), "weights must be finite")
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12, "leverage weights must normalize")
	assert.Greater(t, rec.Weights[19], 1.0/20,
		"the dominant row must carry above-uniform leverage")
}

// TestComplete_Sentinels checks the validation errors.
func TestComplete_Sentinels(t *testing.T) {
	_, err := dist.Complete(dist.Uniform{}, nil, dist.ByRow, src(6))
	assert.ErrorIs(t, err, dist.ErrNilMatrix, "nil matrix must error")

	_, err = dist.Complete(dist.Uniform{}, mat.NewDense(2, 2, nil), dist.Axis(9), src(7))
	assert.ErrorIs(t, err, dist.ErrBadAxis, "unknown axis must error")

	_, err = dist.Complete(dist.FrobeniusNorm{}, mat.NewDense(3, 3, nil), dist.ByRow, src(8))
	assert.ErrorIs(t, err, dist.ErrZeroWeights, "all-zero matrix must error")
}

// TestSample_WithReplacement verifies sorted output, bounds and rough
// agreement with the weights.
func TestSample_WithReplacement(t *testing.T) {
	rec, err := dist.CompleteUniform(10, src(9))
	require.NoError(t, err)

	idx := make([]int, 2000)
	require.NoError(t, rec.Sample(idx, true))

	counts := make([]int, 10)
	for k := 1; k < len(idx); k++ {
		require.GreaterOrEqual(t, idx[k], 0, "indices in range")
		require.Less(t, idx[k], 10, "indices in range")
		assert.LessOrEqual(t, idx[k-1], idx[k], "output must be sorted")
	}
	for _, i := range idx {
		counts[i]++
	}
	for i, c := range counts {
		assert.InDelta(t, 200, c, 80, "index %d frequency must be near uniform", i)
	}
}

// TestSample_WithoutReplacement verifies distinct sorted indices.
func TestSample_WithoutReplacement(t *testing.T) {
	rec, err := dist.CompleteUniform(12, src(10))
	require.NoError(t, err)

	idx := make([]int, 5)
	require.NoError(t, rec.Sample(idx, false))

	require.True(t, sort.IntsAreSorted(idx), "output must be sorted")
	for k := 1; k < len(idx); k++ {
		assert.NotEqual(t, idx[k-1], idx[k], "indices must be distinct")
	}
}

// TestSample_SizeSentinel verifies the sample-size guard: an empty draw
// and an oversized without-replacement draw both error.
func TestSample_SizeSentinel(t *testing.T) {
	rec, err := dist.CompleteUniform(3, src(11))
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Sample(nil, true), dist.ErrSampleSize, "empty draw must error")
	assert.ErrorIs(t, rec.Sample(make([]int, 4), false), dist.ErrSampleSize,
		"oversized draw without replacement must error")
}
