package sketch_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
)

// TestEnergyPreservation verifies the scaling contract E‖S·x‖² = ‖x‖²
// for every kind, by averaging over many independent resamples of one
// recipe. The tolerance is loose: this is a law-of-large-numbers check
// of the normalization constants, not of the tail behavior.
func TestEnergyPreservation(t *testing.T) {
	const (
		n       = 48
		dim     = 8
		rounds  = 600
		relTol  = 0.1
	)

	rng := src(31)
	xdata := make([]float64, n)
	for i := range xdata {
		xdata[i] = rng.NormFloat64()
	}
	x := mat.NewVecDense(n, xdata)
	norm2 := math.Pow(mat.Norm(x, 2), 2)

	for name, cfg := range map[string]sketch.Config{
		"gaussian":    sketch.Gaussian{Cardinality: sketch.Left, Dim: dim, Src: src(32)},
		"sparsesign":  sketch.SparseSign{Cardinality: sketch.Left, Dim: dim, NNZ: 4, Src: src(33)},
		"countsketch": sketch.CountSketch{Cardinality: sketch.Left, Dim: dim, Src: src(34)},
		"fjlt":        sketch.FJLT{Cardinality: sketch.Left, Dim: dim, Src: src(35)},
		"srht":        sketch.SRHT{Cardinality: sketch.Left, Dim: dim, Src: src(36)},
		"subsample":   sketch.SubSample{Cardinality: sketch.Left, Dim: dim, Replace: true, Src: src(37)},
	} {
		rec, err := sketch.Complete(cfg, n, 1)
		require.NoError(t, err, "%s: completion must succeed", name)

		dst := mat.NewVecDense(dim, nil)
		var sum float64
		for round := 0; round < rounds; round++ {
			require.NoError(t, sketch.MulVec(dst, rec, x, 1, 0), "%s: multiply must succeed", name)
			sum += math.Pow(mat.Norm(dst, 2), 2)
			require.NoError(t, rec.Update(), "%s: update must succeed", name)
		}

		mean := sum / rounds
		require.InEpsilon(t, norm2, mean, relTol,
			"%s: mean sketched energy must match the input energy", name)
	}
}
