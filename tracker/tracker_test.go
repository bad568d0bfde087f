package tracker_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/tracker"
)

func meta() tracker.Meta {
	return tracker.Meta{Kind: sketch.KindGaussian, BlockSize: 1, Dim: 100}
}

// TestBasic_ThresholdStop verifies the built-in threshold criterion and
// history collection.
func TestBasic_ThresholdStop(t *testing.T) {
	trk, err := tracker.Basic{Threshold: 0.5}.Complete(meta())
	require.NoError(t, err)

	trk.Update(0, 2.0)
	assert.False(t, trk.Converged(), "above threshold must keep going")
	trk.Update(1, 0.4)
	assert.True(t, trk.Converged(), "at or below threshold must stop")
	assert.Equal(t, []float64{2.0, 0.4}, trk.History(), "every estimate recorded at rate 1")
}

// TestBasic_MaxIterationsStop verifies the iteration budget criterion.
func TestBasic_MaxIterationsStop(t *testing.T) {
	trk, err := tracker.Basic{MaxIterations: 3}.Complete(meta())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		trk.Update(i, 1.0)
		require.False(t, trk.Converged(), "budget not yet exhausted at %d", i)
	}
	trk.Update(2, 1.0)
	assert.True(t, trk.Converged(), "third update exhausts a budget of 3")
}

// TestBasic_CollectionRate verifies sub-sampled history recording.
func TestBasic_CollectionRate(t *testing.T) {
	trk, err := tracker.Basic{CollectionRate: 3}.Complete(meta())
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		trk.Update(i, float64(i))
	}
	assert.Equal(t, []float64{0, 3, 6}, trk.History(), "every third estimate recorded")

	_, err = tracker.Basic{CollectionRate: -1}.Complete(meta())
	assert.ErrorIs(t, err, tracker.ErrCollectionRate, "negative rate must error")
}

// TestMA_Defaults verifies the config validation and defaults.
func TestMA_Defaults(t *testing.T) {
	_, err := tracker.MA{}.Complete(meta())
	require.NoError(t, err, "zero config must resolve to defaults")

	_, err = tracker.MA{Lambda1: 5, Lambda2: 3}.Complete(meta())
	assert.ErrorIs(t, err, tracker.ErrWindowWidths, "lambda2 below lambda1 must error")

	_, err = tracker.MA{Alpha: 1.5}.Complete(meta())
	assert.ErrorIs(t, err, tracker.ErrBadAlpha, "alpha outside (0,1) must error")
}

// TestMA_FastPhaseTracksLatest verifies that a monotone decreasing
// stream keeps the tracker in the fast phase, where rho follows the
// newest observation (lambda1 = 1).
func TestMA_FastPhaseTracksLatest(t *testing.T) {
	trk, err := tracker.MA{Lambda1: 1, Lambda2: 5}.Complete(meta())
	require.NoError(t, err)
	ma, ok := tracker.AsMA(trk)
	require.True(t, ok, "MA config must realize the MA tracker")

	for i := 0; i < 10; i++ {
		est := 1.0 / float64(i+1)
		trk.Update(i, est)
		require.False(t, ma.Slow(), "monotone decrease must stay fast at %d", i)
		assert.InDelta(t, est*est, ma.Rho(), 1e-15,
			"fast-phase rho must equal the latest squared estimate")
	}
}

// TestMA_FlipsOnceOnIncrease verifies that the first non-decrease flips
// the tracker to the slow phase, permanently, and widens the window.
func TestMA_FlipsOnceOnIncrease(t *testing.T) {
	trk, err := tracker.MA{Lambda1: 1, Lambda2: 4}.Complete(meta())
	require.NoError(t, err)
	ma, _ := tracker.AsMA(trk)

	trk.Update(0, 4)
	trk.Update(1, 2)
	require.False(t, ma.Slow(), "decreasing stream stays fast")

	trk.Update(2, 3) // first increase
	require.True(t, ma.Slow(), "increase must flip to slow")

	// Subsequent decreases never flip back; rho now averages the ring.
	trk.Update(3, 1)
	require.True(t, ma.Slow(), "slow phase is permanent")
	assert.InDelta(t, (16.0+4+9+1)/4, ma.Rho(), 1e-12,
		"slow-phase rho must average the full window")
}

// TestMA_History verifies the recorded (width, rho, iota) trajectory.
func TestMA_History(t *testing.T) {
	trk, err := tracker.MA{Lambda1: 1, Lambda2: 3}.Complete(meta())
	require.NoError(t, err)
	ma, _ := tracker.AsMA(trk)

	trk.Update(0, 3)
	trk.Update(1, 2)

	h := ma.MAHistory()
	require.Len(t, h.Rhos, 2, "one record per update at rate 1")
	assert.Equal(t, []int{1, 1}, h.Widths, "fast phase records width 1")
	assert.InDelta(t, 9.0, h.Rhos[0], 1e-15, "first rho is the squared estimate")
	assert.InDelta(t, 81.0, h.Iotas[0], 1e-15, "first iota is the fourth power")
	assert.Equal(t, []float64{3, 2}, trk.History(), "raw estimates recorded too")
}

// TestMA_StopCriterion verifies termination through MAThreshold.
func TestMA_StopCriterion(t *testing.T) {
	trk, err := tracker.MA{
		Lambda1: 1,
		Lambda2: 4,
		Stop:    tracker.MAThreshold{Target: 0.05},
	}.Complete(meta())
	require.NoError(t, err)

	trk.Update(0, 1.0)
	require.False(t, trk.Converged(), "rho above target must keep going")
	trk.Update(1, 0.1)
	assert.True(t, trk.Converged(), "rho at 0.01 must fire a 0.05 target")
}

// TestUncertainty_BandsContainRho verifies band geometry: lower <= rho
// <= upper, lower clamped at zero, wider bands for smaller alpha.
func TestUncertainty_BandsContainRho(t *testing.T) {
	trk, err := tracker.MA{Lambda1: 1, Lambda2: 8}.Complete(meta())
	require.NoError(t, err)
	ma, _ := tracker.AsMA(trk)

	ests := []float64{5, 4, 3.5, 3.6, 3.2, 3.1, 3.0, 2.9}
	for i, e := range ests {
		trk.Update(i, e)
	}

	tight, err := ma.Uncertainty(0.2)
	require.NoError(t, err)
	wide, err := ma.Uncertainty(0.01)
	require.NoError(t, err)
	require.Len(t, tight, len(ests))

	for i := range tight {
		assert.GreaterOrEqual(t, tight[i].Rho, tight[i].Lower, "lower bound below rho")
		assert.LessOrEqual(t, tight[i].Rho, tight[i].Upper, "upper bound above rho")
		assert.GreaterOrEqual(t, tight[i].Lower, 0.0, "lower bound clamped at zero")
		assert.Greater(t, wide[i].Upper-wide[i].Lower, tight[i].Upper-tight[i].Lower,
			"smaller alpha must widen the band")
	}

	_, err = ma.Uncertainty(0)
	assert.ErrorIs(t, err, tracker.ErrBadAlpha, "alpha 0 must error")
}

// TestMA_BandCoverage verifies the statistical guarantee behind the
// credible bands: across many independent replicates, the final
// (1-alpha) band contains the true squared residual in at least a
// 1-alpha share of runs. Each replicate sketches one fixed residual
// vector with fresh Gaussian randomness per update. Deterministic
// seeds keep the check reproducible.
func TestMA_BandCoverage(t *testing.T) {
	const (
		dim     = 100
		block   = 4
		updates = 60
		runs    = 200
		alpha   = 0.05
	)

	rng := rand.New(rand.NewSource(23))
	r := mat.NewVecDense(dim, nil)
	for i := 0; i < dim; i++ {
		r.SetVec(i, rng.NormFloat64())
	}
	truth := mat.Norm(r, 2)
	truth *= truth

	contained := 0
	for run := 0; run < runs; run++ {
		rec, err := sketch.Complete(sketch.Gaussian{
			Cardinality: sketch.Left,
			Dim:         block,
			Src:         rand.New(rand.NewSource(uint64(100 + run))),
		}, dim, 1)
		require.NoError(t, err)

		trk, err := tracker.MA{Lambda2: 30}.Complete(tracker.Meta{
			Kind: rec.Kind(), BlockSize: block, Dim: dim,
		})
		require.NoError(t, err)
		ma := mustMA(t, trk)

		for i := 0; i < updates; i++ {
			require.NoError(t, rec.Update())
			sr, err := sketch.ApplyVec(rec, r)
			require.NoError(t, err)
			trk.Update(i, mat.Norm(sr, 2))
		}

		bands, err := ma.Uncertainty(alpha)
		require.NoError(t, err)
		last := bands[len(bands)-1]
		if last.Lower <= truth && truth <= last.Upper {
			contained++
		}
	}

	frac := float64(contained) / float64(runs)
	assert.GreaterOrEqual(t, frac, 1-alpha-0.05,
		"replicate coverage must meet the credibility level")
}

// TestRegisterSEConstants verifies the registry override path and the
// conservative fallback for unknown kinds.
func TestRegisterSEConstants(t *testing.T) {
	const unknown = sketch.Kind(99)

	// Unknown kind falls back without failing.
	trk, err := tracker.MA{}.Complete(tracker.Meta{Kind: unknown, BlockSize: 1, Dim: 10})
	require.NoError(t, err, "unknown kinds must complete with the fallback constants")
	trk.Update(0, 1)
	assert.False(t, math.IsNaN(mustMA(t, trk).Rho()), "fallback constants must be usable")

	// Registered constants take effect: Scaling multiplies the squared
	// estimate entering the window.
	tracker.RegisterSEConstants(unknown, tracker.SEConstants{
		Sigma2: 1, Eta: 1, Scaling: 4,
	})
	trk, err = tracker.MA{}.Complete(tracker.Meta{Kind: unknown, BlockSize: 1, Dim: 10})
	require.NoError(t, err)
	trk.Update(0, 3)
	assert.InDelta(t, 36.0, mustMA(t, trk).Rho(), 1e-12,
		"registered scaling must multiply the squared estimate")
}

func mustMA(t *testing.T, trk tracker.Tracker) *tracker.MATracker {
	t.Helper()
	ma, ok := tracker.AsMA(trk)
	require.True(t, ok, "expected the MA tracker realization")

	return ma
}
