package tracker_test

import (
	"fmt"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/tracker"
)

// ExampleMA demonstrates the two-phase estimator on a noisy decreasing
// stream: the fast phase follows each observation, the first increase
// flips to the slow full-window average, and the recorded trajectory
// converts to credible bands.
func ExampleMA() {
	trk, err := tracker.MA{Lambda1: 1, Lambda2: 4}.Complete(tracker.Meta{
		Kind:      sketch.KindGaussian,
		BlockSize: 1,
		Dim:       100,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ma, _ := tracker.AsMA(trk)

	for i, est := range []float64{4, 2, 1, 1.5, 0.9} {
		trk.Update(i, est)
	}
	fmt.Println("slow phase:", ma.Slow())

	bands, _ := ma.Uncertainty(0.05)
	last := bands[len(bands)-1]
	fmt.Println("band contains rho:", last.Lower <= last.Rho && last.Rho <= last.Upper)

	// Output:
	// slow phase: true
	// band contains rho: true
}
