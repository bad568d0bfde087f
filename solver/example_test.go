package solver_test

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/solver"
	"github.com/katalvlaran/randla/tracker"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleSolveKaczmarz
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Solve a consistent 40×8 system with block Kaczmarz: a 4-row Gaussian
//	compression per iteration and a residual threshold.
//
// Use case:
//
//	Large consistent systems where full factorization is too expensive
//	and only matrix-vector access to A is cheap.
//
// Complexity: O(s·m·n) per iteration for the sketch, O(s²·n) for the
// compressed solve.
func ExampleSolveKaczmarz() {
	rng := rand.New(rand.NewSource(7))
	a := mat.NewDense(40, 8, nil)
	for i := 0; i < 40; i++ {
		for j := 0; j < 8; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}
	xstar := mat.NewVecDense(8, nil)
	for i := 0; i < 8; i++ {
		xstar.SetVec(i, float64(i+1))
	}
	b := mat.NewVecDense(40, nil)
	b.MulVec(a, xstar)

	x := mat.NewVecDense(8, nil)
	stats, err := solver.SolveKaczmarz(solver.Kaczmarz{
		Compressor:    sketch.Gaussian{Cardinality: sketch.Left, Dim: 4, Src: rng},
		Tracker:       tracker.Basic{Threshold: 1e-10},
		MaxIterations: 10_000,
	}, x, a, b)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	diff := mat.NewVecDense(8, nil)
	diff.SubVec(x, xstar)
	fmt.Println("converged:", stats.Iterations > 0 && mat.Norm(diff, 2) < 1e-8)

	// Output:
	// converged: true
}
