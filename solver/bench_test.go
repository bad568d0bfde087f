package solver_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/randla/sketch"
	"github.com/katalvlaran/randla/solver"
	"github.com/katalvlaran/randla/tracker"
)

// benchmarkKaczmarz times a fixed-budget solve of an m×n consistent
// system; the budget keeps runs comparable across compressors.
func benchmarkKaczmarz(b *testing.B, comp sketch.Config, m, n, iters int) {
	a, rhs, _ := wellConditioned(m, n, src(100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := mat.NewVecDense(n, nil)
		rec, err := solver.Kaczmarz{
			Compressor:    comp,
			Tracker:       tracker.Basic{},
			MaxIterations: iters,
		}.Complete(x, a, rhs)
		if err != nil {
			b.Fatalf("complete failed: %v", err)
		}
		if err = rec.Run(); err != nil {
			b.Fatalf("run failed: %v", err)
		}
	}
}

// BenchmarkKaczmarz_SingleRow times 200 single-row sparse-sign steps on
// a 512×64 system.
func BenchmarkKaczmarz_SingleRow(b *testing.B) {
	benchmarkKaczmarz(b, sketch.SparseSign{Cardinality: sketch.Left, Dim: 1, Src: src(101)}, 512, 64, 200)
}

// BenchmarkKaczmarz_Block8 times 200 8-row Gaussian block steps on a
// 512×64 system.
func BenchmarkKaczmarz_Block8(b *testing.B) {
	benchmarkKaczmarz(b, sketch.Gaussian{Cardinality: sketch.Left, Dim: 8, Src: src(102)}, 512, 64, 200)
}

// BenchmarkIHS_Step times 20 Hessian-sketch steps on a 512×64 system
// with a 128-row Gaussian sketch.
func BenchmarkIHS_Step(b *testing.B) {
	a, rhs, _ := wellConditioned(512, 64, src(103))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := mat.NewVecDense(64, nil)
		rec, err := solver.IHS{
			Compressor:    sketch.Gaussian{Cardinality: sketch.Left, Dim: 128, Src: src(104)},
			MaxIterations: 20,
		}.Complete(x, a, rhs)
		if err != nil {
			b.Fatalf("complete failed: %v", err)
		}
		if err = rec.Run(); err != nil {
			b.Fatalf("run failed: %v", err)
		}
	}
}
