// Package randla is a randomized numerical linear algebra toolkit:
// composable sketching recipes for compressing matrices, iterative
// projection solvers built on those sketches, and statistically
// principled convergence tracking.
//
// 🚀 What is randla?
//
//	A modular library for sketch-and-solve workflows:
//		• Sketching: Gaussian, sparse-sign, CountSketch, FJLT, SRHT,
//		  importance sub-sampling — one Recipe contract, left or right
//		  cardinality, in-place resampling
//		• Sampling: uniform, Frobenius-norm and leverage-score
//		  distributions over rows or columns
//		• Solvers: randomized Kaczmarz, column projection, Iterative
//		  Hessian Sketch — allocation-free steady-state loops
//		• Tracking: moving-average convergence estimation with
//		  sub-Exponential credible bands from sketched residuals only
//		• Approximation: randomized range finder plus the CUR/Nyström
//		  boundary contracts
//
// ✨ Why choose randla?
//
//   - Config/Recipe split – declare immutable configs, realize them
//     against concrete shapes, resample without reallocating
//   - Deterministic by default – every random component accepts a seeded
//     source and falls back to a fixed one
//   - BLAS-backed – dense kernels route through gonum's blas64
//   - Honest stopping – credible bands on the true residual, computed
//     from compressed observations
//
// Everything is organized under five subpackages:
//
//	sketch/  — compression recipes, the multiply protocol and adjoints
//	dist/    — row/column sampling distributions
//	solver/  — Kaczmarz, coordinate projection, IHS
//	tracker/ — convergence logging, moving averages, uncertainty bands
//	approx/  — low-rank range finding and factorization contracts
//
// Quick start:
//
//	S, err := sketch.Complete(sketch.SparseSign{Cardinality: sketch.Left, Dim: 64}, 10_000, 500)
//	sa, err := sketch.Apply(S, a)          // 64×500 sketch of a 10 000×500 matrix
//
//	cfg := solver.Kaczmarz{
//	    Compressor: sketch.Gaussian{Cardinality: sketch.Left, Dim: 8},
//	    Tracker:    tracker.Basic{Threshold: 1e-8, MaxIterations: 5_000},
//	}
//	stats, err := solver.SolveKaczmarz(cfg, x, a, b)
//
// See each subpackage's doc.go for the full contract.
package randla
