// Package sketch builds reusable, composable compression operators
// ("sketches") for randomized numerical linear algebra.
//
// 🚀 What is sketching?
//
//	Sketching projects a matrix or vector onto a much smaller random
//	subspace while approximately preserving the metric structure that
//	iterative solvers care about (norms, inner products).  It is the
//	workhorse behind randomized Kaczmarz, iterative Hessian sketch and
//	sketch-and-precondition least squares.
//
// ✨ Key features:
//   - Dense Gaussian, SparseSign, FJLT, SRHT, CountSketch, Identity and
//     distribution-driven sub-sampling operators behind one Recipe contract
//   - Left/Right cardinality: compress row space or column space
//   - Uniform multiply protocol with scale-and-accumulate semantics
//     (dst = alpha*S*src + beta*dst), validated before any write
//   - Zero-copy adjoint views: T(T(s)) is the original recipe
//   - In-place resampling (Update) that never changes shape or reallocates
//     backing storage, keeping solver hot loops allocation-free
//
// ⚙️ Usage:
//
//	cfg := sketch.Gaussian{Cardinality: sketch.Left, Dim: 5}
//	s, err := sketch.CompleteFor(cfg, a) // realize against a's shape
//	sa, err := sketch.Apply(s, a)        // sa = S*a, shape (5, cols(a))
//	err = s.Update()                     // fresh randomness, same shape
//
// Determinism: every config accepts an optional *rand.Rand; nil selects a
// fixed-seed default stream, so results are reproducible by default and
// callers own the randomness policy otherwise.
//
// See example_test.go for complete walkthroughs.
package sketch
