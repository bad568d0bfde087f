// Package tracker records iterative-solver progress and decides
// termination, including a statistically principled estimator that works
// from sketched (not full) residual information only.
//
// 🚀 Why a tracker?
//
//	Randomized projection solvers never see the true residual ‖b−Ax‖ —
//	computing it would cost as much as the iteration it is supposed to
//	monitor. What they do see is a noisy sketched proxy whose expectation
//	equals the true squared residual. The moving-average tracker (MA)
//	turns that stream into a running estimate plus a credible interval,
//	using sub-Exponential tail bounds keyed to the active sketch kind.
//
// ✨ Key features:
//   - Basic: plain history + threshold / max-iteration stopping
//   - MA: adaptive dual-window (fast/slow) moving average over a fixed
//     ring buffer; the phase flips exactly once, at the first non-decrease
//     of the sketched residual
//   - Uncertainty: (1−alpha) credible bands from per-kind sub-Exponential
//     constants; unknown kinds degrade to a conservative default with a
//     warning rather than failing
//   - Pluggable stop criteria: MaxIterations, Threshold, MAThreshold
//
// Non-convergence is NOT an error anywhere in this package: a solver that
// exhausts its iteration budget simply leaves Converged() == false and a
// full history behind. Callers must check.
package tracker
