// Package dist builds index/weight models over the rows or columns of a
// matrix, for consumption by sub-sampling compression operators.
//
// 🚀 What is an index distribution?
//
//	Randomized row/column-action methods (Kaczmarz and friends) converge
//	fastest when indices are drawn proportionally to how much each row or
//	column contributes to the system. A dist.Recipe owns a normalized
//	weight vector over an index universe and draws ordered samples from
//	it, with or without replacement.
//
// ✨ Variants:
//   - Uniform        — equal weights; needs only the universe size
//   - FrobeniusNorm  — weights ∝ squared row/column norms
//   - LeverageScore  — weights ∝ row norms² of the thin singular factor
//
// ⚙️ Usage:
//
//	rec, err := dist.Complete(dist.FrobeniusNorm{}, a, dist.ByRow, nil)
//	idx := make([]int, 4)
//	err = rec.Sample(idx, false) // 4 distinct weighted rows, ascending
//
// Weights are non-negative and sum to one after Complete; that invariant
// is re-established whenever the recipe is refreshed against a new target.
package dist
