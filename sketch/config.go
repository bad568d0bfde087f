// Package sketch - configuration resolution (Complete / CompleteFor).
//
// A Config is an immutable parameter bag; Complete realizes it into a
// Recipe with a fixed shape derived from the target:
//
//	Left  cardinality: (rows, cols) = (Dim, rows(target))
//	Right cardinality: (rows, cols) = (cols(target), Dim)
//
// Vectors are promoted by callers to single-column matrices, so a vector
// target of length n realizes Left recipes of shape (Dim, n).
//
// Validation happens here, at construction time, never at first use:
// non-positive dimensions, nnz > Dim, sparsity outside (0,1] and
// non-positive block sizes all fail with the package sentinels.
package sketch

import "gonum.org/v1/gonum/mat"

// Config is an immutable compressor configuration. The concrete set is
// closed (the complete method is unexported): Gaussian, SparseSign, FJLT,
// SRHT, CountSketch, Identity and SubSample.
type Config interface {
	// complete realizes the config against a target shape. target is nil
	// when only the shape is known; sub-sampling configs with
	// data-dependent distributions reject that with ErrTargetRequired.
	complete(rows, cols int, target mat.Matrix) (Recipe, error)
}

// Complete realizes cfg against an explicit (rows, cols) target shape.
//
// Errors: ErrBadTargetShape, plus the config-specific sentinels.
// Complexity: allocation of the recipe's backing storage, O(shape).
func Complete(cfg Config, rows, cols int) (Recipe, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadTargetShape
	}

	return cfg.complete(rows, cols, nil)
}

// CompleteFor realizes cfg against the shape of target, giving
// data-dependent configs (sub-sampling by Frobenius or leverage weights)
// access to the matrix itself.
func CompleteFor(cfg Config, target mat.Matrix) (Recipe, error) {
	r, c := target.Dims()
	if r <= 0 || c <= 0 {
		return nil, ErrBadTargetShape
	}

	return cfg.complete(r, c, target)
}

// realizedShape maps cardinality and target shape to the recipe shape and
// the initial (uncompressed) dimension n the operator acts on.
func realizedShape(card Cardinality, dim, rows, cols int) (r, c, n int) {
	if card == Right {
		return cols, dim, cols
	}

	return dim, rows, rows
}

// effectiveDim resolves a config's Dim against the documented default.
func effectiveDim(dim int) (int, error) {
	if dim == 0 {
		return DefaultDim, nil
	}
	if dim < 0 {
		return 0, ErrNonPositiveDim
	}

	return dim, nil
}

// effectiveBlock resolves a config's BlockSize against the default.
func effectiveBlock(block int) (int, error) {
	if block == 0 {
		return DefaultBlockSize, nil
	}
	if block < 0 {
		return 0, ErrBlockSize
	}

	return block, nil
}
