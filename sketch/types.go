// Package sketch - cardinality/kind tags, sentinel errors and defaults.
//
// This file contains ONLY the shared vocabulary of the package:
//  1. Cardinality (which side an operator compresses).
//  2. Kind (the closed variant set, used for constant lookups downstream).
//  3. Package sentinel errors, matched by callers via errors.Is.
//  4. Documented default constants (single source of truth).
//
// Design principles:
//   - No algorithm code here; recipes live in their own files.
//   - Sentinels carry the "sketch: ..." prefix for grep-ability.
//   - Defaults are named constants so docs and code never diverge.
package sketch

import "errors"

// Cardinality selects whether a compression operator reduces the row
// space (Left, S*A) or the column space (Right, A*S) of its target.
// It is a pure dispatch tag; recipes hold no other directional state.
type Cardinality uint8

const (
	// Left compresses rows: a realized recipe has shape (Dim, rows(target)).
	Left Cardinality = iota
	// Right compresses columns: a realized recipe has shape (cols(target), Dim).
	Right
)

// String returns the human-readable tag used in error contexts.
func (c Cardinality) String() string {
	switch c {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Cardinality(?)"
	}
}

// Kind identifies a concrete recipe variant. The set is closed: the
// tracker package keys its sub-Exponential constants registry by Kind.
type Kind uint8

const (
	KindGaussian Kind = iota
	KindSparseSign
	KindFJLT
	KindSRHT
	KindCountSketch
	KindIdentity
	KindSubSample
)

// String returns the canonical variant name.
func (k Kind) String() string {
	switch k {
	case KindGaussian:
		return "Gaussian"
	case KindSparseSign:
		return "SparseSign"
	case KindFJLT:
		return "FJLT"
	case KindSRHT:
		return "SRHT"
	case KindCountSketch:
		return "CountSketch"
	case KindIdentity:
		return "Identity"
	case KindSubSample:
		return "SubSample"
	default:
		return "Kind(?)"
	}
}

// Sentinel errors. Configuration sentinels surface at Complete time;
// ErrDimensionMismatch surfaces at first use of a multiply, always
// before any write to the destination.
var (
	// ErrNonPositiveDim is returned when a compression dimension is <= 0.
	ErrNonPositiveDim = errors.New("sketch: compression dimension must be > 0")

	// ErrNNZRange is returned when a SparseSign nnz is outside 1..Dim.
	ErrNNZRange = errors.New("sketch: nnz must be in 1..compression dimension")

	// ErrSparsityRange is returned when an FJLT sparsity is outside (0, 1].
	ErrSparsityRange = errors.New("sketch: sparsity must be in (0, 1]")

	// ErrBlockSize is returned when an FJLT/SRHT block size is <= 0.
	ErrBlockSize = errors.New("sketch: block size must be > 0")

	// ErrBadTargetShape is returned when Complete receives a non-positive
	// target shape.
	ErrBadTargetShape = errors.New("sketch: target shape must be positive")

	// ErrTargetRequired is returned when a sub-sampling compressor with a
	// data-dependent distribution is completed without a target matrix.
	ErrTargetRequired = errors.New("sketch: compressor requires a target matrix")

	// ErrDimensionMismatch is returned by the multiply protocol when
	// operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("sketch: dimension mismatch")

	// ErrNilDest is returned when a multiply destination is nil.
	ErrNilDest = errors.New("sketch: nil destination")
)

// Documented defaults (single source of truth).
const (
	// DefaultDim is the compression dimension used when a config leaves
	// Dim at its zero value.
	DefaultDim = 2

	// DefaultNNZ caps the per-column nonzero count of SparseSign when the
	// config leaves NNZ at zero; the effective default is min(DefaultNNZ, Dim).
	DefaultNNZ = 8

	// DefaultBlockSize is the number of target columns (or rows) an
	// FJLT/SRHT recipe streams through its padded Hadamard buffer at once.
	DefaultBlockSize = 32
)
