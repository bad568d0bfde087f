// Package sketch - operator contract, adjoint views and multiply facades.
//
// This file defines the integration surface every solver consumes:
//
//   - Op: a realized sketching operator (a Recipe or its adjoint view).
//   - Recipe: an Op that owns randomness and supports in-place resampling.
//   - T: zero-copy adjoint; T(T(op)) returns the original object.
//   - Mul / MulRight / MulVec: scale-and-accumulate multiply protocol,
//     dimension-checked before any write to the destination.
//   - Apply / ApplyRight / ApplyVec: allocating 3-argument conveniences
//     (alpha=1, beta=0).
//
// Dimension-check policy (shared utilities, used by every recipe):
//   - left multiply:  rows(src) == cols(op), rows(dst) == rows(op),
//     cols(dst) == cols(src);
//   - right multiply: the mirrored constraint;
//   - vector multiply: both lengths against the operator's row/col counts.
//
// The Identity recipe is a documented exception: its realized dimension is
// recomputed on every call to match the active operand (see identity.go),
// so the facades adapt it before validating.
package sketch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// side selects which side of the product the operator sits on.
type side uint8

const (
	sideLeft  side = iota // dst = alpha*op*src + beta*dst
	sideRight             // dst = alpha*src*op + beta*dst
)

// Op is a sketching operator view: either a Recipe or its adjoint.
// The variant set is closed (the apply method is unexported); cardinality
// and transposition are resolved internally, so callers only ever see the
// effective (rows, cols) shape reported by Dims.
type Op interface {
	// Dims reports the effective operator shape.
	Dims() (rows, cols int)

	// Kind identifies the underlying recipe variant (adjoints report the
	// parent's kind).
	Kind() Kind

	// apply computes dst = alpha*M*src + beta*dst (side == sideLeft) or
	// dst = alpha*src*M + beta*dst (side == sideRight), where M is the
	// stored operator, transposed when trans is true. Dimensions are
	// validated by the facades before apply is reached.
	apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error
}

// Recipe is a fully realized compression operator with a fixed shape and
// an in-place resampling rule. Recipes are created by Complete/CompleteFor
// and are NOT safe for concurrent use.
type Recipe interface {
	Op

	// Update resamples all randomness in place. Shape and backing storage
	// are preserved; steady-state solver iterations stay allocation-free.
	Update() error
}

// adjoint is a zero-copy transposed view of a parent operator. It does not
// own the parent; the parent must outlive the view.
type adjoint struct {
	parent Op
}

// T returns the adjoint view of op. Applying T twice returns the original
// operator object (identity, not a copy).
//
// Complexity: O(1), no allocation beyond the view header.
func T(op Op) Op {
	if a, ok := op.(*adjoint); ok {
		return a.parent
	}

	return &adjoint{parent: op}
}

// Dims reports the transposed shape of the parent.
func (a *adjoint) Dims() (int, int) {
	r, c := a.parent.Dims()

	return c, r
}

// Kind reports the parent's variant.
func (a *adjoint) Kind() Kind { return a.parent.Kind() }

// apply routes to the parent with the transposition flag flipped.
func (a *adjoint) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, trans bool) error {
	return a.parent.apply(dst, src, alpha, beta, s, !trans)
}

// ---------- shared dimension-check utilities ----------

// mulErrorf attaches the operation tag and observed shapes to a sentinel.
func mulErrorf(op string, dr, dc, sr, sc, or, oc int) error {
	return fmt.Errorf("sketch.%s: dst %dx%d, src %dx%d, op %dx%d: %w", op, dr, dc, sr, sc, or, oc, ErrDimensionMismatch)
}

// checkLeft validates dst = op*src shapes. O(1).
func checkLeft(o Op, dst *mat.Dense, src mat.Matrix) error {
	if dst == nil {
		return ErrNilDest
	}
	or, oc := o.Dims()
	sr, sc := src.Dims()
	dr, dc := dst.Dims()
	if sr != oc || dr != or || dc != sc {
		return mulErrorf("Mul", dr, dc, sr, sc, or, oc)
	}

	return nil
}

// checkRight validates dst = src*op shapes (mirrored constraint). O(1).
func checkRight(dst *mat.Dense, src mat.Matrix, o Op) error {
	if dst == nil {
		return ErrNilDest
	}
	or, oc := o.Dims()
	sr, sc := src.Dims()
	dr, dc := dst.Dims()
	if sc != or || dc != oc || dr != sr {
		return mulErrorf("MulRight", dr, dc, sr, sc, or, oc)
	}

	return nil
}

// checkVec validates dst = op*x lengths. O(1).
func checkVec(o Op, dst *mat.VecDense, x mat.Vector) error {
	if dst == nil {
		return ErrNilDest
	}
	or, oc := o.Dims()
	if x.Len() != oc || dst.Len() != or {
		return mulErrorf("MulVec", dst.Len(), 1, x.Len(), 1, or, oc)
	}

	return nil
}

// ---------- multiply facades ----------

// Mul computes dst = alpha*op*src + beta*dst.
// Shapes are validated before any write; on mismatch the destination is
// untouched and ErrDimensionMismatch is returned.
//
// Complexity: recipe-dependent; dense kinds are BLAS-3 calls, sparse and
// sampling kinds are O(nnz * cols(src)).
func Mul(dst *mat.Dense, op Op, src mat.Matrix, alpha, beta float64) error {
	adaptIdentity(op, src, sideLeft)
	if err := checkLeft(op, dst, src); err != nil {
		return err
	}

	return op.apply(dst, src, alpha, beta, sideLeft, false)
}

// MulRight computes dst = alpha*src*op + beta*dst, the mirrored protocol.
func MulRight(dst *mat.Dense, src mat.Matrix, op Op, alpha, beta float64) error {
	adaptIdentity(op, src, sideRight)
	if err := checkRight(dst, src, op); err != nil {
		return err
	}

	return op.apply(dst, src, alpha, beta, sideRight, false)
}

// MulVec computes dst = alpha*op*x + beta*dst for vectors, treating x as a
// single-column matrix. Both lengths are validated first.
func MulVec(dst *mat.VecDense, op Op, x mat.Vector, alpha, beta float64) error {
	adaptIdentity(op, colShape{x.Len()}, sideLeft)
	if err := checkVec(op, dst, x); err != nil {
		return err
	}

	xd, xok := colDense(x)
	if !xok {
		xd = mat.NewDense(x.Len(), 1, nil)
		for i := 0; i < x.Len(); i++ {
			xd.Set(i, 0, x.AtVec(i))
		}
	}
	dd, dok := colDense(dst)
	if !dok {
		// Strided destination: compute into scratch, then copy back.
		tmp := mat.NewDense(dst.Len(), 1, nil)
		for i := 0; i < dst.Len(); i++ {
			tmp.Set(i, 0, dst.AtVec(i))
		}
		if err := op.apply(tmp, xd, alpha, beta, sideLeft, false); err != nil {
			return err
		}
		for i := 0; i < dst.Len(); i++ {
			dst.SetVec(i, tmp.At(i, 0))
		}

		return nil
	}

	return op.apply(dd, xd, alpha, beta, sideLeft, false)
}

// Apply allocates a correctly shaped zero output and computes op*src.
// Convenience form of Mul with alpha=1, beta=0.
func Apply(op Op, src mat.Matrix) (*mat.Dense, error) {
	adaptIdentity(op, src, sideLeft)
	or, _ := op.Dims()
	_, sc := src.Dims()
	dst := mat.NewDense(or, sc, nil)
	if err := Mul(dst, op, src, 1, 0); err != nil {
		return nil, err
	}

	return dst, nil
}

// ApplyRight allocates a correctly shaped zero output and computes src*op.
func ApplyRight(src mat.Matrix, op Op) (*mat.Dense, error) {
	adaptIdentity(op, src, sideRight)
	sr, _ := src.Dims()
	_, oc := op.Dims()
	dst := mat.NewDense(sr, oc, nil)
	if err := MulRight(dst, src, op, 1, 0); err != nil {
		return nil, err
	}

	return dst, nil
}

// ApplyVec allocates a correctly sized zero output and computes op*x.
func ApplyVec(op Op, x mat.Vector) (*mat.VecDense, error) {
	adaptIdentity(op, colShape{x.Len()}, sideLeft)
	or, _ := op.Dims()
	dst := mat.NewVecDense(or, nil)
	if err := MulVec(dst, op, x, 1, 0); err != nil {
		return nil, err
	}

	return dst, nil
}

// colShape is a minimal mat.Matrix stand-in used to adapt Identity against
// a vector operand without materializing it.
type colShape struct{ n int }

func (c colShape) Dims() (int, int)    { return c.n, 1 }
func (c colShape) At(_, _ int) float64 { return 0 }
func (c colShape) T() mat.Matrix       { return mat.Transpose{Matrix: c} }
