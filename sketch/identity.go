// Package sketch - identity pass-through.
package sketch

import "gonum.org/v1/gonum/mat"

// Identity configures a pass-through operator. Unlike every other recipe
// its realized dimension is recomputed on every multiply call to match the
// active dimension of its operand — a deliberate, documented exception to
// the fixed-shape invariant, needed because Identity must adapt to
// whatever size matrix it is asked to pass through.
type Identity struct {
	// Cardinality seeds the initial square shape from the matching target
	// dimension (Left: rows, Right: cols); every multiply re-adapts it to
	// the operand regardless.
	Cardinality Cardinality
}

type identityRecipe struct {
	r, c int // last adapted shape
}

var _ Recipe = (*identityRecipe)(nil)

func (c Identity) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	n := rows
	if c.Cardinality == Right {
		n = cols
	}

	return &identityRecipe{r: n, c: n}, nil
}

func (id *identityRecipe) Dims() (int, int) { return id.r, id.c }
func (id *identityRecipe) Kind() Kind       { return KindIdentity }

// Update is a no-op: the identity carries no randomness.
func (id *identityRecipe) Update() error { return nil }

// adaptIdentity resizes an Identity recipe (possibly behind an adjoint
// view) to pass its operand through unchanged. No-op for other kinds.
func adaptIdentity(op Op, src mat.Matrix, s side) {
	a, viaAdjoint := op.(*adjoint)
	if viaAdjoint {
		op = a.parent
	}
	id, ok := op.(*identityRecipe)
	if !ok {
		return
	}
	sr, sc := src.Dims()
	if s == sideLeft {
		id.r, id.c = sr, sr
		return
	}
	id.r, id.c = sc, sc
}

func (id *identityRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, s side, _ bool) error {
	// The identity is symmetric; side and transposition collapse to a
	// scaled accumulate dst = alpha*src + beta*dst.
	prescale(dst, beta)
	dv := view{g: dst.RawMatrix()}
	sv := view{g: generalOf(src)}
	for i := 0; i < sv.rows(); i++ {
		for j := 0; j < sv.cols(); j++ {
			dv.add(i, j, alpha*sv.at(i, j))
		}
	}

	return nil
}
