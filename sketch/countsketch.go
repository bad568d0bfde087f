// Package sketch - CountSketch compression.
package sketch

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// CountSketch configures the classic streaming sketch: exactly one ±1
// nonzero per initial dimension, with the target bucket drawn uniformly
// from 1..Dim. Application cost is O(nnz(target)); E‖S·x‖² = ‖x‖² holds
// exactly.
type CountSketch struct {
	Cardinality Cardinality

	// Dim is the compression dimension s (the bucket count).
	Dim int

	Src *rand.Rand
}

type countSketchRecipe struct {
	card Cardinality
	dim  int
	n    int
	m    *cscMatrix // Left-shaped (dim × n), one entry per column
	src  *rand.Rand
}

var _ Recipe = (*countSketchRecipe)(nil)

func (c CountSketch) complete(rows, cols int, _ mat.Matrix) (Recipe, error) {
	dim, err := effectiveDim(c.Dim)
	if err != nil {
		return nil, err
	}

	_, _, n := realizedShape(c.Cardinality, dim, rows, cols)
	rec := &countSketchRecipe{
		card: c.Cardinality,
		dim:  dim,
		n:    n,
		m:    newCSC(dim, n, 1),
		src:  ensureSrc(c.Src),
	}
	if err = rec.Update(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (c *countSketchRecipe) Dims() (int, int) {
	if c.card == Right {
		return c.n, c.dim
	}

	return c.dim, c.n
}

func (c *countSketchRecipe) Kind() Kind { return KindCountSketch }

// Update resamples every bucket and sign in place. O(n), zero allocations.
func (c *countSketchRecipe) Update() error {
	for j := 0; j < c.n; j++ {
		c.m.rowind[j] = c.src.Intn(c.dim)
		if c.src.Float64() < 0.5 {
			c.m.val[j] = 1
		} else {
			c.m.val[j] = -1
		}
	}

	return nil
}

func (c *countSketchRecipe) apply(dst *mat.Dense, src mat.Matrix, alpha, beta float64, sd side, trans bool) error {
	return c.m.scatterApply(dst, src, alpha, beta, sd, trans, c.card == Right)
}
