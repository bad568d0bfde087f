package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// checkSystem validates that (x, A, b) describe one linear system. Pure;
// called exactly once per Complete.
func checkSystem(x *mat.VecDense, a *mat.Dense, b *mat.VecDense) (m, n int, err error) {
	if x == nil || a == nil || b == nil {
		return 0, 0, ErrNilOperand
	}

	m, n = a.Dims()
	if b.Len() != m || x.Len() != n {
		return 0, 0, fmt.Errorf("%w: A is %dx%d, b has %d, x has %d",
			ErrDimensionMismatch, m, n, b.Len(), x.Len())
	}

	return m, n, nil
}
