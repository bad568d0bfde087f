package solver

import (
	"gonum.org/v1/gonum/mat"
)

// SubSolver is the per-iteration factorize/solve pair the block solvers
// delegate to. Factorize re-points the solver at the current compressed
// block, reusing internal storage across calls; SolveVec produces the
// update direction for one right-hand side.
//
// Implementations report near-singular blocks through SolveVec's error;
// the solver loops treat that as a skipped iteration, not a failure.
type SubSolver interface {
	Factorize(a mat.Matrix) error
	SolveVec(dst *mat.VecDense, b mat.Vector) error
}

// LQSolver computes minimum-norm solutions of wide systems (rows <=
// cols) via an LQ decomposition. The natural fit for Kaczmarz blocks,
// where the compressed row count stays below the number of unknowns.
type LQSolver struct {
	lq mat.LQ
}

var _ SubSolver = (*LQSolver)(nil)

// Factorize decomposes a; a must have rows <= cols.
//
// Errors: ErrSubSolverShape.
func (s *LQSolver) Factorize(a mat.Matrix) error {
	if r, c := a.Dims(); r > c {
		return ErrSubSolverShape
	}
	s.lq.Factorize(a)

	return nil
}

// SolveVec writes the minimum-norm solution of a·dst = b into dst.
func (s *LQSolver) SolveVec(dst *mat.VecDense, b mat.Vector) error {
	return s.lq.SolveVecTo(dst, false, b)
}

// QRSolver computes least-squares solutions of tall systems (rows >=
// cols) via a QR decomposition: coordinate-projection column blocks and
// oversampled Kaczmarz blocks.
type QRSolver struct {
	qr mat.QR
}

var _ SubSolver = (*QRSolver)(nil)

// Factorize decomposes a; a must have rows >= cols.
//
// Errors: ErrSubSolverShape.
func (s *QRSolver) Factorize(a mat.Matrix) error {
	if r, c := a.Dims(); r < c {
		return ErrSubSolverShape
	}
	s.qr.Factorize(a)

	return nil
}

// SolveVec writes the least-squares solution of a·dst ≈ b into dst.
func (s *QRSolver) SolveVec(dst *mat.VecDense, b mat.Vector) error {
	return s.qr.SolveVecTo(dst, false, b)
}

// defaultSubSolver picks the factorization matching the compressed block
// shape: minimum-norm LQ for wide blocks, least-squares QR otherwise.
func defaultSubSolver(rows, cols int) SubSolver {
	if rows <= cols {
		return &LQSolver{}
	}

	return &QRSolver{}
}
