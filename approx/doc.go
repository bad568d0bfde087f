// Package approx is the low-rank approximation boundary of the toolkit:
// contracts for sketch-driven factorizations (CUR, Nyström) and one thin
// concrete realization, the randomized range finder.
//
// The solvers in package solver are the mature surface of this module;
// approx deliberately stays a thin layer. The interfaces fix the shape a
// full factorization suite plugs into; RangeFinder exercises the
// sketch-then-orthonormalize path that every such factorization starts
// from.
package approx
