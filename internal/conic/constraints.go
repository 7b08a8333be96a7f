package conic

import "gonum.org/v1/gonum/mat"

// Constraints encodes an equality-constrained conic program
// min <C, x> subject to A*x = B with x in the cone described by the
// accompanying barrier. Row and column blocks come in multiples of the
// working dimension U; the barrier tree mirrors that block layout.
type Constraints struct {
	A *mat.Dense
	B *mat.VecDense
	C *mat.VecDense
}

// DualSystem exchanges the roles of variables and constraints: the dual
// system uses the transposed coefficient matrix and swaps the objective
// with the right-hand side. The returned system owns fresh copies.
func (c *Constraints) DualSystem() *Constraints {
	return &Constraints{
		A: mat.DenseCopyOf(c.A.T()),
		B: mat.VecDenseCopyOf(c.C),
		C: mat.VecDenseCopyOf(c.B),
	}
}

// Dims returns the shape of the coefficient matrix.
func (c *Constraints) Dims() (rows, cols int) { return c.A.Dims() }
