package nodal

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// DefaultResidualTol is the largest inversion residual ||Q*Qinv - I||
// accepted before the basis is declared singular.
const DefaultResidualTol = 1e-6

// Transformer converts polynomials between monomial-coefficient and
// interpolant (nodal-value) representations through the basis matrix Q.
// It is a pure function of its inputs apart from the recorded residual
// diagnostic; transforming the same polynomial twice yields identical
// output.
type Transformer struct {
	basis       *Basis
	residualTol float64
	logger      *slog.Logger

	lastResidual float64
}

// NewTransformer wraps basis. residualTol <= 0 selects
// DefaultResidualTol.
func NewTransformer(basis *Basis, residualTol float64, logger *slog.Logger) *Transformer {
	if residualTol <= 0 {
		residualTol = DefaultResidualTol
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		basis:        basis,
		residualTol:  residualTol,
		logger:       logger,
		lastResidual: math.NaN(),
	}
}

// ToInterpolant solves Q*x = p for the interpolant coordinates x of the
// coefficient-form polynomial p. The solve is a factorization-based
// linear solve, not multiplication by an explicit inverse; the inverse
// is additionally computed as a diagnostic, and a residual
// ||Q*Qinv - I|| above the tolerance fails with ErrSingularBasis
// instead of propagating a silently degraded result.
func (t *Transformer) ToInterpolant(p []float64) ([]float64, error) {
	u := t.basis.Size()
	if len(p) != u {
		return nil, fmt.Errorf("nodal: polynomial has %d coefficients, want %d", len(p), u)
	}
	q := t.basis.TransformationMatrix()

	start := time.Now()
	var qInv mat.Dense
	invErr := qInv.Inverse(q)
	residual := math.Inf(1)
	if invErr == nil || isCondition(invErr) {
		var prod mat.Dense
		prod.Mul(q, &qInv)
		var diff mat.Dense
		diff.Sub(&prod, identity(u))
		residual = mat.Norm(&diff, 2)
	}
	t.lastResidual = residual
	t.logger.Info("Basis inversion diagnostic",
		"residual", residual,
		"elapsed", time.Since(start),
	)
	if residual > t.residualTol {
		return nil, fmt.Errorf("%w: inversion residual %.3e exceeds tolerance %.3e",
			ErrSingularBasis, residual, t.residualTol)
	}

	start = time.Now()
	var x mat.VecDense
	if err := x.SolveVec(q, mat.NewVecDense(u, p)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularBasis, err)
	}
	t.logger.Debug("Solved basis system", "elapsed", time.Since(start))

	out := make([]float64, u)
	for i := 0; i < u; i++ {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// ToCoefficients maps interpolant coordinates back to monomial
// coefficients by multiplying through Q.
func (t *Transformer) ToCoefficients(v []float64) []float64 {
	u := t.basis.Size()
	if len(v) != u {
		panic(fmt.Sprintf("nodal: vector has %d entries, want %d", len(v), u))
	}
	var out mat.VecDense
	out.MulVec(t.basis.TransformationMatrix(), mat.NewVecDense(u, v))
	coeffs := make([]float64, u)
	for i := 0; i < u; i++ {
		coeffs[i] = out.AtVec(i)
	}
	return coeffs
}

// LastResidual returns the inversion residual observed by the most
// recent ToInterpolant call, or NaN before the first call. Informational
// only.
func (t *Transformer) LastResidual() float64 { return t.lastResidual }

func isCondition(err error) bool {
	var cond mat.Condition
	return errors.As(err, &cond)
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
