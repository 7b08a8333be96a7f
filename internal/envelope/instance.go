package envelope

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/polyenv/polyenv/internal/conic"
)

// BuildInstance assembles the primal constraint system over the
// registered bounds, dualizes it, and attaches the composite barrier.
// At least two polynomials must be registered. After a successful build
// the registry is conceptually read-only; registering further bounds
// does not alter an already returned instance.
func (p *Problem) BuildInstance() (*conic.Instance, error) {
	n := len(p.bounds)
	if n == 0 {
		return nil, fmt.Errorf("%w: register at least two polynomials", ErrEmptyInstance)
	}
	if n == 1 {
		return nil, fmt.Errorf("%w: a single polynomial is its own envelope", ErrTrivialInstance)
	}

	primal := p.primalConstraints()
	rows, cols := primal.Dims()
	p.logger.Info("Primal SOS system assembled",
		"polynomials", n, "rows", rows, "cols", cols)

	inst := &conic.Instance{
		Constraints: primal.DualSystem(),
		Barrier:     p.barrier(),
	}
	p.logger.Info("Dual formulation created")
	return inst, nil
}

// primalConstraints encodes, for each registered polynomial i >= 1, the
// coupling Y_i = X + (bound_i - bound_0): the shared variable X in the
// first U-block tracks the envelope's deviation from the reference
// polynomial, and each Y_i block tracks the same deviation for
// polynomial i. The cost selects -objective on the X block, so
// minimizing maximizes the integral of the envelope.
func (p *Problem) primalConstraints() *conic.Constraints {
	n := len(p.bounds)
	u := p.u

	c := mat.NewVecDense(n*u, nil)
	for i := 0; i < u; i++ {
		c.SetVec(i, -p.objective[i])
	}

	a := mat.NewDense((n-1)*u, n*u, nil)
	b := mat.NewVecDense((n-1)*u, nil)
	for blk := 0; blk < n-1; blk++ {
		for i := 0; i < u; i++ {
			a.Set(blk*u+i, i, -1)
			a.Set(blk*u+i, (blk+1)*u+i, 1)
			b.SetVec(blk*u+i, p.bounds[blk+1][i]-p.bounds[0][i])
		}
	}

	return &conic.Constraints{A: a, B: b, C: c}
}

// barrier builds one sum-barrier per registered polynomial, each holding
// an SOS cone of the problem degree, plus a second cone weighted by
// 1 - x^2 when domain weighting is enabled. The product across blocks
// mirrors the U-sized block layout of the constraints.
func (p *Problem) barrier() conic.Barrier {
	n := len(p.bounds)
	factors := make([]conic.Barrier, 0, n)
	for i := 0; i < n; i++ {
		terms := []conic.Barrier{
			&conic.SOSCone{Degree: p.cfg.MaxDegree},
		}
		if p.cfg.Weighted {
			terms = append(terms, &conic.SOSCone{
				Degree: p.cfg.MaxDegree,
				Weight: []float64{1, 0, -1}, // 1 - x^2
			})
		}
		factors = append(factors, &conic.Sum{Terms: terms})
	}
	return &conic.Product{Factors: factors}
}
