package envelope

import (
	"fmt"

	"github.com/polyenv/polyenv/internal/conic"
)

// ProjectInterpolant recovers the fitted envelope in interpolant
// coordinates: the reference polynomial minus the first U entries of the
// solver's slack vector.
func (p *Problem) ProjectInterpolant(sol *conic.Solution) ([]float64, error) {
	if len(p.bounds) == 0 {
		return nil, fmt.Errorf("%w: nothing to project against", ErrEmptyInstance)
	}
	if sol == nil || len(sol.S) < p.u {
		return nil, fmt.Errorf("%w: slack vector shorter than %d", ErrDimensionMismatch, p.u)
	}
	env := make([]float64, p.u)
	for i := range env {
		env[i] = p.bounds[0][i] - sol.S[i]
	}
	return env, nil
}

// Project returns the fitted envelope in the problem's input
// representation: interpolant coordinates in interpolant-input mode,
// monomial coefficients (mapped back through the basis matrix)
// otherwise.
func (p *Problem) Project(sol *conic.Solution) ([]float64, error) {
	env, err := p.ProjectInterpolant(sol)
	if err != nil {
		return nil, err
	}
	if p.cfg.InterpolantInput {
		return env, nil
	}
	return p.ensureBasis().ToCoefficients(env), nil
}

// Curve evaluates an interpolant-coordinate polynomial at each sample
// point by mapping it through the basis matrix once and running Horner
// per point.
func (p *Problem) Curve(v []float64, xs []float64) ([]float64, error) {
	if len(v) != p.u {
		return nil, fmt.Errorf("%w: vector has %d entries, want %d",
			ErrDimensionMismatch, len(v), p.u)
	}
	coeffs := p.ensureBasis().ToCoefficients(v)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		acc := 0.0
		for j := len(coeffs) - 1; j >= 0; j-- {
			acc = acc*x + coeffs[j]
		}
		ys[i] = acc
	}
	return ys, nil
}
