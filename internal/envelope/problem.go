package envelope

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/polyenv/polyenv/internal/nodal"
)

// Interval is one closed domain interval [Min, Max].
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Config describes an envelope problem. One interval per variable; only
// univariate problems are supported.
type Config struct {
	NumVariables int        `json:"numVariables"`
	MaxDegree    int        `json:"maxDegree"`
	Domain       []Interval `json:"domain"`

	// InterpolantInput declares registered polynomials to already be in
	// interpolant (nodal-value) coordinates. Otherwise they are monomial
	// coefficient vectors and are converted on registration.
	InterpolantInput bool `json:"interpolantInput"`

	// Weighted adds a second SOS cone weighted by 1 - x^2 to every
	// barrier block, restricting nonnegativity to the canonical
	// interval.
	Weighted bool `json:"weighted"`

	// ResidualTol bounds the basis inversion residual before the basis
	// is declared singular; 0 selects nodal.DefaultResidualTol.
	ResidualTol float64 `json:"residualTol,omitempty"`
}

// Problem accumulates polynomial bounds and assembles the SOS instance
// whose solution is their pointwise lower envelope over the domain.
// A Problem owns its registry and cached basis exclusively and is not
// safe for concurrent use.
type Problem struct {
	cfg       Config
	l, u      int
	objective []float64
	bounds    [][]float64
	logger    *slog.Logger

	// Built on first use and memoized. Instance assembly in
	// interpolant-input mode never needs them.
	basis       *nodal.Basis
	transformer *nodal.Transformer
}

// New validates cfg and computes the quadrature objective: the negated
// Clenshaw-Curtis weights scaled to the domain, so that the objective is
// the linear functional -(integral over the domain) in interpolant
// coordinates. L = d+1 quadrature nodes, U = 2d+1 working dimensions.
func New(cfg Config, logger *slog.Logger) (*Problem, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.NumVariables != len(cfg.Domain) {
		return nil, fmt.Errorf("%w: %d variables but %d domain intervals",
			ErrPrecondition, cfg.NumVariables, len(cfg.Domain))
	}
	if cfg.NumVariables != 1 {
		return nil, fmt.Errorf("%w: only univariate problems are supported, got %d variables",
			ErrPrecondition, cfg.NumVariables)
	}
	if cfg.MaxDegree < 1 {
		return nil, fmt.Errorf("%w: max degree must be at least 1, got %d",
			ErrPrecondition, cfg.MaxDegree)
	}
	dom := cfg.Domain[0]
	if !(dom.Min < dom.Max) {
		return nil, fmt.Errorf("%w: domain [%g, %g] is empty",
			ErrPrecondition, dom.Min, dom.Max)
	}

	p := &Problem{
		cfg:    cfg,
		l:      cfg.MaxDegree + 1,
		u:      2*cfg.MaxDegree + 1,
		logger: logger,
	}

	logger.Info("Constructing objective vector",
		"quadrature_nodes", p.l, "dimension", p.u)
	weights := nodal.ClenshawCurtisWeights(cfg.MaxDegree)
	scale := (dom.Max - dom.Min) / 2
	p.objective = make([]float64, p.u)
	for i, w := range weights {
		p.objective[i] = -w * scale
	}
	return p, nil
}

// Config returns the problem configuration.
func (p *Problem) Config() Config {
	cfg := p.cfg
	cfg.Domain = append([]Interval(nil), p.cfg.Domain...)
	return cfg
}

// Dimension returns the working dimension U = 2d+1.
func (p *Problem) Dimension() int { return p.u }

// QuadratureNodes returns the quadrature node count L = d+1.
func (p *Problem) QuadratureNodes() int { return p.l }

// Objective returns a copy of the objective vector.
func (p *Problem) Objective() []float64 {
	obj := make([]float64, p.u)
	copy(obj, p.objective)
	return obj
}

// Count returns the number of registered polynomials.
func (p *Problem) Count() int { return len(p.bounds) }

// Bound returns a copy of registered polynomial i in interpolant
// coordinates. Index 0 is the reference polynomial.
func (p *Problem) Bound(i int) []float64 {
	bound := make([]float64, p.u)
	copy(bound, p.bounds[i])
	return bound
}

// ZeroPolynomial returns the zero polynomial, valid in either
// representation.
func (p *Problem) ZeroPolynomial() []float64 { return make([]float64, p.u) }

// InversionResidual returns the basis inversion diagnostic from the most
// recent coefficient transform, or NaN if none has run. Informational
// only.
func (p *Problem) InversionResidual() float64 {
	if p.transformer == nil {
		return math.NaN()
	}
	return p.transformer.LastResidual()
}

// Register appends one polynomial bound to the registry. The vector must
// have exactly U entries; coefficient-form input is converted to
// interpolant coordinates first. The append is atomic: on any failure
// the registry is unchanged.
func (p *Problem) Register(poly []float64) error {
	if len(poly) != p.u {
		return fmt.Errorf("%w: polynomial has %d entries, want %d",
			ErrDimensionMismatch, len(poly), p.u)
	}
	v := make([]float64, p.u)
	copy(v, poly)
	if !p.cfg.InterpolantInput {
		iv, err := p.ensureBasis().ToInterpolant(v)
		if err != nil {
			return err
		}
		v = iv
	}
	p.bounds = append(p.bounds, v)
	p.logger.Debug("Registered polynomial bound", "index", len(p.bounds)-1)
	return nil
}

// ensureBasis builds the Lagrange basis and transformer on first use.
func (p *Problem) ensureBasis() *nodal.Transformer {
	if p.transformer == nil {
		p.basis = nodal.NewBasis(p.cfg.MaxDegree, p.logger)
		p.transformer = nodal.NewTransformer(p.basis, p.cfg.ResidualTol, p.logger)
	}
	return p.transformer
}
