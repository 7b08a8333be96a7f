package nodal

import "errors"

// ErrSingularBasis reports that the basis matrix is not invertible to
// working precision: either the linear solve failed outright or the
// inversion residual exceeded the configured tolerance. Check with
// errors.Is(err, ErrSingularBasis).
var ErrSingularBasis = errors.New("nodal: singular basis matrix")
