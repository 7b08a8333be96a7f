package envelope

import "errors"

var (
	// ErrPrecondition reports an invalid problem configuration: a
	// variable count that does not match the domain, a non-univariate
	// problem, a degree below 1, or an empty interval.
	ErrPrecondition = errors.New("envelope: invalid problem configuration")

	// ErrEmptyInstance reports that no polynomial has been registered.
	ErrEmptyInstance = errors.New("envelope: no polynomials registered")

	// ErrTrivialInstance reports that exactly one polynomial has been
	// registered; its lower envelope is itself.
	ErrTrivialInstance = errors.New("envelope: trivial instance")

	// ErrDimensionMismatch reports a vector whose length differs from
	// the working dimension U = 2d+1.
	ErrDimensionMismatch = errors.New("envelope: dimension mismatch")
)
