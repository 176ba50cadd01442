package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad input: empty identifiers, non-positive rates or nights,
	// negative points.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by mutate/delete paths when the record is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnknownApartment is returned when a booking references an apartment the
	// catalogue does not know. Lookups use a 0 sentinel, so this is raised by the
	// orchestrator rather than the catalogue.
	ErrUnknownApartment = errors.New("unknown apartment")

	ErrInsufficientPoints = fmt.Errorf("%w: insufficient points", ErrValidation)
)
