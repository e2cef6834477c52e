package pricing

import "errors"

var (
	// ErrUnknownCategory is returned when a city, property type or amenity
	// is outside the closed sets the estimator has factors for.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrOutOfRange is returned by Validate for numeric fields outside the
	// ranges the listing form allows.
	ErrOutOfRange = errors.New("value out of range")
)
