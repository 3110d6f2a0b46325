package evaluate_availability

import "errors"

var (
	// ErrUnitNotFound is returned when the unit does not exist.
	ErrUnitNotFound = errors.New("evaluate_availability: unit not found")

	// ErrBundleNotFound is returned when the owning bundle does not exist.
	ErrBundleNotFound = errors.New("evaluate_availability: bundle not found")

	// ErrOrganizationNotFound is returned when the owning organization does not exist.
	ErrOrganizationNotFound = errors.New("evaluate_availability: organization not found")

	// ErrInvalidInput is returned on malformed requests.
	ErrInvalidInput = errors.New("evaluate_availability: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("evaluate_availability: internal error")
)
