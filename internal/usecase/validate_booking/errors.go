package validate_booking

import "errors"

var (
	// ErrBundleNotFound is returned when the bundle does not exist.
	ErrBundleNotFound = errors.New("validate_booking: bundle not found")

	// ErrOrganizationNotFound is returned when the owning organization does not exist.
	ErrOrganizationNotFound = errors.New("validate_booking: organization not found")

	// ErrInvalidInput is returned on malformed requests. Business-rule failures
	// are reported inside the validation result instead.
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("validate_booking: internal error")
)
