package create_booking

import "errors"

var (
	// ErrBundleNotFound is returned when the bundle does not exist.
	ErrBundleNotFound = errors.New("create_booking: bundle not found")

	// ErrOrganizationNotFound is returned when the owning organization does not exist.
	ErrOrganizationNotFound = errors.New("create_booking: organization not found")

	// ErrInvalidInput is returned on malformed requests.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_booking: internal error")
)
