package availability

import "errors"

var (
	// ErrOrganizationNotFound is returned when the organization is absent from the snapshot
	ErrOrganizationNotFound = errors.New("availability: organization not found")

	// ErrBundleNotFound is returned when the bundle is absent from the snapshot
	ErrBundleNotFound = errors.New("availability: bundle not found")

	// ErrUnitNotFound is returned when the unit is absent from the snapshot
	ErrUnitNotFound = errors.New("availability: unit not found")

	// ErrInvalidRequest is returned for malformed evaluation requests
	ErrInvalidRequest = errors.New("availability: invalid request")

	// ErrInternal is returned for snapshot provider failures
	ErrInternal = errors.New("availability: internal error")
)
