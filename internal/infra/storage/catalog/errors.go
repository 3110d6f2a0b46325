package catalog

import "errors"

var (
	// ErrOrganizationNotFound is returned when the organization does not exist.
	ErrOrganizationNotFound = errors.New("catalog.repository: organization not found")

	// ErrBundleNotFound is returned when the bundle does not exist.
	ErrBundleNotFound = errors.New("catalog.repository: bundle not found")

	// ErrUnitNotFound is returned when the unit does not exist.
	ErrUnitNotFound = errors.New("catalog.repository: unit not found")

	// ErrAddonNotFound is returned when the addon does not exist.
	ErrAddonNotFound = errors.New("catalog.repository: addon not found")

	// ErrBuildQuery is returned when SQL query construction fails.
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery is returned when SQL query execution fails.
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrDecodePayload is returned when a stored JSON document cannot be decoded.
	ErrDecodePayload = errors.New("catalog.repository: failed to decode payload")
)
