package reservation

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrPackageNotFound is returned when the package reservation does not exist.
	ErrPackageNotFound = errors.New("reservation.repository: package reservation not found")

	// ErrBuildQuery is returned when SQL query construction fails.
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery is returned when SQL query execution fails.
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrDecodePayload is returned when a stored JSON document cannot be decoded.
	ErrDecodePayload = errors.New("reservation.repository: failed to decode payload")
)
