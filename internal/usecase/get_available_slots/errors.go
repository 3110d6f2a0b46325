package get_available_slots

import "errors"

var (
	// ErrUnitNotFound is returned when the unit does not exist.
	ErrUnitNotFound = errors.New("get_available_slots: unit not found")

	// ErrInvalidInput is returned on malformed requests.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
