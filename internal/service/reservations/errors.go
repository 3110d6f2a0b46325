package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrOrganizationNotFound is returned when the owning organization does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrReservationTerminal is returned on any attempt to change a reservation
	// in a terminal state.
	ErrReservationTerminal = errors.New("reservation is in a terminal state")

	// ErrHoldExpired is returned when a temporary hold passed its deadline
	// and awaits release by the expiry sweep.
	ErrHoldExpired = errors.New("temporary hold has expired")

	// ErrEventPassed is returned when the reserved window has already started.
	ErrEventPassed = errors.New("reservation event has already passed")

	// ErrEventNotPassed is returned when completion is requested before the event.
	ErrEventNotPassed = errors.New("reservation event has not passed yet")

	// ErrCancellationNotAllowed is returned when the resolved policy tier
	// forbids cancellation.
	ErrCancellationNotAllowed = errors.New("cancellation window closed")

	// ErrPenaltyNotAccepted is returned when a penalty applies and the caller
	// has not accepted it.
	ErrPenaltyNotAccepted = errors.New("cancellation penalty not accepted")

	// ErrSlotUnavailable is returned when the target slot of a modification or
	// reschedule is not bookable.
	ErrSlotUnavailable = errors.New("target slot is not available")

	// ErrNoChanges is returned when a modification request changes nothing.
	ErrNoChanges = errors.New("modification contains no changes")

	// ErrInvalidInput is returned on malformed requests.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("reservations: internal error")
)
