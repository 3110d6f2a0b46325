package domain

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// ReservationStatus represents the lifecycle state of a unit reservation.
type ReservationStatus string

const (
	StatusPending     ReservationStatus = "PENDING"
	StatusConfirmed   ReservationStatus = "CONFIRMED"
	StatusModified    ReservationStatus = "MODIFIED"
	StatusCancelled   ReservationStatus = "CANCELLED"
	StatusRescheduled ReservationStatus = "RESCHEDULED"
	StatusCompleted   ReservationStatus = "COMPLETED"
	StatusNoShow      ReservationStatus = "NO_SHOW"
	StatusExpired     ReservationStatus = "EXPIRED"
)

// Reservation is a unit-level booking with its own lifecycle and history.
type Reservation struct {
	ID                   string
	UnitID               string
	BundleID             string
	OrganizationID       string
	PackageReservationID string

	Date      time.Time
	Window    types.TimeWindow
	PartySize int

	IsGroupReservation bool
	GroupSize          int

	Status ReservationStatus

	IsTemporary        bool
	TemporaryExpiresAt *time.Time

	UnitPrice  float64
	TotalPrice float64

	History []HistoryEntry

	// Lineage pointers for reschedules.
	OriginalReservationID      *string
	RescheduledToReservationID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true for states that reject any further modification.
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case StatusCancelled, StatusCompleted, StatusExpired, StatusNoShow:
		return true
	default:
		return false
	}
}

// CountsAgainstCapacity returns true when the reservation still occupies its
// slot. Rescheduled originals are excluded: their replacement holds the spot.
func (r *Reservation) CountsAgainstCapacity() bool {
	switch r.Status {
	case StatusCancelled, StatusExpired, StatusRescheduled, StatusNoShow:
		return false
	default:
		return true
	}
}

// HoldExpired reports whether a temporary hold has passed its deadline.
func (r *Reservation) HoldExpired(now time.Time) bool {
	return r.IsTemporary && r.TemporaryExpiresAt != nil && now.After(*r.TemporaryExpiresAt)
}

// StartsAt combines the reservation date and window start into an instant.
func (r *Reservation) StartsAt() time.Time {
	minutes, err := r.Window.Start.Minutes()
	if err != nil {
		// A malformed persisted window should never happen; fall back to midnight.
		minutes = 0
	}
	day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}

// EventPassed reports whether the reserved window start is behind now.
func (r *Reservation) EventPassed(now time.Time) bool {
	return now.After(r.StartsAt())
}

// HoursUntilStart returns the (possibly negative) number of hours before the
// reserved window starts.
func (r *Reservation) HoursUntilStart(now time.Time) float64 {
	return r.StartsAt().Sub(now).Hours()
}

// OrganizationReservationsFilter filters reservation listings for one shop.
type OrganizationReservationsFilter struct {
	OrganizationID  string
	UnitID          *string
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeInactive bool
}
