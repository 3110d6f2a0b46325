package domain

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// OrganizationStatus represents the operational state of a shop.
type OrganizationStatus string

const (
	OrganizationActive    OrganizationStatus = "active"
	OrganizationInactive  OrganizationStatus = "inactive"
	OrganizationSuspended OrganizationStatus = "suspended"
)

// Organization is a shop selling bookable bundles.
type Organization struct {
	ID     string
	Name   string
	Status OrganizationStatus

	// WeeklyHours maps each weekday to its ordered open intervals.
	// A missing or empty entry means the shop is closed that day.
	WeeklyHours map[time.Weekday][]types.TimeWindow

	// CancellationPolicy governs penalties when reservations are cancelled.
	CancellationPolicy CancellationPolicy

	// ModificationPolicy governs the late-modification surcharge.
	ModificationPolicy ModificationPolicy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true when the shop can take bookings.
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationActive
}

// HoursFor returns the open intervals for the weekday of the given date.
// An empty result means closed all day.
func (o *Organization) HoursFor(date time.Time) []types.TimeWindow {
	return o.WeeklyHours[date.Weekday()]
}

// IsOpenOn returns true when the shop has at least one open interval on the
// weekday of the given date.
func (o *Organization) IsOpenOn(date time.Time) bool {
	return len(o.HoursFor(date)) > 0
}
