package domain

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Slot is one bookable window on a unit's schedule.
type Slot struct {
	Window types.TimeWindow
	// MaxBookingsPerSlot is the capacity of the slot in persons.
	MaxBookingsPerSlot int
}

// DaySchedule is a unit's configuration for one day: either a weekday entry of
// the weekly schedule or a special-date override.
type DaySchedule struct {
	Available bool
	Slots     []Slot
}

// Unit is an individually schedulable component of a bundle (an "item").
type Unit struct {
	ID             string
	BundleID       string
	OrganizationID string
	Name           string

	// Capacity is the maximum party size for a single reservation.
	Capacity        int
	DurationMinutes int
	Price           float64

	// IsPerGroup: price is charged once per reservation instead of per person.
	IsPerGroup bool

	// WeeklySchedule maps weekdays to their slot configuration.
	WeeklySchedule map[time.Weekday]DaySchedule

	// SpecialDates overrides the weekly schedule for exact dates
	// (keyed by DateFormat). An override fully replaces the weekday entry.
	SpecialDates map[string]DaySchedule

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleFor resolves the day schedule for a date: a special-date override
// wins over the weekly schedule; a missing weekday entry means unavailable.
func (u *Unit) ScheduleFor(date time.Time) DaySchedule {
	if override, ok := u.SpecialDates[date.Format(DateFormat)]; ok {
		return override
	}
	if day, ok := u.WeeklySchedule[date.Weekday()]; ok {
		return day
	}
	return DaySchedule{Available: false}
}

// PriceFor returns the charge for a reservation of the given party size.
func (u *Unit) PriceFor(partySize int) float64 {
	if u.IsPerGroup {
		return u.Price
	}
	return u.Price * float64(partySize)
}
