package availability

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// SlotsFor resolves the unit's bookable slots for a date. A special-date
// override fully replaces the weekly schedule for that day; a weekday marked
// unavailable (or absent) yields no slots.
func SlotsFor(unit *domain.Unit, date time.Time) []domain.Slot {
	day := unit.ScheduleFor(date)
	if !day.Available {
		return nil
	}
	return day.Slots
}

// MatchSlot finds the configured slot whose window exactly equals the
// candidate window. Partial-slot bookings are not supported: a window that
// merely fits inside a slot does not match.
func MatchSlot(unit *domain.Unit, date time.Time, window types.TimeWindow) (domain.Slot, bool) {
	for _, slot := range SlotsFor(unit, date) {
		if slot.Window.Equal(window) {
			return slot, true
		}
	}
	return domain.Slot{}, false
}
