package availability

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// OpenIntervalsFor resolves the organization's open intervals for the weekday
// of the given date. Empty means closed all day.
func OpenIntervalsFor(org *domain.Organization, date time.Time) []types.TimeWindow {
	return org.HoursFor(date)
}

// WithinBusinessHours reports whether the candidate window fits entirely
// inside at least one open interval. A window straddling two intervals (e.g.
// across a lunch break) is not within business hours.
func WithinBusinessHours(org *domain.Organization, date time.Time, window types.TimeWindow) bool {
	for _, interval := range OpenIntervalsFor(org, date) {
		if interval.Contains(window) {
			return true
		}
	}
	return false
}
