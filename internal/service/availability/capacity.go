package availability

import (
	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Occupancy is the capacity picture of one slot against a candidate window.
type Occupancy struct {
	Occupied       int
	Available      int
	TotalSpots     int
	ConflictingIDs []string
}

// TrackCapacity computes occupancy for a candidate window against the
// existing reservations of the unit/date. Only reservations still counting
// against capacity participate; a reservation overlaps when its half-open
// window shares any instant with the candidate (touching boundaries do not).
//
// excludeReservationID removes one reservation from the accounting, used when
// re-evaluating a modification of that same reservation.
func TrackCapacity(
	slot domain.Slot,
	reservations []*domain.Reservation,
	window types.TimeWindow,
	excludeReservationID *string,
) Occupancy {
	occupied := 0
	conflicting := make([]string, 0)

	for _, res := range reservations {
		if res == nil || !res.CountsAgainstCapacity() {
			continue
		}
		if excludeReservationID != nil && res.ID == *excludeReservationID {
			continue
		}
		if !res.Window.Overlaps(window) {
			continue
		}
		occupied += res.PartySize
		conflicting = append(conflicting, res.ID)
	}

	available := slot.MaxBookingsPerSlot - occupied
	if available < 0 {
		available = 0
	}

	return Occupancy{
		Occupied:       occupied,
		Available:      available,
		TotalSpots:     slot.MaxBookingsPerSlot,
		ConflictingIDs: conflicting,
	}
}

// IsFeasible reports whether a new request can be admitted: at least one spot
// must remain. Partial admission below the requested party size is not
// supported; callers see Available and may downsize and retry.
func (o Occupancy) IsFeasible() bool {
	return o.Available > 0
}
