package get_available_slots

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Request asks for the bookable slots of one unit on one date.
type Request struct {
	UnitID string
	Date   time.Time

	// PartySize sizes the per-slot capacity check; zero means one person.
	PartySize int
}

// SlotInfo is one configured slot with its availability verdict.
type SlotInfo struct {
	Window         types.TimeWindow
	IsAvailable    bool
	AvailableSpots int
	TotalSpots     int

	// BlockingReason is set iff IsAvailable is false.
	BlockingReason *domain.BlockingReason
	BlockingDetail string
}

// Response lists the unit's slots for the date. A closed day yields an empty
// slot list, not an error.
type Response struct {
	UnitID string
	Date   time.Time
	Slots  []SlotInfo
}
