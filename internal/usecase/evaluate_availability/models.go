package evaluate_availability

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Request is one availability question.
type Request struct {
	UnitID    string
	Date      time.Time
	Window    types.TimeWindow
	PartySize int
}

// Response carries the verdict and whether it was served from the cache.
type Response struct {
	Result domain.AvailabilityResult
	Cached bool
}
