package validate_booking

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// UnitRequest is one desired unit reservation inside a package booking.
type UnitRequest struct {
	UnitID             string
	Date               time.Time
	Window             types.TimeWindow
	PartySize          int
	IsGroupReservation bool
}

// AddonRequest is one desired addon selection.
type AddonRequest struct {
	AddonID  string
	Quantity int
}

// Request is the full package booking to validate.
type Request struct {
	BundleID string
	Customer domain.CustomerInfo
	Units    []UnitRequest
	Addons   []AddonRequest
}

// TotalPartySize sums the party sizes across the unit requests.
func (r *Request) TotalPartySize() int {
	total := 0
	for _, u := range r.Units {
		total += u.PartySize
	}
	return total
}

// UnitOutcome reports the availability verdict and price of one unit request.
type UnitOutcome struct {
	UnitID       string
	Date         time.Time
	Window       types.TimeWindow
	PartySize    int
	Availability *domain.AvailabilityResult

	// UnitPrice is the configured per-unit price; Price is the charge for this
	// request under per-group vs per-person semantics.
	UnitPrice float64
	Price     float64
}

// Response aggregates every sub-validation into one all-or-nothing result.
type Response struct {
	Result domain.ValidationResult

	UnitOutcomes   []UnitOutcome
	AddonPricing   []domain.AddonSelection
	TotalPartySize int

	UnitsTotal  float64
	AddonsTotal float64
	TotalPrice  float64
}
