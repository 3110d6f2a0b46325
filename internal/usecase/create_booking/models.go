package create_booking

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

// Request is a package booking to commit.
type Request struct {
	BundleID string
	Customer domain.CustomerInfo
	Units    []validate_booking.UnitRequest
	Addons   []validate_booking.AddonRequest
}

// toValidation builds the dry-run request.
func (r *Request) toValidation() *validate_booking.Request {
	return &validate_booking.Request{
		BundleID: r.BundleID,
		Customer: r.Customer,
		Units:    r.Units,
		Addons:   r.Addons,
	}
}

// Response is the committed package reservation, or the validation issues
// when the booking was rejected (Committed=false, nothing persisted).
type Response struct {
	Committed  bool
	Validation domain.ValidationResult

	ID             string
	BundleID       string
	OrganizationID string
	Status         string
	Customer       domain.CustomerInfo

	Reservations    []resModels.ReservationResponse
	AddonSelections []domain.AddonSelection

	UnitsTotal  float64
	AddonsTotal float64
	TotalPrice  float64

	// HoldExpiresAt is set when the reservations are temporary holds awaiting
	// confirmation.
	HoldExpiresAt *time.Time

	CreatedAt time.Time
}
