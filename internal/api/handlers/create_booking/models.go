package create_booking

import (
	"time"

	validateBookingHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/validate_booking"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	createBooking "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/create_booking"
	validateBooking "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

// CreateBookingRequest HTTP request model (same shape as the validation
// endpoint; commit is validate-then-persist).
type CreateBookingRequest struct {
	BundleID string                                 `json:"bundleId"`
	Customer validateBookingHandler.CustomerPayload `json:"customer"`
	Units    []validateBookingHandler.UnitPayload   `json:"units"`
	Addons   []validateBookingHandler.AddonPayload  `json:"addons,omitempty"`
}

// PackageReservationResponse HTTP response model for a committed booking.
type PackageReservationResponse struct {
	ID             string `json:"id"`
	BundleID       string `json:"bundleId"`
	OrganizationID string `json:"organizationId"`
	Status         string `json:"status"`

	Customer validateBookingHandler.CustomerPayload `json:"customer"`

	Reservations    []resModels.ReservationResponse `json:"reservations"`
	AddonSelections []domain.AddonSelection         `json:"addonSelections,omitempty"`

	UnitsTotal  float64 `json:"unitsTotal"`
	AddonsTotal float64 `json:"addonsTotal"`
	TotalPrice  float64 `json:"totalPrice"`

	HoldExpiresAt *string `json:"holdExpiresAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
}

// RejectedBookingResponse HTTP response model for a booking that failed
// validation. Nothing was persisted.
type RejectedBookingResponse struct {
	Committed bool                     `json:"committed"`
	Errors    []domain.ValidationIssue `json:"errors"`
	Warnings  []domain.ValidationIssue `json:"warnings"`
}

// ToUseCaseRequest parses the HTTP payload into the use case request.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	units, err := validateBookingHandler.ToUnitRequests(r.Units)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		BundleID: r.BundleID,
		Customer: domain.CustomerInfo{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Units: units,
	}
	for _, addon := range r.Addons {
		req.Addons = append(req.Addons, validateBooking.AddonRequest{
			AddonID:  addon.AddonID,
			Quantity: addon.Quantity,
		})
	}
	return req, nil
}

// FromUseCaseResponse converts a committed booking into the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *PackageReservationResponse {
	out := &PackageReservationResponse{
		ID:             resp.ID,
		BundleID:       resp.BundleID,
		OrganizationID: resp.OrganizationID,
		Status:         resp.Status,
		Customer: validateBookingHandler.CustomerPayload{
			Name:  resp.Customer.Name,
			Email: resp.Customer.Email,
			Phone: resp.Customer.Phone,
		},
		Reservations:    resp.Reservations,
		AddonSelections: resp.AddonSelections,
		UnitsTotal:      resp.UnitsTotal,
		AddonsTotal:     resp.AddonsTotal,
		TotalPrice:      resp.TotalPrice,
		CreatedAt:       resp.CreatedAt,
	}
	if resp.HoldExpiresAt != nil {
		expires := resp.HoldExpiresAt.Format(time.RFC3339)
		out.HoldExpiresAt = &expires
	}
	return out
}
