package validate_booking

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	validateBooking "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// CustomerPayload identifies the booking customer.
type CustomerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UnitPayload is one requested unit reservation.
type UnitPayload struct {
	UnitID             string `json:"unitId"`
	Date               string `json:"date"`      // "2025-06-07"
	StartTime          string `json:"startTime"` // "10:00"
	EndTime            string `json:"endTime"`   // "11:30"
	PartySize          int    `json:"partySize"`
	IsGroupReservation bool   `json:"isGroupReservation"`
}

// AddonPayload is one requested addon selection.
type AddonPayload struct {
	AddonID  string `json:"addonId"`
	Quantity int    `json:"quantity"`
}

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	BundleID string          `json:"bundleId"`
	Customer CustomerPayload `json:"customer"`
	Units    []UnitPayload   `json:"units"`
	Addons   []AddonPayload  `json:"addons,omitempty"`
}

// UnitOutcomePayload is the priced verdict for one requested unit.
type UnitOutcomePayload struct {
	UnitID         string  `json:"unitId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	PartySize      int     `json:"partySize"`
	IsAvailable    bool    `json:"isAvailable"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	Price          float64 `json:"price"`
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	IsValid  bool                     `json:"isValid"`
	Errors   []domain.ValidationIssue `json:"errors"`
	Warnings []domain.ValidationIssue `json:"warnings"`

	UnitOutcomes []UnitOutcomePayload    `json:"unitOutcomes,omitempty"`
	AddonPricing []domain.AddonSelection `json:"addonPricing,omitempty"`

	TotalPartySize int     `json:"totalPartySize"`
	UnitsTotal     float64 `json:"unitsTotal"`
	AddonsTotal    float64 `json:"addonsTotal"`
	TotalPrice     float64 `json:"totalPrice"`
}

// ToUseCaseRequest parses the HTTP payload into the use case request.
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	units, err := ToUnitRequests(r.Units)
	if err != nil {
		return nil, err
	}

	req := &validateBooking.Request{
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

// ToUnitRequests parses the unit payloads, rejecting malformed dates/windows.
func ToUnitRequests(payloads []UnitPayload) ([]validateBooking.UnitRequest, error) {
	units := make([]validateBooking.UnitRequest, 0, len(payloads))
	for _, unit := range payloads {
		date, err := time.Parse(domain.DateFormat, unit.Date)
		if err != nil {
			return nil, err
		}
		window, err := types.NewTimeWindow(unit.StartTime, unit.EndTime)
		if err != nil {
			return nil, err
		}
		units = append(units, validateBooking.UnitRequest{
			UnitID:             unit.UnitID,
			Date:               date,
			Window:             window,
			PartySize:          unit.PartySize,
			IsGroupReservation: unit.IsGroupReservation,
		})
	}
	return units, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	out := &ValidateBookingResponse{
		IsValid:        resp.Result.IsValid,
		Errors:         resp.Result.Errors,
		Warnings:       resp.Result.Warnings,
		AddonPricing:   resp.AddonPricing,
		TotalPartySize: resp.TotalPartySize,
		UnitsTotal:     resp.UnitsTotal,
		AddonsTotal:    resp.AddonsTotal,
		TotalPrice:     resp.TotalPrice,
	}
	for _, outcome := range resp.UnitOutcomes {
		payload := UnitOutcomePayload{
			UnitID:    outcome.UnitID,
			Date:      outcome.Date.Format(domain.DateFormat),
			StartTime: outcome.Window.Start.String(),
			EndTime:   outcome.Window.End.String(),
			PartySize: outcome.PartySize,
			Price:     outcome.Price,
		}
		if outcome.Availability != nil {
			payload.IsAvailable = outcome.Availability.IsAvailable
			payload.AvailableSpots = outcome.Availability.AvailableSpots
			payload.TotalSpots = outcome.Availability.TotalSpots
		}
		out.UnitOutcomes = append(out.UnitOutcomes, payload)
	}
	return out
}
