package cancel_reservation

import (
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model. ValidateOnly returns the
// penalty assessment without cancelling.
type CancelReservationRequest struct {
	Reason        string `json:"reason,omitempty"`
	AcceptPenalty bool   `json:"acceptPenalty,omitempty"`
	ValidateOnly  bool   `json:"validateOnly,omitempty"`
}

// ToServiceRequest converts the payload into the service model.
func (r *CancelReservationRequest) ToServiceRequest(reservationID, actor string) *resModels.CancellationRequest {
	return &resModels.CancellationRequest{
		ReservationID: reservationID,
		Actor:         actor,
		Reason:        r.Reason,
		AcceptPenalty: r.AcceptPenalty,
	}
}
