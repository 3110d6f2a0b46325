package modify_reservation

import (
	"fmt"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// ModifyReservationRequest HTTP request model. Omitted fields stay unchanged;
// a new window needs both times. ValidateOnly dry-runs the change.
type ModifyReservationRequest struct {
	NewDate      *string `json:"newDate,omitempty"`      // "2025-06-14"
	NewStartTime *string `json:"newStartTime,omitempty"` // "10:00"
	NewEndTime   *string `json:"newEndTime,omitempty"`   // "11:30"
	NewPartySize *int    `json:"newPartySize,omitempty"`
	Reason       string  `json:"reason,omitempty"`
	ValidateOnly bool    `json:"validateOnly,omitempty"`
}

// ToServiceRequest parses the payload into the service model.
func (r *ModifyReservationRequest) ToServiceRequest(reservationID, actor string) (*resModels.ModificationRequest, error) {
	req := &resModels.ModificationRequest{
		ReservationID: reservationID,
		Actor:         actor,
		NewPartySize:  r.NewPartySize,
		Reason:        r.Reason,
	}

	if r.NewDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.NewDate)
		if err != nil {
			return nil, err
		}
		req.NewDate = &date
	}

	if (r.NewStartTime == nil) != (r.NewEndTime == nil) {
		return nil, fmt.Errorf("newStartTime and newEndTime must be set together")
	}
	if r.NewStartTime != nil {
		window, err := types.NewTimeWindow(*r.NewStartTime, *r.NewEndTime)
		if err != nil {
			return nil, err
		}
		req.NewWindow = &window
	}

	return req, nil
}
