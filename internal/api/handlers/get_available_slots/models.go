package get_available_slots

import (
	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	getAvailableSlots "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/get_available_slots"
)

// SlotResponse is one configured slot with its verdict.
type SlotResponse struct {
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	IsAvailable    bool    `json:"isAvailable"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	BlockingReason *string `json:"blockingReason,omitempty"`
	BlockingDetail string  `json:"blockingDetail,omitempty"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	UnitID string         `json:"unitId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		UnitID: resp.UnitID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		item := SlotResponse{
			StartTime:      slot.Window.Start.String(),
			EndTime:        slot.Window.End.String(),
			IsAvailable:    slot.IsAvailable,
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
			BlockingDetail: slot.BlockingDetail,
		}
		if slot.BlockingReason != nil {
			reason := string(*slot.BlockingReason)
			item.BlockingReason = &reason
		}
		out.Slots = append(out.Slots, item)
	}
	return out
}
