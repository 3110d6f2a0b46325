package evaluate_availability

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	evaluateAvailability "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/evaluate_availability"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	UnitID         string  `json:"unitId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	PartySize      int     `json:"partySize"`
	IsAvailable    bool    `json:"isAvailable"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	BlockingReason *string `json:"blockingReason,omitempty"`
	BlockingDetail string  `json:"blockingDetail,omitempty"`

	ConflictingReservationIDs []string `json:"conflictingReservationIds,omitempty"`

	Cached bool `json:"cached"`
}

// ToUseCaseRequest parses the query parameters into the use case request.
func ToUseCaseRequest(unitID, dateStr, startStr, endStr string, partySize int) (*evaluateAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	window, err := types.NewTimeWindow(startStr, endStr)
	if err != nil {
		return nil, err
	}

	return &evaluateAvailability.Request{
		UnitID:    unitID,
		Date:      date,
		Window:    window,
		PartySize: partySize,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(req *evaluateAvailability.Request, resp *evaluateAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		UnitID:                    req.UnitID,
		Date:                      req.Date.Format(domain.DateFormat),
		StartTime:                 req.Window.Start.String(),
		EndTime:                   req.Window.End.String(),
		PartySize:                 req.PartySize,
		IsAvailable:               resp.Result.IsAvailable,
		AvailableSpots:            resp.Result.AvailableSpots,
		TotalSpots:                resp.Result.TotalSpots,
		BlockingDetail:            resp.Result.BlockingDetail,
		ConflictingReservationIDs: resp.Result.ConflictingReservationIDs,
		Cached:                    resp.Cached,
	}
	if resp.Result.BlockingReason != nil {
		reason := string(*resp.Result.BlockingReason)
		out.BlockingReason = &reason
	}
	return out
}
