package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// UseCase lists a unit's configured slots for a date, each with its
// availability verdict. Booking widgets render a day from one call.
type UseCase struct {
	catalog   CatalogProvider
	evaluator AvailabilityEvaluator
	logger    Logger
}

// NewUseCase creates the slot listing use case.
func NewUseCase(catalog CatalogProvider, evaluator AvailabilityEvaluator, logger Logger) *UseCase {
	return &UseCase{
		catalog:   catalog,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Execute lists the slots. Days with no schedule return an empty list.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	partySize := req.PartySize
	if partySize == 0 {
		partySize = domain.MinPartySize
	}

	unit, err := uc.catalog.GetUnit(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			uc.logger.Warn("GetAvailableSlots: unit id=%s not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get unit id=%s: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	resp := &Response{
		UnitID: unit.ID,
		Date:   req.Date,
		Slots:  []SlotInfo{},
	}

	schedule := unit.ScheduleFor(req.Date)
	if !schedule.Available {
		uc.logger.Info("GetAvailableSlots: unit=%s has no schedule on %s",
			unit.ID, req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	for _, slot := range schedule.Slots {
		verdict, err := uc.evaluator.Evaluate(ctx, &availability.Request{
			UnitID:    unit.ID,
			Date:      req.Date,
			Window:    slot.Window,
			PartySize: partySize,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: evaluation failed for unit=%s window=%s: %v",
				unit.ID, slot.Window, err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		resp.Slots = append(resp.Slots, SlotInfo{
			Window:         slot.Window,
			IsAvailable:    verdict.IsAvailable,
			AvailableSpots: verdict.AvailableSpots,
			TotalSpots:     verdict.TotalSpots,
			BlockingReason: verdict.BlockingReason,
			BlockingDetail: verdict.BlockingDetail,
		})
	}

	uc.logger.Info("GetAvailableSlots: unit=%s date=%s slots=%d",
		unit.ID, req.Date.Format(domain.DateFormat), len(resp.Slots))

	return resp, nil
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.UnitID == "" {
		return fmt.Errorf("%w: unitID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.PartySize < 0 {
		return fmt.Errorf("%w: partySize cannot be negative", ErrInvalidInput)
	}
	return nil
}
