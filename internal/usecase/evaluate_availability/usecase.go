package evaluate_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	availcache "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/cache/availability"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// UseCase answers availability questions, memoizing verdicts so repeated
// widget polls for the same unit, date and window skip the full evaluation.
type UseCase struct {
	evaluator AvailabilityEvaluator
	cache     ResultCache
	logger    Logger
}

// NewUseCase creates the availability use case.
func NewUseCase(evaluator AvailabilityEvaluator, cache ResultCache, logger Logger) *UseCase {
	return &UseCase{
		evaluator: evaluator,
		cache:     cache,
		logger:    logger,
	}
}

// Execute answers one availability question, from the cache when fresh.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	key := availcache.Key(req.UnitID, req.Date, req.Window, req.PartySize)
	if result, ok := uc.cache.Get(key); ok {
		return &Response{Result: result, Cached: true}, nil
	}

	result, err := uc.evaluator.Evaluate(ctx, &availability.Request{
		UnitID:    req.UnitID,
		Date:      req.Date,
		Window:    req.Window,
		PartySize: req.PartySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrUnitNotFound):
			uc.logger.Warn("EvaluateAvailability: unit id=%s not found", req.UnitID)
			return nil, ErrUnitNotFound
		case errors.Is(err, availability.ErrBundleNotFound):
			return nil, ErrBundleNotFound
		case errors.Is(err, availability.ErrOrganizationNotFound):
			return nil, ErrOrganizationNotFound
		case errors.Is(err, availability.ErrInvalidRequest):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("EvaluateAvailability: evaluation failed for unit id=%s: %v", req.UnitID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.cache.Put(req.UnitID, req.Date, key, *result)

	uc.logger.Info("EvaluateAvailability: unit=%s date=%s window=%s available=%t",
		req.UnitID, req.Date.Format(domain.DateFormat), req.Window, result.IsAvailable)

	return &Response{Result: *result}, nil
}
