package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// UseCase validates a complete package booking: every unit request, every
// addon selection and the package-level bounds, aggregated into one
// all-or-nothing result.
type UseCase struct {
	catalog      CatalogProvider
	reservations ReservationProvider
	evaluator    AvailabilityEvaluator
	logger       Logger
}

// NewUseCase creates the package validator.
func NewUseCase(
	catalog CatalogProvider,
	reservations ReservationProvider,
	evaluator AvailabilityEvaluator,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		reservations: reservations,
		evaluator:    evaluator,
		logger:       logger,
	}
}

// Execute dry-runs the package booking. A nil error with Result.IsValid=false
// means the request was well-formed but fails business rules; the issues say
// which.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: bundle=%s, units=%d, addons=%d",
		req.BundleID, len(req.Units), len(req.Addons))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	bundle, err := uc.catalog.GetBundle(ctx, req.BundleID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBundleNotFound) {
			uc.logger.Warn("ValidateBooking: bundle id=%s not found", req.BundleID)
			return nil, ErrBundleNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get bundle id=%s: %v", req.BundleID, err)
		return nil, fmt.Errorf("%w: failed to get bundle: %v", ErrInternal, err)
	}

	org, err := uc.catalog.GetOrganization(ctx, bundle.OrganizationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOrganizationNotFound) {
			uc.logger.Warn("ValidateBooking: organization id=%s not found", bundle.OrganizationID)
			return nil, ErrOrganizationNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get organization id=%s: %v", bundle.OrganizationID, err)
		return nil, fmt.Errorf("%w: failed to get organization: %v", ErrInternal, err)
	}

	resp := &Response{
		Result:         domain.NewValidationResult(),
		TotalPartySize: req.TotalPartySize(),
	}

	if !bundle.Active {
		resp.Result.AddError("BUNDLE_INACTIVE", "bundleId",
			fmt.Sprintf("bundle %s is not bookable", bundle.ID))
	}

	// Organization must be open on every requested date, independent of
	// per-unit schedules.
	checkOrganizationOpen(&resp.Result, org, req.Units)

	// Package-level capacity bound across all unit requests.
	if bundle.MaxCapacity > 0 && resp.TotalPartySize > bundle.MaxCapacity {
		resp.Result.AddError("PACKAGE_CAPACITY_EXCEEDED", "units",
			fmt.Sprintf("total party size %d exceeds package capacity %d", resp.TotalPartySize, bundle.MaxCapacity))
	}

	acceptedUnits := make(map[string]bool, len(req.Units))
	for i, unitReq := range req.Units {
		outcome, err := uc.evaluateUnit(ctx, &resp.Result, bundle, i, unitReq)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			resp.UnitOutcomes = append(resp.UnitOutcomes, *outcome)
			resp.UnitsTotal += outcome.Price
			acceptedUnits[unitReq.UnitID] = true
		}
	}

	addons, err := uc.catalog.GetAddonsByBundle(ctx, bundle.ID)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get addons for bundle id=%s: %v", bundle.ID, err)
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	resp.AddonPricing, resp.AddonsTotal = validateAddons(&resp.Result, addons, req.Addons, acceptedUnits, resp.TotalPartySize)
	resp.TotalPrice = resp.UnitsTotal + resp.AddonsTotal

	uc.logger.Info("ValidateBooking: bundle=%s valid=%t errors=%d warnings=%d total=%.2f",
		req.BundleID, resp.Result.IsValid, len(resp.Result.Errors), len(resp.Result.Warnings), resp.TotalPrice)

	return resp, nil
}

// evaluateUnit runs the availability engine and the group-exclusivity check
// for one unit request. Returns nil outcome when the unit cannot be priced.
func (uc *UseCase) evaluateUnit(ctx context.Context, result *domain.ValidationResult, bundle *domain.Bundle, index int, unitReq UnitRequest) (*UnitOutcome, error) {
	field := fmt.Sprintf("units[%d]", index)

	if !bundle.HasUnit(unitReq.UnitID) {
		result.AddError("UNIT_NOT_IN_BUNDLE", field,
			fmt.Sprintf("unit %s does not belong to bundle %s", unitReq.UnitID, bundle.ID))
		return nil, nil
	}

	unit, err := uc.catalog.GetUnit(ctx, unitReq.UnitID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			result.AddError("UNIT_NOT_FOUND", field, fmt.Sprintf("unit %s not found", unitReq.UnitID))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	if unitReq.PartySize > unit.Capacity {
		result.AddError("PARTY_SIZE_EXCEEDS_CAPACITY", field,
			fmt.Sprintf("party size %d exceeds unit capacity %d", unitReq.PartySize, unit.Capacity))
	}

	verdict, err := uc.evaluator.Evaluate(ctx, &availability.Request{
		UnitID:    unitReq.UnitID,
		Date:      unitReq.Date,
		Window:    unitReq.Window,
		PartySize: unitReq.PartySize,
	})
	if err != nil {
		if errors.Is(err, availability.ErrUnitNotFound) {
			result.AddError("UNIT_NOT_FOUND", field, fmt.Sprintf("unit %s not found", unitReq.UnitID))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if !verdict.IsAvailable {
		reason := ""
		if verdict.BlockingReason != nil {
			reason = string(*verdict.BlockingReason)
		}
		result.AddError("UNIT_UNAVAILABLE", field,
			fmt.Sprintf("unit %s is not available on %s %s (%s): %s",
				unitReq.UnitID, unitReq.Date.Format(domain.DateFormat), unitReq.Window, reason, verdict.BlockingDetail))
	}

	existing, err := uc.reservations.GetByUnitAndDate(ctx, unitReq.UnitID, unitReq.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}
	checkGroupExclusivity(result, field, unitReq, existing)

	return &UnitOutcome{
		UnitID:       unitReq.UnitID,
		Date:         unitReq.Date,
		Window:       unitReq.Window,
		PartySize:    unitReq.PartySize,
		Availability: verdict,
		UnitPrice:    unit.Price,
		Price:        unit.PriceFor(unitReq.PartySize),
	}, nil
}
