package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Request is one availability question: can partySize people take this unit
// on this date in this window?
type Request struct {
	UnitID    string
	Date      time.Time
	Window    types.TimeWindow
	PartySize int

	// ExcludeReservationID removes one reservation from capacity accounting
	// (set when re-evaluating a modification of that reservation).
	ExcludeReservationID *string
}

// Evaluator composes the business-hours, schedule, rule and capacity checks
// into a single verdict. It is a pure function of the injected snapshot: no
// mutation, no I/O beyond the providers.
type Evaluator struct {
	catalog      CatalogProvider
	reservations ReservationProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewEvaluator creates an evaluator over the given snapshot providers.
func NewEvaluator(catalog CatalogProvider, reservations ReservationProvider, logger Logger) *Evaluator {
	return &Evaluator{
		catalog:      catalog,
		reservations: reservations,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider swaps the clock. Used by tests and the lifecycle manager.
func (e *Evaluator) WithTimeProvider(tp TimeProvider) *Evaluator {
	e.timeProvider = tp
	return e
}

// Evaluate decides one request. Checks run in a fixed order and short-circuit
// on the first failure: unit active, advance-booking policy, business hours,
// slot match, rules, capacity.
func (e *Evaluator) Evaluate(ctx context.Context, req *Request) (*domain.AvailabilityResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	unit, err := e.catalog.GetUnit(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			e.logger.Warn("Evaluate: unit id=%s not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("%w: failed to load unit: %v", ErrInternal, err)
	}

	bundle, err := e.catalog.GetBundle(ctx, unit.BundleID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBundleNotFound) {
			e.logger.Warn("Evaluate: bundle id=%s not found", unit.BundleID)
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("%w: failed to load bundle: %v", ErrInternal, err)
	}

	org, err := e.catalog.GetOrganization(ctx, unit.OrganizationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOrganizationNotFound) {
			e.logger.Warn("Evaluate: organization id=%s not found", unit.OrganizationID)
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("%w: failed to load organization: %v", ErrInternal, err)
	}

	// 1. Unit must be active (and its bundle and shop sellable)
	if !unit.Active || !bundle.Active || !org.IsActive() {
		result := domain.Blocked(domain.ReasonItemInactive, fmt.Sprintf("unit %s is not bookable", unit.ID))
		return &result, nil
	}

	// 2. Advance-booking policy
	now := e.timeProvider.Now()
	if detail, ok := checkAdvanceBooking(bundle, req.Date, req.Window, now); !ok {
		result := domain.Blocked(domain.ReasonAdvanceBooking, detail)
		return &result, nil
	}

	// 3. The window must fit inside one business-hours interval
	if !WithinBusinessHours(org, req.Date, req.Window) {
		result := domain.Blocked(domain.ReasonBusinessHours,
			fmt.Sprintf("window %s is outside business hours on %s", req.Window, req.Date.Format(domain.DateFormat)))
		return &result, nil
	}

	// 4. The window must exactly match a configured slot
	slot, ok := MatchSlot(unit, req.Date, req.Window)
	if !ok {
		result := domain.Blocked(domain.ReasonBusinessHours,
			fmt.Sprintf("no slot %s configured for unit %s on %s", req.Window, unit.ID, req.Date.Format(domain.DateFormat)))
		return &result, nil
	}

	// 5. Block/open rules
	chain := domain.TargetChain{
		UnitID:         unit.ID,
		BundleID:       bundle.ID,
		OrganizationID: org.ID,
	}
	rules, err := e.catalog.GetRulesForChain(ctx, chain)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load rules: %v", ErrInternal, err)
	}

	resolution := ResolveRules(rules, chain, req.Date, req.Window)
	if resolution.IsBlocked {
		result := domain.Blocked(domain.ReasonException, resolution.Reason)
		result.TotalSpots = slot.MaxBookingsPerSlot
		return &result, nil
	}

	// 6. Capacity
	existing, err := e.reservations.GetByUnitAndDate(ctx, unit.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
	}

	occupancy := TrackCapacity(slot, existing, req.Window, req.ExcludeReservationID)
	if !occupancy.IsFeasible() {
		result := domain.Blocked(domain.ReasonFullyBooked,
			fmt.Sprintf("slot %s is fully booked (%d/%d)", req.Window, occupancy.Occupied, occupancy.TotalSpots))
		result.AvailableSpots = 0
		result.TotalSpots = occupancy.TotalSpots
		result.ConflictingReservationIDs = occupancy.ConflictingIDs
		return &result, nil
	}

	e.logger.Info("Evaluate: unit=%s date=%s window=%s party=%d -> available %d/%d",
		req.UnitID, req.Date.Format(domain.DateFormat), req.Window, req.PartySize,
		occupancy.Available, occupancy.TotalSpots)

	return &domain.AvailabilityResult{
		IsAvailable:    true,
		AvailableSpots: occupancy.Available,
		TotalSpots:     occupancy.TotalSpots,
	}, nil
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.UnitID == "" {
		return fmt.Errorf("%w: unitID is required", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if err := req.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: partySize must be at least %d", ErrInvalidRequest, domain.MinPartySize)
	}
	return nil
}

// checkAdvanceBooking enforces the bundle's booking-horizon policy: the date
// must not be in the past, not beyond AdvanceBookingDays, and same-day
// bookings must respect MinNoticeMinutes.
func checkAdvanceBooking(bundle *domain.Bundle, date time.Time, window types.TimeWindow, now time.Time) (string, bool) {
	if isDateInPast(date, now) {
		return "date is in the past", false
	}

	if bundle.HasAdvanceBookingLimit() {
		maxDate := truncateToDay(now).AddDate(0, 0, bundle.AdvanceBookingDays)
		if truncateToDay(date).After(maxDate) {
			return fmt.Sprintf("can only book %d days in advance", bundle.AdvanceBookingDays), false
		}
	}

	if bundle.MinNoticeMinutes > 0 && isSameDay(date, now) {
		current := types.NewTimeString(now)
		minAllowed, err := current.AddMinutes(bundle.MinNoticeMinutes)
		if err != nil {
			// Notice period extends past midnight: nothing left to book today.
			return fmt.Sprintf("must book at least %d minutes in advance", bundle.MinNoticeMinutes), false
		}
		if window.Start.IsBefore(minAllowed) {
			return fmt.Sprintf("must book at least %d minutes in advance", bundle.MinNoticeMinutes), false
		}
	}

	return "", true
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
