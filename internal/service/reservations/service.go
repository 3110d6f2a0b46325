package reservations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	reservationRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/reservation"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Service manages the lifecycle of unit reservations after creation:
// modification, cancellation, reschedule, hold expiry and closing states.
type Service struct {
	repo         ReservationRepository
	catalog      CatalogProvider
	evaluator    AvailabilityEvaluator
	txManager    TransactionManager
	timeProvider TimeProvider
	idGenerator  IDGenerator
	cache        CacheInvalidator
	logger       Logger
}

// NewService creates the reservation lifecycle service.
func NewService(
	repo ReservationRepository,
	catalog CatalogProvider,
	evaluator AvailabilityEvaluator,
	txManager TransactionManager,
	timeProvider TimeProvider,
	idGenerator IDGenerator,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		catalog:      catalog,
		evaluator:    evaluator,
		txManager:    txManager,
		timeProvider: timeProvider,
		idGenerator:  idGenerator,
		logger:       logger,
	}
}

// WithCacheInvalidator attaches the availability cache so capacity-changing
// operations drop stale verdicts.
func (s *Service) WithCacheInvalidator(cache CacheInvalidator) *Service {
	s.cache = cache
	return s
}

// GetByID fetches one reservation.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(reservation), nil
}

// GetOrganizationReservations lists reservations of one shop with filtering.
// Inactive statuses are excluded unless the filter opts in.
func (s *Service) GetOrganizationReservations(ctx context.Context, filter domain.OrganizationReservationsFilter) (*models.ReservationListResponse, error) {
	if filter.OrganizationID == "" {
		return nil, fmt.Errorf("%w: organizationID is required", ErrInvalidInput)
	}

	list, err := s.repo.GetByOrganizationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOrganizationReservations: repository error for org=%s: %v", filter.OrganizationID, err)
		return nil, fmt.Errorf("%w: GetOrganizationReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrganizationReservations: fetched %d reservations for org=%s", len(list), filter.OrganizationID)
	return models.FromDomainReservationList(list), nil
}

// ValidateModification dry-runs a modification and reports whether it would be
// accepted, plus the late-modification surcharge that would apply.
func (s *Service) ValidateModification(ctx context.Context, req *models.ModificationRequest) (*models.ModificationAssessment, error) {
	assessment, _, err := s.assessModification(ctx, req)
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

// Modify applies a validated modification: field diffs are recorded in the
// history, the status moves to MODIFIED, and the total price is recomputed
// when the party size changed. A late modification adds an informational
// surcharge warning but never blocks.
func (s *Service) Modify(ctx context.Context, req *models.ModificationRequest) (*models.ReservationResponse, error) {
	assessment, reservation, err := s.assessModification(ctx, req)
	if err != nil {
		return nil, err
	}
	if !assessment.Allowed {
		return nil, modificationError(assessment)
	}

	now := s.timeProvider.Now()
	var changes []domain.FieldChange
	var freedDate time.Time

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Re-read under lock so the capacity re-check and the write are atomic.
		current, err := s.repo.GetByID(ctx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Modify - repository error: %v", ErrInternal, err)
		}
		if current.IsTerminal() {
			return ErrReservationTerminal
		}
		if current.HoldExpired(now) {
			return ErrHoldExpired
		}
		freedDate = current.Date

		targetDate, targetWindow, targetParty := targetState(current, req)

		result, err := s.evaluator.Evaluate(ctx, &availability.Request{
			UnitID:               current.UnitID,
			Date:                 targetDate,
			Window:               targetWindow,
			PartySize:            targetParty,
			ExcludeReservationID: &current.ID,
		})
		if err != nil {
			return fmt.Errorf("%w: Modify - availability check: %v", ErrInternal, err)
		}
		if !result.IsAvailable {
			return ErrSlotUnavailable
		}

		changes = diffChanges(current, req)

		if req.NewDate != nil {
			current.Date = *req.NewDate
		}
		if req.NewWindow != nil {
			current.Window = *req.NewWindow
		}
		if req.NewPartySize != nil {
			current.PartySize = *req.NewPartySize
			if err := s.repriceReservation(ctx, current); err != nil {
				return err
			}
		}

		current.Status = domain.StatusModified
		current.UpdatedAt = now
		if err := s.repo.Update(ctx, current); err != nil {
			return fmt.Errorf("%w: Modify - update failed: %v", ErrInternal, err)
		}

		entry := &domain.HistoryEntry{
			ID:            s.idGenerator.NewID(),
			ReservationID: current.ID,
			Action:        domain.ActionModified,
			Timestamp:     now,
			Actor:         req.Actor,
			Reason:        modificationReason(req.Reason, assessment.SurchargePercentage),
			Changes:       changes,
		}
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return fmt.Errorf("%w: Modify - history append failed: %v", ErrInternal, err)
		}

		reservation = current
		return nil
	})
	if err != nil {
		s.logger.Warn("Modify: reservation id=%s rejected: %v", req.ReservationID, err)
		return nil, err
	}

	s.invalidate(reservation.UnitID, freedDate)
	if !reservation.Date.Equal(freedDate) {
		s.invalidate(reservation.UnitID, reservation.Date)
	}

	s.logger.Info("Modify: reservation id=%s modified, %d field(s) changed, surcharge=%.1f%%",
		reservation.ID, len(changes), assessment.SurchargePercentage)
	return models.FromDomainReservation(reservation), nil
}

// ValidateCancellation dry-runs a cancellation against the organization's
// tier table and reports penalty and refund amounts.
func (s *Service) ValidateCancellation(ctx context.Context, reservationID string) (*models.CancellationAssessment, error) {
	reservation, err := s.loadReservation(ctx, "ValidateCancellation", reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.IsTerminal() {
		return &models.CancellationAssessment{Allowed: false, TierReason: "reservation is in a terminal state"}, nil
	}

	now := s.timeProvider.Now()
	if reservation.EventPassed(now) {
		return &models.CancellationAssessment{Allowed: false, TierReason: "event has already passed"}, nil
	}

	policy, err := s.cancellationPolicy(ctx, reservation.OrganizationID)
	if err != nil {
		return nil, err
	}

	hoursUntil := reservation.HoursUntilStart(now)
	tier := policy.ResolveTier(hoursUntil)
	penalty := reservation.TotalPrice * tier.PenaltyPercentage / 100

	return &models.CancellationAssessment{
		Allowed:           tier.AllowCancellation,
		PenaltyPercentage: tier.PenaltyPercentage,
		PenaltyAmount:     penalty,
		RefundAmount:      reservation.TotalPrice - penalty,
		RequiresPenalty:   tier.PenaltyPercentage > 0,
		HoursUntilEvent:   hoursUntil,
		TierReason:        tier.Reason,
	}, nil
}

// Cancel cancels a reservation. When the resolved tier carries a penalty the
// caller must have accepted it explicitly.
func (s *Service) Cancel(ctx context.Context, req *models.CancellationRequest) (*models.CancellationAssessment, error) {
	reservation, err := s.loadReservation(ctx, "Cancel", req.ReservationID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.ValidateCancellation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if !assessment.Allowed {
		if reservation.IsTerminal() {
			return nil, ErrReservationTerminal
		}
		if reservation.EventPassed(s.timeProvider.Now()) {
			return nil, ErrEventPassed
		}
		return nil, ErrCancellationNotAllowed
	}
	if assessment.RequiresPenalty && !req.AcceptPenalty {
		s.logger.Warn("Cancel: reservation id=%s requires penalty acceptance (%.1f%%)",
			req.ReservationID, assessment.PenaltyPercentage)
		return nil, ErrPenaltyNotAccepted
	}

	now := s.timeProvider.Now()
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, req.ReservationID, domain.StatusCancelled); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - update failed: %v", ErrInternal, err)
		}

		entry := &domain.HistoryEntry{
			ID:            s.idGenerator.NewID(),
			ReservationID: req.ReservationID,
			Action:        domain.ActionCancelled,
			Timestamp:     now,
			Actor:         req.Actor,
			Reason:        cancellationReason(req.Reason, assessment.PenaltyPercentage),
		}
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return fmt.Errorf("%w: Cancel - history append failed: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(reservation.UnitID, reservation.Date)

	s.logger.Info("Cancel: reservation id=%s cancelled, penalty=%.1f%%", req.ReservationID, assessment.PenaltyPercentage)
	return assessment, nil
}

// Reschedule moves a reservation by creating a linked replacement on the new
// slot. The original keeps its history and moves to RESCHEDULED, freeing its
// capacity.
func (s *Service) Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.ReservationResponse, error) {
	if err := req.NewWindow.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	var replacement *domain.Reservation
	var freedDate time.Time

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		original, err := s.repo.GetByID(ctx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}
		if original.IsTerminal() {
			return ErrReservationTerminal
		}
		if original.EventPassed(now) {
			return ErrEventPassed
		}
		freedDate = original.Date

		result, err := s.evaluator.Evaluate(ctx, &availability.Request{
			UnitID:               original.UnitID,
			Date:                 req.NewDate,
			Window:               req.NewWindow,
			PartySize:            original.PartySize,
			ExcludeReservationID: &original.ID,
		})
		if err != nil {
			return fmt.Errorf("%w: Reschedule - availability check: %v", ErrInternal, err)
		}
		if !result.IsAvailable {
			return ErrSlotUnavailable
		}

		next := *original
		next.ID = s.idGenerator.NewID()
		next.Date = req.NewDate
		next.Window = req.NewWindow
		next.Status = domain.StatusConfirmed
		next.History = nil
		next.OriginalReservationID = &original.ID
		next.RescheduledToReservationID = nil
		next.CreatedAt = now
		next.UpdatedAt = now

		created, err := s.repo.Create(ctx, &next)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - create failed: %v", ErrInternal, err)
		}

		original.Status = domain.StatusRescheduled
		original.RescheduledToReservationID = &created.ID
		original.UpdatedAt = now
		if err := s.repo.Update(ctx, original); err != nil {
			return fmt.Errorf("%w: Reschedule - update failed: %v", ErrInternal, err)
		}

		entries := []*domain.HistoryEntry{
			{
				ID:            s.idGenerator.NewID(),
				ReservationID: original.ID,
				Action:        domain.ActionModified,
				Timestamp:     now,
				Actor:         req.Actor,
				Reason:        req.Reason,
				Changes: []domain.FieldChange{{
					Field:         "status",
					PreviousValue: string(domain.StatusConfirmed),
					NewValue:      string(domain.StatusRescheduled),
					Description:   fmt.Sprintf("rescheduled to reservation %s", created.ID),
				}},
			},
			{
				ID:            s.idGenerator.NewID(),
				ReservationID: created.ID,
				Action:        domain.ActionCreated,
				Timestamp:     now,
				Actor:         req.Actor,
				Reason:        fmt.Sprintf("rescheduled from reservation %s", original.ID),
			},
		}
		for _, entry := range entries {
			if err := s.repo.AppendHistory(ctx, entry); err != nil {
				return fmt.Errorf("%w: Reschedule - history append failed: %v", ErrInternal, err)
			}
		}

		replacement = created
		return nil
	})
	if err != nil {
		s.logger.Warn("Reschedule: reservation id=%s rejected: %v", req.ReservationID, err)
		return nil, err
	}

	s.invalidate(replacement.UnitID, freedDate)
	if !req.NewDate.Equal(freedDate) {
		s.invalidate(replacement.UnitID, req.NewDate)
	}

	s.logger.Info("Reschedule: reservation id=%s moved to id=%s on %s %s",
		req.ReservationID, replacement.ID, req.NewDate.Format(domain.DateFormat), req.NewWindow)
	return models.FromDomainReservation(replacement), nil
}

// ExpireTemporaryHolds transitions every overdue temporary hold to EXPIRED
// and returns the number of holds released.
func (s *Service) ExpireTemporaryHolds(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	holds, err := s.repo.ListExpiredHolds(ctx, now)
	if err != nil {
		s.logger.Error("ExpireTemporaryHolds: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireTemporaryHolds - repository error: %v", ErrInternal, err)
	}
	if len(holds) == 0 {
		return 0, nil
	}

	expired := 0
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, hold := range holds {
			if err := s.repo.UpdateStatus(ctx, hold.ID, domain.StatusExpired); err != nil {
				return fmt.Errorf("%w: ExpireTemporaryHolds - update failed for id=%s: %v", ErrInternal, hold.ID, err)
			}
			entry := &domain.HistoryEntry{
				ID:            s.idGenerator.NewID(),
				ReservationID: hold.ID,
				Action:        domain.ActionExpired,
				Timestamp:     now,
				Actor:         "system",
				Reason:        "temporary hold expired",
			}
			if err := s.repo.AppendHistory(ctx, entry); err != nil {
				return fmt.Errorf("%w: ExpireTemporaryHolds - history append failed for id=%s: %v", ErrInternal, hold.ID, err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, hold := range holds {
		s.invalidate(hold.UnitID, hold.Date)
	}

	s.logger.Info("ExpireTemporaryHolds: released %d hold(s)", expired)
	return expired, nil
}

// Complete marks a past reservation as fulfilled.
func (s *Service) Complete(ctx context.Context, reservationID, actor string) error {
	return s.closeReservation(ctx, reservationID, actor, domain.StatusCompleted, domain.ActionCompleted)
}

// MarkNoShow marks a past reservation as not attended.
func (s *Service) MarkNoShow(ctx context.Context, reservationID, actor string) error {
	return s.closeReservation(ctx, reservationID, actor, domain.StatusNoShow, domain.ActionNoShow)
}

func (s *Service) closeReservation(ctx context.Context, reservationID, actor string, status domain.ReservationStatus, action domain.HistoryAction) error {
	reservation, err := s.loadReservation(ctx, "closeReservation", reservationID)
	if err != nil {
		return err
	}
	if reservation.IsTerminal() {
		return ErrReservationTerminal
	}

	now := s.timeProvider.Now()
	if !reservation.EventPassed(now) {
		return ErrEventNotPassed
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, reservationID, status); err != nil {
			return fmt.Errorf("%w: closeReservation - update failed: %v", ErrInternal, err)
		}
		entry := &domain.HistoryEntry{
			ID:            s.idGenerator.NewID(),
			ReservationID: reservationID,
			Action:        action,
			Timestamp:     now,
			Actor:         actor,
		}
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return fmt.Errorf("%w: closeReservation - history append failed: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(reservation.UnitID, reservation.Date)

	s.logger.Info("closeReservation: reservation id=%s moved to %s", reservationID, status)
	return nil
}

// Helpers

func (s *Service) invalidate(unitID string, date time.Time) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateUnitDate(unitID, date)
}

func (s *Service) loadReservation(ctx context.Context, op, id string) (*domain.Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) assessModification(ctx context.Context, req *models.ModificationRequest) (*models.ModificationAssessment, *domain.Reservation, error) {
	reservation, err := s.loadReservation(ctx, "assessModification", req.ReservationID)
	if err != nil {
		return nil, nil, err
	}

	assessment := &models.ModificationAssessment{Allowed: true}
	now := s.timeProvider.Now()
	hoursUntil := reservation.HoursUntilStart(now)
	assessment.HoursUntilEvent = hoursUntil

	if !req.HasChanges() {
		assessment.Allowed = false
		assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
			Code: "NO_CHANGES", Message: "modification contains no changes",
		})
		return assessment, reservation, nil
	}
	if reservation.IsTerminal() {
		assessment.Allowed = false
		assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
			Code: "TERMINAL_STATE", Message: fmt.Sprintf("reservation status %s rejects modification", reservation.Status),
		})
		return assessment, reservation, nil
	}
	if reservation.EventPassed(now) {
		assessment.Allowed = false
		assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
			Code: "EVENT_PASSED", Message: "reservation event has already passed",
		})
		return assessment, reservation, nil
	}
	if reservation.HoldExpired(now) {
		assessment.Allowed = false
		assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
			Code: "HOLD_EXPIRED", Message: "temporary hold has expired and awaits release",
		})
		return assessment, reservation, nil
	}
	if req.NewWindow != nil {
		if err := req.NewWindow.Validate(); err != nil {
			assessment.Allowed = false
			assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
				Code: "INVALID_WINDOW", Field: "newWindow", Message: err.Error(),
			})
			return assessment, reservation, nil
		}
	}
	if req.NewPartySize != nil {
		if *req.NewPartySize < domain.MinPartySize {
			assessment.Allowed = false
			assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
				Code: "INVALID_PARTY_SIZE", Field: "newPartySize",
				Message: fmt.Sprintf("partySize must be at least %d", domain.MinPartySize),
			})
			return assessment, reservation, nil
		}

		// The evaluator only accounts slot occupancy; the unit capacity bound
		// must be checked against the catalog here.
		unit, err := s.catalog.GetUnit(ctx, reservation.UnitID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrUnitNotFound) {
				return nil, nil, fmt.Errorf("%w: unit %s no longer exists", ErrInternal, reservation.UnitID)
			}
			return nil, nil, fmt.Errorf("%w: assessModification - catalog error: %v", ErrInternal, err)
		}
		if *req.NewPartySize > unit.Capacity {
			assessment.Allowed = false
			assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
				Code: "INVALID_PARTY_SIZE", Field: "newPartySize",
				Message: fmt.Sprintf("partySize %d exceeds unit capacity %d", *req.NewPartySize, unit.Capacity),
			})
			return assessment, reservation, nil
		}
	}

	targetDate, targetWindow, targetParty := targetState(reservation, req)
	result, err := s.evaluator.Evaluate(ctx, &availability.Request{
		UnitID:               reservation.UnitID,
		Date:                 targetDate,
		Window:               targetWindow,
		PartySize:            targetParty,
		ExcludeReservationID: &reservation.ID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: assessModification - availability check: %v", ErrInternal, err)
	}
	assessment.Availability = result
	if !result.IsAvailable {
		assessment.Allowed = false
		assessment.Issues = append(assessment.Issues, domain.ValidationIssue{
			Code: "SLOT_UNAVAILABLE", Message: result.BlockingDetail,
		})
	}

	policy, err := s.modificationPolicy(ctx, reservation.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	surcharge := policy.SurchargeFor(hoursUntil)
	assessment.SurchargePercentage = surcharge
	assessment.SurchargeAmount = reservation.TotalPrice * surcharge / 100
	if surcharge > 0 {
		assessment.Warnings = append(assessment.Warnings, domain.ValidationIssue{
			Code: "LATE_MODIFICATION",
			Message: fmt.Sprintf("modification within %dh of the event adds a %.0f%% surcharge",
				policy.LateThresholdHours, surcharge),
		})
	}

	return assessment, reservation, nil
}

func (s *Service) repriceReservation(ctx context.Context, reservation *domain.Reservation) error {
	unit, err := s.catalog.GetUnit(ctx, reservation.UnitID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnitNotFound) {
			return fmt.Errorf("%w: unit %s no longer exists", ErrInternal, reservation.UnitID)
		}
		return fmt.Errorf("%w: repriceReservation - catalog error: %v", ErrInternal, err)
	}
	reservation.UnitPrice = unit.Price
	reservation.TotalPrice = unit.PriceFor(reservation.PartySize)
	return nil
}

func (s *Service) cancellationPolicy(ctx context.Context, organizationID string) (domain.CancellationPolicy, error) {
	org, err := s.loadOrganization(ctx, organizationID)
	if err != nil {
		return domain.CancellationPolicy{}, err
	}
	return org.CancellationPolicy, nil
}

func (s *Service) modificationPolicy(ctx context.Context, organizationID string) (domain.ModificationPolicy, error) {
	org, err := s.loadOrganization(ctx, organizationID)
	if err != nil {
		return domain.ModificationPolicy{}, err
	}
	return org.ModificationPolicy, nil
}

func (s *Service) loadOrganization(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.catalog.GetOrganization(ctx, organizationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOrganizationNotFound) {
			s.logger.Warn("loadOrganization: organization id=%s not found", organizationID)
			return nil, ErrOrganizationNotFound
		}
		s.logger.Error("loadOrganization: catalog error for org=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: loadOrganization - catalog error: %v", ErrInternal, err)
	}
	return org, nil
}

func targetState(r *domain.Reservation, req *models.ModificationRequest) (time.Time, types.TimeWindow, int) {
	date := r.Date
	window := r.Window
	party := r.PartySize
	if req.NewDate != nil {
		date = *req.NewDate
	}
	if req.NewWindow != nil {
		window = *req.NewWindow
	}
	if req.NewPartySize != nil {
		party = *req.NewPartySize
	}
	return date, window, party
}

func diffChanges(r *domain.Reservation, req *models.ModificationRequest) []domain.FieldChange {
	var changes []domain.FieldChange
	if req.NewDate != nil && !req.NewDate.Equal(r.Date) {
		changes = append(changes, domain.FieldChange{
			Field:         "date",
			PreviousValue: r.Date.Format(domain.DateFormat),
			NewValue:      req.NewDate.Format(domain.DateFormat),
		})
	}
	if req.NewWindow != nil && !req.NewWindow.Equal(r.Window) {
		changes = append(changes, domain.FieldChange{
			Field:         "window",
			PreviousValue: r.Window.String(),
			NewValue:      req.NewWindow.String(),
		})
	}
	if req.NewPartySize != nil && *req.NewPartySize != r.PartySize {
		changes = append(changes, domain.FieldChange{
			Field:         "partySize",
			PreviousValue: strconv.Itoa(r.PartySize),
			NewValue:      strconv.Itoa(*req.NewPartySize),
		})
	}
	return changes
}

// modificationError maps a rejected assessment onto the package sentinel the
// caller can branch on.
func modificationError(assessment *models.ModificationAssessment) error {
	if len(assessment.Issues) == 0 {
		return ErrInvalidInput
	}
	switch assessment.Issues[0].Code {
	case "NO_CHANGES":
		return ErrNoChanges
	case "TERMINAL_STATE":
		return ErrReservationTerminal
	case "EVENT_PASSED":
		return ErrEventPassed
	case "HOLD_EXPIRED":
		return ErrHoldExpired
	case "SLOT_UNAVAILABLE":
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, assessment.Issues[0].Message)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInput, assessment.Issues[0].Message)
	}
}

func modificationReason(reason string, surcharge float64) string {
	if surcharge <= 0 {
		return reason
	}
	note := fmt.Sprintf("late modification surcharge %.0f%% applies", surcharge)
	if reason == "" {
		return note
	}
	return reason + "; " + note
}

func cancellationReason(reason string, penalty float64) string {
	if penalty <= 0 {
		return reason
	}
	note := fmt.Sprintf("cancellation penalty %.0f%% applies", penalty)
	if reason == "" {
		return note
	}
	return reason + "; " + note
}
