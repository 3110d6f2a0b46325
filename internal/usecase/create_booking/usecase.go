package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

// UseCase commits a package booking. The validation and the writes share one
// serializable transaction with row-locked reservation reads, so two
// concurrent requests for the last spot cannot both succeed.
type UseCase struct {
	validator    PackageValidator
	catalog      CatalogProvider
	reservations ReservationRepository
	cache        CacheInvalidator
	txManager    TransactionManager
	timeProvider TimeProvider
	idGenerator  IDGenerator
	logger       Logger
}

// NewUseCase creates the booking commit use case.
func NewUseCase(
	validator PackageValidator,
	catalog CatalogProvider,
	reservations ReservationRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	idGenerator IDGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		validator:    validator,
		catalog:      catalog,
		reservations: reservations,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		idGenerator:  idGenerator,
		logger:       logger,
	}
}

// WithTimeProvider swaps the clock. Used by tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute validates and persists the package booking. A rejected booking
// returns Committed=false with the aggregated issues and persists nothing.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: bundle=%s, units=%d, addons=%d, customer=%s",
		req.BundleID, len(req.Units), len(req.Addons), req.Customer.Email)

	now := uc.timeProvider.Now()
	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Dry-run inside the transaction: the capacity reads lock the
		// competing reservation rows until commit.
		verdict, err := uc.validator.Execute(txCtx, req.toValidation())
		if err != nil {
			switch {
			case errors.Is(err, validate_booking.ErrBundleNotFound):
				return ErrBundleNotFound
			case errors.Is(err, validate_booking.ErrOrganizationNotFound):
				return ErrOrganizationNotFound
			case errors.Is(err, validate_booking.ErrInvalidInput):
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			default:
				return fmt.Errorf("%w: validation failed: %v", ErrInternal, err)
			}
		}

		if !verdict.Result.IsValid {
			uc.logger.Warn("CreateBooking: bundle=%s rejected with %d error(s)",
				req.BundleID, len(verdict.Result.Errors))
			resp = &Response{Committed: false, Validation: verdict.Result}
			return nil
		}

		bundle, err := uc.catalog.GetBundle(txCtx, req.BundleID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBundleNotFound) {
				return ErrBundleNotFound
			}
			return fmt.Errorf("%w: failed to get bundle: %v", ErrInternal, err)
		}

		// Instant-book bundles confirm immediately; everything else is a
		// temporary hold awaiting approval.
		status := domain.StatusPending
		isTemporary := true
		var expiresAt *time.Time
		if bundle.InstantBook {
			status = domain.StatusConfirmed
			isTemporary = false
		} else {
			deadline := now.Add(domain.DefaultTemporaryHoldMinutes * time.Minute)
			expiresAt = &deadline
		}

		pkg := &domain.PackageReservation{
			ID:              uc.idGenerator.NewID(),
			BundleID:        bundle.ID,
			OrganizationID:  bundle.OrganizationID,
			Customer:        req.Customer,
			AddonSelections: verdict.AddonPricing,
			Status:          status,
			UnitsTotal:      verdict.UnitsTotal,
			AddonsTotal:     verdict.AddonsTotal,
			TotalPrice:      verdict.TotalPrice,
		}
		created, err := uc.reservations.CreatePackage(txCtx, pkg)
		if err != nil {
			return fmt.Errorf("%w: failed to create package reservation: %v", ErrInternal, err)
		}

		resp = &Response{
			Committed:       true,
			Validation:      verdict.Result,
			ID:              created.ID,
			BundleID:        created.BundleID,
			OrganizationID:  created.OrganizationID,
			Status:          string(created.Status),
			Customer:        created.Customer,
			AddonSelections: created.AddonSelections,
			UnitsTotal:      created.UnitsTotal,
			AddonsTotal:     created.AddonsTotal,
			TotalPrice:      created.TotalPrice,
			CreatedAt:       created.CreatedAt,
		}
		resp.HoldExpiresAt = expiresAt

		for i, outcome := range verdict.UnitOutcomes {
			unitReq := req.Units[i]

			reservation := &domain.Reservation{
				ID:                   uc.idGenerator.NewID(),
				UnitID:               outcome.UnitID,
				BundleID:             bundle.ID,
				OrganizationID:       bundle.OrganizationID,
				PackageReservationID: created.ID,
				Date:                 outcome.Date,
				Window:               outcome.Window,
				PartySize:            outcome.PartySize,
				IsGroupReservation:   unitReq.IsGroupReservation,
				Status:               status,
				IsTemporary:          isTemporary,
				UnitPrice:            outcome.UnitPrice,
				TotalPrice:           outcome.Price,
			}
			if unitReq.IsGroupReservation {
				reservation.GroupSize = outcome.PartySize
			}
			reservation.TemporaryExpiresAt = expiresAt

			stored, err := uc.reservations.Create(txCtx, reservation)
			if err != nil {
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}

			entry := &domain.HistoryEntry{
				ID:            uc.idGenerator.NewID(),
				ReservationID: stored.ID,
				Action:        domain.ActionCreated,
				Timestamp:     now,
				Actor:         req.Customer.Email,
				Reason:        fmt.Sprintf("package booking %s", created.ID),
			}
			if err := uc.reservations.AppendHistory(txCtx, entry); err != nil {
				return fmt.Errorf("%w: failed to append history: %v", ErrInternal, err)
			}

			resp.Reservations = append(resp.Reservations, *resModels.FromDomainReservation(stored))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Committed {
		// Drop memoized verdicts whose capacity this commit changed.
		for _, unitReq := range req.Units {
			uc.cache.InvalidateUnitDate(unitReq.UnitID, unitReq.Date)
		}
		uc.logger.Info("CreateBooking: committed package id=%s with %d reservation(s), total=%.2f",
			resp.ID, len(resp.Reservations), resp.TotalPrice)
	}

	return resp, nil
}
