package create_booking

import (
	"errors"
	"net/http"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	createBooking "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgBundleNotFound     = "bundle not found"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBundleNotFound),
			errors.Is(err, createBooking.ErrOrganizationNotFound):
			h.logger.Warn("POST /bookings - Bundle not found: bundle_id=%s", req.BundleID)
			handlers.RespondNotFound(w, msgBundleNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: bundle_id=%s, error=%v", req.BundleID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: bundle_id=%s, error=%v", req.BundleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Committed {
		h.logger.Warn("POST /bookings - Booking rejected: bundle_id=%s, errors=%d",
			req.BundleID, len(result.Validation.Errors))
		handlers.RespondJSON(w, http.StatusConflict, &RejectedBookingResponse{
			Committed: false,
			Errors:    result.Validation.Errors,
			Warnings:  result.Validation.Warnings,
		})
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: package_id=%s, bundle_id=%s, reservations=%d",
		result.ID, req.BundleID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
