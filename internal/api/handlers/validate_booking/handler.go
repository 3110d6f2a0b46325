package validate_booking

import (
	"errors"
	"net/http"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	validateBooking "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgBundleNotFound     = "bundle not found"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrBundleNotFound),
			errors.Is(err, validateBooking.ErrOrganizationNotFound):
			h.logger.Warn("POST /bookings/validate - Bundle not found: bundle_id=%s", req.BundleID)
			handlers.RespondNotFound(w, msgBundleNotFound)

		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/validate - Invalid input: bundle_id=%s, error=%v", req.BundleID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/validate - Failed to validate: bundle_id=%s, error=%v", req.BundleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/validate - Validated: bundle_id=%s, valid=%t, errors=%d",
		req.BundleID, result.Result.IsValid, len(result.Result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
