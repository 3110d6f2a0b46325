package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/middleware"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "reservation not found"
	msgCannotCancel       = "reservation cannot be cancelled"
	msgPenaltyNotAccepted = "cancellation carries a penalty; acceptPenalty must be true"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ValidateOnly {
		assessment, err := h.service.ValidateCancellation(r.Context(), reservationID)
		if err != nil {
			h.respondServiceError(w, reservationID, err)
			return
		}
		h.logger.Info("PATCH /reservations/{id}/cancel - Cancellation assessed: reservation_id=%s, allowed=%t, penalty=%.2f",
			reservationID, assessment.Allowed, assessment.PenaltyAmount)
		handlers.RespondJSON(w, http.StatusOK, assessment)
		return
	}

	assessment, err := h.service.Cancel(r.Context(), req.ToServiceRequest(reservationID, actor))
	if err != nil {
		h.respondServiceError(w, reservationID, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%s, actor=%s, refund=%.2f",
		reservationID, actor, assessment.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, assessment)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, reservationID string, err error) {
	switch {
	case errors.Is(err, reservations.ErrReservationNotFound):
		h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%s", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reservations.ErrPenaltyNotAccepted):
		h.logger.Warn("PATCH /reservations/{id}/cancel - Penalty not accepted: reservation_id=%s", reservationID)
		handlers.RespondConflict(w, msgPenaltyNotAccepted)

	case errors.Is(err, reservations.ErrReservationTerminal),
		errors.Is(err, reservations.ErrEventPassed),
		errors.Is(err, reservations.ErrCancellationNotAllowed):
		h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%s, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgCannotCancel)

	default:
		h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel: reservation_id=%s, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
	}
}
