package modify_reservation

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
	msgInvalidChange      = "invalid modification: dates are YYYY-MM-DD, times HH:MM, both window times required"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "reservation not found"
	msgSlotUnavailable    = "the requested slot is not available"
	msgNotModifiable      = "reservation cannot be modified"
	msgNoChanges          = "no changes requested"
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

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ModifyReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(reservationID, actor)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChange)
		return
	}

	if req.ValidateOnly {
		assessment, err := h.service.ValidateModification(r.Context(), serviceReq)
		if err != nil {
			h.respondServiceError(w, reservationID, err)
			return
		}
		h.logger.Info("PATCH /reservations/{id} - Modification assessed: reservation_id=%s, allowed=%t",
			reservationID, assessment.Allowed)
		handlers.RespondJSON(w, http.StatusOK, assessment)
		return
	}

	result, err := h.service.Modify(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, reservationID, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation modified: reservation_id=%s, actor=%s",
		reservationID, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, reservationID string, err error) {
	switch {
	case errors.Is(err, reservations.ErrReservationNotFound):
		h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reservations.ErrSlotUnavailable):
		h.logger.Warn("PATCH /reservations/{id} - Slot unavailable: reservation_id=%s", reservationID)
		handlers.RespondConflict(w, msgSlotUnavailable)

	case errors.Is(err, reservations.ErrNoChanges):
		h.logger.Warn("PATCH /reservations/{id} - No changes: reservation_id=%s", reservationID)
		handlers.RespondBadRequest(w, msgNoChanges)

	case errors.Is(err, reservations.ErrReservationTerminal),
		errors.Is(err, reservations.ErrEventPassed),
		errors.Is(err, reservations.ErrHoldExpired),
		errors.Is(err, reservations.ErrInvalidInput):
		h.logger.Warn("PATCH /reservations/{id} - Not modifiable: reservation_id=%s, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgNotModifiable)

	default:
		h.logger.Error("PATCH /reservations/{id} - Failed to modify: reservation_id=%s, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
	}
}
