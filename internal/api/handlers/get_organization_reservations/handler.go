package get_organization_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations"
)

const (
	msgInvalidParams = "invalid query parameters"
	msgNotFound      = "organization not found"
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

// Handle GET /api/v1/organizations/{organizationId}/reservations
// Query params: unitId, status, startDate, endDate, includeInactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	organizationID := vars["organizationId"]

	query := r.URL.Query()
	filter, err := ToFilter(
		organizationID,
		query.Get("unitId"),
		query.Get("status"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetOrganizationReservations(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/reservations - Organization not found: organization_id=%s",
				organizationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /organizations/{id}/reservations - Failed to list reservations: organization_id=%s, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/reservations - Reservations retrieved: organization_id=%s, count=%d",
		organizationID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
