package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	getAvailableSlots "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgInvalidParty = "partySize must be a positive integer"
	msgUnitNotFound = "unit not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/slots
// Query params: date, partySize (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID := vars["unitId"]

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /units/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	partySize := 0
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		partySize, err = strconv.Atoi(raw)
		if err != nil || partySize < 1 {
			h.logger.Warn("GET /units/{id}/slots - Invalid party size: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParty)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UnitID:    unitID,
		Date:      date,
		PartySize: partySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnitNotFound):
			h.logger.Warn("GET /units/{id}/slots - Unit not found: unit_id=%s", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/slots - Invalid input: unit_id=%s, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /units/{id}/slots - Failed to list slots: unit_id=%s, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/slots - Slots listed: unit_id=%s, date=%s, count=%d",
		unitID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
