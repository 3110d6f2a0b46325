package evaluate_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
	evaluateAvailability "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/evaluate_availability"
)

const (
	msgInvalidParams = "invalid query parameters: date (YYYY-MM-DD), start and end (HH:MM) are required"
	msgInvalidParty  = "partySize must be a positive integer"
	msgUnitNotFound  = "unit not found"
)

type Handler struct {
	useCase EvaluateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase EvaluateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/units/{unitId}/availability
// Query params: date, start, end, partySize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID := vars["unitId"]

	query := r.URL.Query()
	partySize := 1
	if raw := query.Get("partySize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.logger.Warn("GET /units/{id}/availability - Invalid party size: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParty)
			return
		}
		partySize = parsed
	}

	useCaseReq, err := ToUseCaseRequest(unitID, query.Get("date"), query.Get("start"), query.Get("end"), partySize)
	if err != nil {
		h.logger.Warn("GET /units/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, evaluateAvailability.ErrUnitNotFound),
			errors.Is(err, evaluateAvailability.ErrBundleNotFound),
			errors.Is(err, evaluateAvailability.ErrOrganizationNotFound):
			h.logger.Warn("GET /units/{id}/availability - Unit not found: unit_id=%s", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, evaluateAvailability.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/availability - Invalid input: unit_id=%s, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /units/{id}/availability - Failed to evaluate: unit_id=%s, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/availability - Evaluated: unit_id=%s, available=%t, cached=%t",
		unitID, result.Result.IsAvailable, result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
