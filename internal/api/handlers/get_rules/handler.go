package get_rules

import (
	"net/http"
	"strconv"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
)

const (
	msgInvalidProviderID = "некорректный параметр providerId"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RuleListResponse HTTP response model
type RuleListResponse struct {
	Items []*models.RuleResponse `json:"items"`
}

// Handle GET /availability-rules?providerId={id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(r.URL.Query().Get("providerId"), 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /availability-rules - Invalid providerId: %q", r.URL.Query().Get("providerId"))
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.ListByTutor(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /availability-rules - Failed to list rules: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability-rules - Returned %d rules for provider_id=%d", len(result), providerID)
	handlers.RespondJSON(w, http.StatusOK, RuleListResponse{Items: result})
}
