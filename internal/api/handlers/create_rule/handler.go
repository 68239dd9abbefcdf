package create_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRule        = "некорректные параметры правила"
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

// Handle POST /availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /availability-rules - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("POST /availability-rules - Invalid rule: provider_id=%d: %v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)
		default:
			h.logger.Error("POST /availability-rules - Failed to create rule: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability-rules - Rule created: id=%d, provider_id=%d", result.ID, result.TutorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
