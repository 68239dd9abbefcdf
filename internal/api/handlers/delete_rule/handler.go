package delete_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules"
)

const (
	msgInvalidRuleID = "некорректный идентификатор правила"
	msgRuleNotFound  = "правило доступности не найдено"
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

// Handle DELETE /availability-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(handlers.PathParam(r, "ruleId"), 10, 64)
	if err != nil || ruleID <= 0 {
		h.logger.Warn("DELETE /availability-rules/{ruleId} - Invalid ruleId: %q", handlers.PathParam(r, "ruleId"))
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID); err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("DELETE /availability-rules/{ruleId} - Rule not found: id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)
		default:
			h.logger.Error("DELETE /availability-rules/{ruleId} - Failed to delete rule: id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability-rules/{ruleId} - Rule deleted: id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
