package expire_sweep

import (
	"net/http"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
)

type Handler struct {
	useCase ExpireRequestsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireRequestsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// SweepResponse HTTP response model
type SweepResponse struct {
	Found     int `json:"found"`
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// Handle POST /internal/expire-sweep
// Авторизация проверяется в middleware.InternalAuth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/expire-sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/expire-sweep - Sweep done: found=%d, expired=%d, errors=%d",
		result.Found, result.Expired, result.Errors)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		Found:     result.Found,
		Processed: result.Expired,
		Errors:    result.Errors,
	})
}
