package regenerate_slots

import (
	"io"
	"net/http"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	generateSlots "github.com/m04kA/TLS-ScheduleService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidProviderID  = "некорректный параметр providerId"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegenerateRequest HTTP request model
// Пустое тело или тело без providerId запускает генерацию для всех репетиторов
type RegenerateRequest struct {
	ProviderID *int64 `json:"providerId,omitempty"`
}

// Handle POST /time-slots/regenerate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && err != io.EOF {
		h.logger.Warn("POST /time-slots/regenerate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ProviderID != nil && *req.ProviderID <= 0 {
		h.logger.Warn("POST /time-slots/regenerate - Invalid providerId: %d", *req.ProviderID)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), generateSlots.Request{TutorID: req.ProviderID})
	if err != nil {
		h.logger.Error("POST /time-slots/regenerate - Failed to regenerate slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /time-slots/regenerate - Regenerated slots for %d providers", len(result.Tutors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
