package resolve_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	resolveRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/resolve_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRequestNotFound    = "запрос на бронирование не найден"
	msgForbidden          = "действие недоступно этому участнику"
	msgInvalidTransition  = "текущий статус запроса не допускает это действие"
	msgSlotFull           = "все места в слоте уже заняты"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ResolveRequestUseCase
	logger  Logger
}

func NewHandler(useCase ResolveRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ResolveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, resolveRequest.ErrRequestNotFound),
			errors.Is(err, resolveRequest.ErrSlotNotFound):
			h.logger.Warn("PATCH /bookings - Request not found: id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, resolveRequest.ErrForbidden):
			h.logger.Warn("PATCH /bookings - Forbidden: id=%s, actor=%d, action=%s", req.BookingID, req.ActorID, req.Action)
			handlers.RespondError(w, http.StatusForbidden, msgForbidden)

		case errors.Is(err, resolveRequest.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings - Invalid transition: id=%s, action=%s: %v", req.BookingID, req.Action, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, resolveRequest.ErrSlotFull):
			h.logger.Warn("PATCH /bookings - Slot full: id=%s", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, resolveRequest.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings - Failed to resolve request: id=%s, action=%s, error=%v",
				req.BookingID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings - Request resolved: id=%s, status=%s, actor=%d", result.ID, result.Status, req.ActorID)
	handlers.RespondJSON(w, http.StatusOK, ResolveBookingResponse{Ok: true})
}
