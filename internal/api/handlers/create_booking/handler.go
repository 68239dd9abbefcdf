package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	createRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotFound       = "временной слот не найден"
	msgSlotInPast         = "временной слот уже прошёл"
	msgDuplicateRequest   = "активный запрос на этот слот уже существует"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createRequest.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: provider_id=%d, date=%s, time=%s",
				req.ProviderID, req.Date, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createRequest.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: provider_id=%d, date=%s, time=%s",
				req.ProviderID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotInPast)

		case errors.Is(err, createRequest.ErrDuplicateRequest):
			h.logger.Warn("POST /bookings - Duplicate request: client_id=%d, provider_id=%d", req.ClientID, req.ProviderID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRequest)

		case errors.Is(err, createRequest.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create request: client_id=%d, provider_id=%d, error=%v",
				req.ClientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Request created successfully: request_id=%s, status=%s, client_id=%d",
		result.ID, result.Status, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
