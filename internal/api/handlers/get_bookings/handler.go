package get_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TLS-ScheduleService/internal/service/bookings"
	"github.com/m04kA/TLS-ScheduleService/internal/service/bookings/models"
)

const (
	msgInvalidRole    = "некорректная роль, ожидается client или provider"
	msgInvalidID      = "некорректный параметр id"
	msgInvalidFilter  = "некорректные параметры фильтра"
	msgRequestMissing = "запрос на бронирование не найден"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /bookings?role={client|provider}&id={id}&status={status}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	role := query.Get("role")
	if role != models.RoleClient && role != models.RoleProvider {
		h.logger.Warn("GET /bookings - Invalid role: %q", role)
		handlers.RespondBadRequest(w, msgInvalidRole)
		return
	}

	id, err := strconv.ParseInt(query.Get("id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("GET /bookings - Invalid id: %q", query.Get("id"))
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	req := &models.ListRequest{
		Role: role,
		ID:   id,
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: role=%s, id=%d: %v", role, id, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: role=%s, id=%d, error=%v", role, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings: role=%s, id=%d", len(result.Items), role, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID GET /bookings/{bookingId}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	bookingID := handlers.PathParam(r, "bookingId")
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrRequestNotFound):
			h.logger.Warn("GET /bookings/{id} - Request not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgRequestMissing)
		default:
			h.logger.Error("GET /bookings/{id} - Failed to get request: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
