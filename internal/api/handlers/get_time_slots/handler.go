package get_time_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/internal/service/slots/models"
)

const (
	msgInvalidProviderID = "некорректный параметр providerId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidAvailable  = "некорректный параметр available, ожидается true или false"
)

type Handler struct {
	inventory SlotInventory
	logger    Logger
}

func NewHandler(inventory SlotInventory, logger Logger) *Handler {
	return &Handler{
		inventory: inventory,
		logger:    logger,
	}
}

// SlotListResponse HTTP response model
type SlotListResponse struct {
	TimeSlots []*models.SlotView `json:"timeSlots"`
}

// Handle GET /time-slots?providerId={id}&date={date}&available={bool}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter domain.SlotsFilter

	if raw := query.Get("providerId"); raw != "" {
		providerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || providerID <= 0 {
			h.logger.Warn("GET /time-slots - Invalid providerId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidProviderID)
			return
		}
		filter.TutorID = &providerID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /time-slots - Invalid date: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.Date = &date
	}

	if raw := query.Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /time-slots - Invalid available flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidAvailable)
			return
		}
		filter.AvailableOnly = available
	}

	slots, err := h.inventory.Query(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /time-slots - Failed to query slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /time-slots - Returned %d slots", len(slots))
	handlers.RespondJSON(w, http.StatusOK, SlotListResponse{TimeSlots: slots})
}
