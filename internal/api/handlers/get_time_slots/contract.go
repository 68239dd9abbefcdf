package get_time_slots

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/internal/service/slots/models"
)

type SlotInventory interface {
	Query(ctx context.Context, filter domain.SlotsFilter) ([]*models.SlotView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
