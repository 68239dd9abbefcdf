package get_bookings

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/service/bookings/models"
)

type BookingsService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error)
	GetByID(ctx context.Context, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
