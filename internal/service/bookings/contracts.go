package bookings

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// RequestRepository интерфейс репозитория запросов на бронирование
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
	GetWithFilter(ctx context.Context, filter domain.RequestsFilter) ([]*domain.BookingRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
