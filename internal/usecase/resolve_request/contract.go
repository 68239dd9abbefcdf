package resolve_request

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error)
}

// RequestRepository интерфейс репозитория запросов на бронирование
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
	CountBySlotAndStatus(ctx context.Context, key domain.SlotKey, status domain.RequestStatus) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
	Cancel(ctx context.Context, id string) error
	DeclineConflicts(ctx context.Context, key domain.SlotKey, winnerID string) (int64, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
