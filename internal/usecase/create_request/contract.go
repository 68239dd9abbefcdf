package create_request

import (
	"context"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error)
}

// RequestRepository интерфейс репозитория запросов на бронирование
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	CountBySlotAndStatus(ctx context.Context, key domain.SlotKey, status domain.RequestStatus) (int, error)
	HasActiveDuplicate(ctx context.Context, key domain.SlotKey, clientID int64, dependentID *int64) (bool, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений о событиях бронирования
type Notifier interface {
	RequestCreated(req *domain.BookingRequest)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
