package slots

import (
	"context"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Upsert(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error)
	GetWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.TimeSlot, error)
	DeleteUnbookedForTutor(ctx context.Context, tutorID int64, from, to time.Time) (int64, error)
}

// RequestRepository интерфейс репозитория запросов на бронирование
// Нужен для вычисления занятости: слот её не хранит
type RequestRepository interface {
	CountActiveBySlot(ctx context.Context, key domain.SlotKey) (int, error)
	CountActiveBySlots(ctx context.Context, tutorID int64, date *time.Time) (map[string]int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
