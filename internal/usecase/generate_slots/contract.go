package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	GetByTutorID(ctx context.Context, tutorID int64) ([]*domain.AvailabilityRule, error)
	ListTutorIDs(ctx context.Context) ([]int64, error)
}

// SlotInventory интерфейс инвентаря слотов
type SlotInventory interface {
	ReplaceForTutor(ctx context.Context, tutorID int64, newSlots []*domain.TimeSlot, horizonStart time.Time, horizonDays int) (int, error)
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
