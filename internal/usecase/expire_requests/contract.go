package expire_requests

import (
	"context"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// RequestRepository интерфейс репозитория запросов на бронирование
type RequestRepository interface {
	GetExpirable(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.BookingRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error
}

// Notifier интерфейс отправки уведомлений о событиях бронирования
type Notifier interface {
	RequestExpired(req *domain.BookingRequest)
}

// MetricsRecorder интерфейс для учёта результатов уборки
type MetricsRecorder interface {
	AddSweepResult(result string, n int)
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
