package notifier

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/integrations/notifyservice"
)

// PublisherClient интерфейс клиента сервиса уведомлений
type PublisherClient interface {
	Publish(ctx context.Context, event *notifyservice.Event) error
}

// MetricsRecorder интерфейс для учёта неотправленных уведомлений
type MetricsRecorder interface {
	IncNotifyFailure(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
