package notifier

import (
	"context"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/internal/integrations/notifyservice"
)

// dispatchTimeout таймаут на отправку одного события
const dispatchTimeout = 5 * time.Second

// Service асинхронный диспетчер событий жизненного цикла бронирований
// Эмиссия события выполняется после фиксации перехода статуса и отвязана
// от запроса: отказ сервиса уведомлений виден в логах и метриках, но
// структурно не может откатить уже совершённый переход
type Service struct {
	client  PublisherClient
	metrics MetricsRecorder
	logger  Logger
}

// NewService создает новый экземпляр диспетчера уведомлений
// metrics может быть nil, если сбор метрик выключен
func NewService(client PublisherClient, metrics MetricsRecorder, logger Logger) *Service {
	return &Service{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// RequestCreated уведомляет репетитора о новом запросе на бронирование
func (s *Service) RequestCreated(req *domain.BookingRequest) {
	s.dispatch(&notifyservice.Event{
		Type:      notifyservice.EventRequestCreated,
		Audience:  notifyservice.AudienceTutor,
		TutorID:   req.TutorID,
		ClientID:  req.ClientID,
		RequestID: req.ID,
		SlotDate:  req.SlotDate.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
	})
}

// RequestExpired уведомляет репетитора и оператора об истёкшем запросе
func (s *Service) RequestExpired(req *domain.BookingRequest) {
	for _, audience := range []notifyservice.Audience{
		notifyservice.AudienceTutor,
		notifyservice.AudienceOperator,
	} {
		s.dispatch(&notifyservice.Event{
			Type:      notifyservice.EventRequestExpired,
			Audience:  audience,
			TutorID:   req.TutorID,
			ClientID:  req.ClientID,
			RequestID: req.ID,
			SlotDate:  req.SlotDate.Format(domain.DateFormat),
			StartTime: req.StartTime.String(),
		})
	}
}

// dispatch отправляет событие в отдельной горутине со своим таймаутом
// Контекст исходного запроса не используется: к моменту отправки он
// может быть уже отменён
func (s *Service) dispatch(event *notifyservice.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.client.Publish(ctx, event); err != nil {
			s.logger.Error("notifier: failed to publish %s for request=%s: %v", event.Type, event.RequestID, err)
			if s.metrics != nil {
				s.metrics.IncNotifyFailure(string(event.Type))
			}
		}
	}()
}
