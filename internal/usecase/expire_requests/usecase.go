package expire_requests

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// UseCase use case почасовой уборки просроченных запросов
type UseCase struct {
	requestRepo  RequestRepository
	notifier     Notifier
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики отключены
func NewUseCase(
	requestRepo RequestRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход уборки неподтверждённых запросов
// Граница - текущее время, усечённое до начала часа. Просрочиваются только
// ожидающие запросы на слоты, начинающиеся ровно на этой границе: запуск
// в 15:01 закрывает запросы на 15:00, слоты на 16:00 ещё живы.
// Повторный запуск в том же часе идемпотентен - просроченные запросы
// больше не попадают в выборку
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	boundary := now.Truncate(time.Hour)

	boundaryDate := time.Date(boundary.Year(), boundary.Month(), boundary.Day(), 0, 0, 0, 0, time.UTC)
	boundaryTime := types.NewTimeString(boundary)

	uc.logger.Info("ExpireRequests: sweep at boundary %s %s",
		boundaryDate.Format(domain.DateFormat), boundaryTime)

	expirable, err := uc.requestRepo.GetExpirable(ctx, boundaryDate, boundaryTime)
	if err != nil {
		uc.logger.Error("ExpireRequests: failed to get expirable requests: %v", err)
		return nil, fmt.Errorf("%w: failed to get expirable requests: %v", ErrInternal, err)
	}

	resp := &Response{Found: len(expirable)}

	// Ошибка по одному запросу не останавливает уборку остальных
	for _, request := range expirable {
		if err := uc.requestRepo.UpdateStatus(ctx, request.ID, domain.StatusExpired); err != nil {
			uc.logger.Error("ExpireRequests: failed to expire request id=%s: %v", request.ID, err)
			resp.Errors++
			continue
		}

		resp.Expired++

		expired := *request
		expired.Status = domain.StatusExpired
		uc.notifier.RequestExpired(&expired)
	}

	if uc.metrics != nil {
		uc.metrics.AddSweepResult("expired", resp.Expired)
		uc.metrics.AddSweepResult("error", resp.Errors)
	}

	uc.logger.Info("ExpireRequests: found=%d, expired=%d, errors=%d", resp.Found, resp.Expired, resp.Errors)
	return resp, nil
}
