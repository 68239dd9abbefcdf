package create_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/slot"
)

// UseCase use case для создания запроса на бронирование слота
type UseCase struct {
	slotRepo     SlotRepository
	requestRepo  RequestRepository
	txManager    TxManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	requestRepo RequestRepository,
	txManager TxManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		requestRepo:  requestRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания запроса на бронирование
// Использует сериализуемую транзакцию для предотвращения гонки данных.
// Запрос на заполненный слот не отклоняется, а создаётся со статусом
// pending_unavailable - место может освободиться до подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRequest: tutor=%d, client=%d, date=%s, time=%s",
		req.TutorID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	key := domain.SlotKey{
		TutorID:   req.TutorID,
		Date:      req.Date,
		StartTime: req.StartTime,
	}

	var result *domain.BookingRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateRequest: slot not found: tutor=%d, date=%s, time=%s",
					req.TutorID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateRequest: failed to get slot: %v", err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 4. Слот в прошлом бронировать нельзя
		if slot.IsPast(now) {
			uc.logger.Warn("CreateRequest: slot is in the past: date=%s, time=%s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotInPast
		}

		// 5. Один клиент (с учётом ученика) - один активный запрос на слот
		duplicate, err := uc.requestRepo.HasActiveDuplicate(txCtx, key, req.ClientID, req.DependentID)
		if err != nil {
			uc.logger.Error("CreateRequest: failed to check duplicate: %v", err)
			return fmt.Errorf("%w: failed to check duplicate: %v", ErrInternal, err)
		}
		if duplicate {
			uc.logger.Warn("CreateRequest: duplicate active request: client=%d, tutor=%d, date=%s, time=%s",
				req.ClientID, req.TutorID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrDuplicateRequest
		}

		// 6. Занятость для статуса считается по подтверждённым запросам
		accepted, err := uc.requestRepo.CountBySlotAndStatus(txCtx, key, domain.StatusAccepted)
		if err != nil {
			uc.logger.Error("CreateRequest: failed to count accepted requests: %v", err)
			return fmt.Errorf("%w: failed to count accepted requests: %v", ErrInternal, err)
		}

		status := domain.StatusPending
		if accepted >= slot.Capacity {
			status = domain.StatusPendingUnavailable
			uc.logger.Info("CreateRequest: slot full, %d/%d spots taken, request queued as unavailable",
				accepted, slot.Capacity)
		}

		// 7. Создаем запрос
		request := &domain.BookingRequest{
			ID:          uuid.NewString(),
			TutorID:     req.TutorID,
			ClientID:    req.ClientID,
			DependentID: req.DependentID,
			SlotDate:    req.Date,
			StartTime:   req.StartTime,
			Status:      status,
		}

		created, err := uc.requestRepo.Create(txCtx, request)
		if err != nil {
			uc.logger.Error("CreateRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRequest: successfully created request id=%s, status=%s", result.ID, result.Status)

	// Уведомление репетитора о новом запросе, отправка best-effort
	uc.notifier.RequestCreated(result)

	return &Response{
		ID:     result.ID,
		Status: string(result.Status),
	}, nil
}
