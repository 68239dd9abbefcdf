package resolve_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	requestRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/request"
	slotRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/slot"
)

// UseCase use case для подтверждения, отклонения и отмены запросов
type UseCase struct {
	slotRepo    SlotRepository
	requestRepo RequestRepository
	txManager   TxManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	requestRepo RequestRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		requestRepo: requestRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет действие над запросом на бронирование
// Все проверки и смена статуса идут в одной сериализуемой транзакции
// с блокировкой строки запроса - побеждает первый успевший участник
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveRequest: id=%s, action=%s, actor=%d", req.RequestID, req.Action, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveRequest: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем запрос с блокировкой (FOR UPDATE)
		request, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("ResolveRequest: request id=%s not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("ResolveRequest: failed to get request: %v", err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		switch req.Action {
		case ActionAccept:
			result, err = uc.accept(txCtx, request, req.ActorID)
		case ActionDecline:
			result, err = uc.decline(txCtx, request, req.ActorID)
		case ActionCancel:
			result, err = uc.cancel(txCtx, request, req.ActorID)
		default:
			err = fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
		}
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ResolveRequest: id=%s resolved to status=%s", result.ID, result.Status)
	return result, nil
}

// accept подтверждает запрос от имени репетитора
// На индивидуальном слоте подтверждение одного запроса автоматически
// отклоняет всех ожидающих конкурентов со статусом declined_conflict
func (uc *UseCase) accept(ctx context.Context, request *domain.BookingRequest, actorID int64) (*Response, error) {
	if actorID != request.TutorID {
		uc.logger.Warn("ResolveRequest: actor=%d is not the tutor of request id=%s", actorID, request.ID)
		return nil, ErrForbidden
	}

	if !request.CanBeAccepted() {
		uc.logger.Warn("ResolveRequest: request id=%s in status=%s cannot be accepted", request.ID, request.Status)
		return nil, fmt.Errorf("%w: cannot accept request in status %s", ErrInvalidTransition, request.Status)
	}

	key := request.SlotKey()

	// Слот блокируется (FOR UPDATE), чтобы занятость не менялась под ногами
	slot, err := uc.slotRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("ResolveRequest: slot for request id=%s not found", request.ID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("ResolveRequest: failed to get slot: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// Перепроверяем занятость в момент подтверждения
	accepted, err := uc.requestRepo.CountBySlotAndStatus(ctx, key, domain.StatusAccepted)
	if err != nil {
		uc.logger.Error("ResolveRequest: failed to count accepted requests: %v", err)
		return nil, fmt.Errorf("%w: failed to count accepted requests: %v", ErrInternal, err)
	}
	if accepted >= slot.Capacity {
		uc.logger.Warn("ResolveRequest: slot full at accept time, %d/%d spots taken", accepted, slot.Capacity)
		return nil, ErrSlotFull
	}

	if err := uc.requestRepo.UpdateStatus(ctx, request.ID, domain.StatusAccepted); err != nil {
		uc.logger.Error("ResolveRequest: failed to accept request id=%s: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to accept request: %v", ErrInternal, err)
	}

	var conflictsDeclined int64
	if slot.IsIndividual() {
		conflictsDeclined, err = uc.requestRepo.DeclineConflicts(ctx, key, request.ID)
		if err != nil {
			uc.logger.Error("ResolveRequest: failed to decline conflicts for request id=%s: %v", request.ID, err)
			return nil, fmt.Errorf("%w: failed to decline conflicts: %v", ErrInternal, err)
		}
		if conflictsDeclined > 0 {
			uc.logger.Info("ResolveRequest: declined %d competing requests for slot tutor=%d, date=%s, time=%s",
				conflictsDeclined, key.TutorID, key.Date.Format(domain.DateFormat), key.StartTime)
		}
	}

	return &Response{
		ID:                request.ID,
		Status:            string(domain.StatusAccepted),
		ConflictsDeclined: conflictsDeclined,
	}, nil
}

// decline отклоняет запрос от имени репетитора
func (uc *UseCase) decline(ctx context.Context, request *domain.BookingRequest, actorID int64) (*Response, error) {
	if actorID != request.TutorID {
		uc.logger.Warn("ResolveRequest: actor=%d is not the tutor of request id=%s", actorID, request.ID)
		return nil, ErrForbidden
	}

	if !request.CanBeDeclined() {
		uc.logger.Warn("ResolveRequest: request id=%s in status=%s cannot be declined", request.ID, request.Status)
		return nil, fmt.Errorf("%w: cannot decline request in status %s", ErrInvalidTransition, request.Status)
	}

	if err := uc.requestRepo.UpdateStatus(ctx, request.ID, domain.StatusDeclined); err != nil {
		uc.logger.Error("ResolveRequest: failed to decline request id=%s: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to decline request: %v", ErrInternal, err)
	}

	return &Response{
		ID:     request.ID,
		Status: string(domain.StatusDeclined),
	}, nil
}

// cancel отменяет запрос
// Отменить может клиент-владелец или репетитор слота. Отмена подтверждённого
// запроса освобождает место, но ожидающие конкуренты не продвигаются
// автоматически - репетитор подтверждает их отдельно
func (uc *UseCase) cancel(ctx context.Context, request *domain.BookingRequest, actorID int64) (*Response, error) {
	if actorID != request.ClientID && actorID != request.TutorID {
		uc.logger.Warn("ResolveRequest: actor=%d is neither client nor tutor of request id=%s", actorID, request.ID)
		return nil, ErrForbidden
	}

	if !request.CanBeCancelled() {
		uc.logger.Warn("ResolveRequest: request id=%s in status=%s cannot be cancelled", request.ID, request.Status)
		return nil, fmt.Errorf("%w: cannot cancel request in status %s", ErrInvalidTransition, request.Status)
	}

	if err := uc.requestRepo.Cancel(ctx, request.ID); err != nil {
		uc.logger.Error("ResolveRequest: failed to cancel request id=%s: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel request: %v", ErrInternal, err)
	}

	return &Response{
		ID:     request.ID,
		Status: string(domain.StatusCancelled),
	}, nil
}
