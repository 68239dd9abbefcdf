package resolve_request

import "errors"

var (
	// ErrRequestNotFound запрос с указанным ID не существует
	ErrRequestNotFound = errors.New("booking request not found")

	// ErrSlotNotFound слот запроса не существует
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrForbidden действие выполняет не тот участник
	ErrForbidden = errors.New("actor is not allowed to perform this action")

	// ErrInvalidTransition текущий статус запроса не допускает действие
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotFull подтверждение невозможно, все места уже заняты
	ErrSlotFull = errors.New("time slot has no free spots")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка при обработке запроса
	ErrInternal = errors.New("internal error")
)
