package create_request

import "errors"

var (
	// ErrSlotNotFound слот с указанным ключом не существует
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrSlotInPast слот уже начался или прошёл
	ErrSlotInPast = errors.New("time slot is in the past")

	// ErrDuplicateRequest у клиента уже есть активный запрос на этот слот
	ErrDuplicateRequest = errors.New("active request for this slot already exists")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка при создании запроса
	ErrInternal = errors.New("internal error")
)
