package generate_slots

import "errors"

var (
	// ErrInternal внутренняя ошибка при генерации слотов
	ErrInternal = errors.New("internal error")
)
