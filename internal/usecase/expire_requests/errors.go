package expire_requests

import "errors"

var (
	// ErrInternal внутренняя ошибка при уборке просроченных запросов
	ErrInternal = errors.New("internal error")
)
