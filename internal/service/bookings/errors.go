package bookings

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на бронирование не найден
	ErrRequestNotFound = errors.New("booking request not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
