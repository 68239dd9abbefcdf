package rules

import "errors"

var (
	// ErrRuleNotFound правило доступности не найдено
	ErrRuleNotFound = errors.New("availability rule not found")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка сервиса правил
	ErrInternal = errors.New("internal error")
)
