package domain

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// RequestStatus represents the status of a booking request
type RequestStatus string

const (
	StatusPending            RequestStatus = "pending"
	StatusPendingUnavailable RequestStatus = "pending_unavailable"
	StatusAccepted           RequestStatus = "accepted"
	StatusDeclined           RequestStatus = "declined"
	StatusDeclinedConflict   RequestStatus = "declined_conflict"
	StatusCancelled          RequestStatus = "cancelled"
	StatusExpired            RequestStatus = "expired"
)

// BookingRequest represents a client's claim on exactly one time slot
// Запросы никогда не удаляются, только переводятся между статусами - история
// бронирований сохраняется полностью
type BookingRequest struct {
	ID          string // UUID, генерируется при создании
	TutorID     int64
	ClientID    int64
	DependentID *int64 // ID ученика, если бронирование от имени ребёнка
	SlotDate    time.Time
	StartTime   types.TimeString
	Status      RequestStatus

	DeclineReason *string
	CancelledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the request is in a non-terminal state
// Активные запросы занимают место в слоте при подсчёте occupancy
func (r *BookingRequest) IsActive() bool {
	return r.Status == StatusPending ||
		r.Status == StatusPendingUnavailable ||
		r.Status == StatusAccepted
}

// IsTerminal returns true if the request reached a final state
// Терминальные статусы неизменяемы
func (r *BookingRequest) IsTerminal() bool {
	return !r.IsActive()
}

// CanBeAccepted returns true if the tutor may accept the request
// pending_unavailable подтвердить нельзя, пока слот остаётся заполненным
func (r *BookingRequest) CanBeAccepted() bool {
	return r.Status == StatusPending
}

// CanBeDeclined returns true if the tutor may decline the request
func (r *BookingRequest) CanBeDeclined() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the request can be cancelled
func (r *BookingRequest) CanBeCancelled() bool {
	return r.Status == StatusPending ||
		r.Status == StatusPendingUnavailable ||
		r.Status == StatusAccepted
}

// CanBeExpired returns true if the sweep may expire the request
func (r *BookingRequest) CanBeExpired() bool {
	return r.Status == StatusPending || r.Status == StatusPendingUnavailable
}

// SlotKey возвращает ключ слота, на который указывает запрос
func (r *BookingRequest) SlotKey() SlotKey {
	return SlotKey{
		TutorID:   r.TutorID,
		Date:      r.SlotDate,
		StartTime: r.StartTime,
	}
}

// RequestsFilter фильтр для выборки запросов на бронирование
type RequestsFilter struct {
	TutorID    *int64            // Фильтр по репетитору (опционально)
	ClientID   *int64            // Фильтр по клиенту (опционально)
	Status     *RequestStatus    // Фильтр по статусу (опционально)
	SlotDate   *time.Time        // Фильтр по дате слота (опционально)
	StartTime  *types.TimeString // Фильтр по времени слота (опционально)
	ActiveOnly bool              // Только нетерминальные запросы
}
