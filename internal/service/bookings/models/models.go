package models

import (
	"errors"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking request status")

	// ErrInvalidRole возвращается при некорректной роли
	ErrInvalidRole = errors.New("invalid role")
)

// Роли списков бронирований
const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// ListRequest запрос на получение списка бронирований
type ListRequest struct {
	Role   string  // client | provider
	ID     int64   // ID клиента или репетитора в зависимости от роли
	Status *string // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует запрос в domain-фильтр
func (r *ListRequest) ToDomainFilter() (domain.RequestsFilter, error) {
	var filter domain.RequestsFilter

	switch r.Role {
	case RoleClient:
		filter.ClientID = &r.ID
	case RoleProvider:
		filter.TutorID = &r.ID
	default:
		return filter, ErrInvalidRole
	}

	if r.Status != nil {
		status, err := ToDomainRequestStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingResponse представление запроса на бронирование
type BookingResponse struct {
	ID            string  `json:"id"`
	TutorID       int64   `json:"providerId"`
	ClientID      int64   `json:"clientId"`
	DependentID   *int64  `json:"dependentId,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"time"`
	Status        string  `json:"status"`
	DeclineReason *string `json:"declineReason,omitempty"`
	CancelledAt   *string `json:"cancelledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// BookingListResponse список запросов на бронирование
type BookingListResponse struct {
	Items []*BookingResponse `json:"items"`
}

// FromDomainRequest конвертирует domain-запрос в представление
func FromDomainRequest(req *domain.BookingRequest) *BookingResponse {
	resp := &BookingResponse{
		ID:            req.ID,
		TutorID:       req.TutorID,
		ClientID:      req.ClientID,
		DependentID:   req.DependentID,
		Date:          req.SlotDate.Format(domain.DateFormat),
		StartTime:     req.StartTime.String(),
		Status:        string(req.Status),
		DeclineReason: req.DeclineReason,
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     req.UpdatedAt.Format(time.RFC3339),
	}

	if req.CancelledAt != nil {
		cancelled := req.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainRequestList конвертирует слайс domain-запросов в список
func FromDomainRequestList(requests []*domain.BookingRequest) *BookingListResponse {
	items := make([]*BookingResponse, len(requests))
	for i, req := range requests {
		items[i] = FromDomainRequest(req)
	}
	return &BookingListResponse{Items: items}
}

// ToDomainRequestStatus конвертирует строку в статус с валидацией
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s := domain.RequestStatus(status)
	switch s {
	case domain.StatusPending,
		domain.StatusPendingUnavailable,
		domain.StatusAccepted,
		domain.StatusDeclined,
		domain.StatusDeclinedConflict,
		domain.StatusCancelled,
		domain.StatusExpired:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
