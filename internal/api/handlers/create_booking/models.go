package create_booking

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	createRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/create_request"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID  int64  `json:"providerId"`
	ClientID    int64  `json:"clientId"`
	DependentID *int64 `json:"dependentId,omitempty"`
	Date        string `json:"date"` // "2026-09-15"
	StartTime   string `json:"time"` // "10:00"
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createRequest.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createRequest.Request{
		TutorID:     r.ProviderID,
		ClientID:    r.ClientID,
		DependentID: r.DependentID,
		Date:        date,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRequest.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:     resp.ID,
		Status: resp.Status,
	}
}
