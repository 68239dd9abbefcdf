package resolve_booking

import (
	resolveRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/resolve_request"
)

// ResolveBookingRequest HTTP request model
type ResolveBookingRequest struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"` // accept | decline | cancel
	ActorID   int64  `json:"actorId"`
}

// ResolveBookingResponse HTTP response model
type ResolveBookingResponse struct {
	Ok bool `json:"ok"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveBookingRequest) ToUseCaseRequest() *resolveRequest.Request {
	return &resolveRequest.Request{
		RequestID: r.BookingID,
		Action:    resolveRequest.Action(r.Action),
		ActorID:   r.ActorID,
	}
}
