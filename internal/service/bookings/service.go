package bookings

import (
	"context"
	"errors"
	"fmt"

	requestRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/request"
	"github.com/m04kA/TLS-ScheduleService/internal/service/bookings/models"
)

// Service read-сторона запросов на бронирование
// Все переходы статусов выполняются usecase-ами, сервис только читает
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// GetByID получает запрос на бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: booking request id=%s not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequest(req), nil
}

// List получает запросы на бронирование по роли (client | provider)
// Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for role=%s id=%d status=%v", req.Role, req.ID, req.Status)

	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for role=%s id=%d: %v", req.Role, req.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.requestRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for role=%s id=%d: %v", req.Role, req.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for role=%s id=%d", len(requests), req.Role, req.ID)
	return models.FromDomainRequestList(requests), nil
}
