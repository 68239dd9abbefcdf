package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	ruleRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/rule"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
)

// Service сервис управления правилами доступности репетиторов
type Service struct {
	ruleRepo RuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// Create создает правило доступности
// Само по себе правило слотов не порождает - слоты появляются при
// следующей генерации
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Rules.Create: validation failed: %v", err)
		return nil, err
	}

	rule := &domain.AvailabilityRule{
		TutorID:     req.TutorID,
		Kind:        req.Kind,
		Weekdays:    req.Weekdays,
		ActiveFrom:  req.ActiveFrom,
		ActiveUntil: req.ActiveUntil,
		RuleDate:    req.RuleDate,
		TimeFrom:    req.TimeFrom,
		TimeTo:      req.TimeTo,
		LessonType:  req.LessonType,
		Location:    req.Location,
		Modality:    req.Modality,
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Rules.Create: failed to create rule for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: Create - create rule: %v", ErrInternal, err)
	}

	s.logger.Info("Rules.Create: created rule id=%d for tutor=%d, kind=%s", created.ID, created.TutorID, created.Kind)
	return models.FromDomainRule(created), nil
}

// ListByTutor возвращает все правила репетитора
func (s *Service) ListByTutor(ctx context.Context, tutorID int64) ([]*models.RuleResponse, error) {
	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.GetByTutorID(ctx, tutorID)
	if err != nil {
		s.logger.Error("Rules.ListByTutor: failed to get rules for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: ListByTutor - get rules: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// Delete удаляет правило доступности
// Уже сгенерированные слоты остаются до следующей перегенерации
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Rules.Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Rules.Delete: failed to delete rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - delete rule: %v", ErrInternal, err)
	}

	s.logger.Info("Rules.Delete: deleted rule id=%d", id)
	return nil
}

// validateCreateRequest проверяет согласованность полей правила
func validateCreateRequest(req *models.CreateRuleRequest) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	switch req.Kind {
	case domain.RuleKindRecurring:
		if len(req.Weekdays) == 0 {
			return fmt.Errorf("%w: recurring rule requires weekdays", ErrInvalidInput)
		}
		if req.RuleDate != nil {
			return fmt.Errorf("%w: recurring rule cannot have a date", ErrInvalidInput)
		}
		if req.ActiveFrom != nil && req.ActiveUntil != nil && req.ActiveUntil.Before(*req.ActiveFrom) {
			return fmt.Errorf("%w: activeUntil must not be before activeFrom", ErrInvalidInput)
		}
	case domain.RuleKindSpecific:
		if req.RuleDate == nil {
			return fmt.Errorf("%w: specific rule requires a date", ErrInvalidInput)
		}
		if len(req.Weekdays) > 0 {
			return fmt.Errorf("%w: specific rule cannot have weekdays", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown rule kind %q", ErrInvalidInput, req.Kind)
	}

	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday must be in range 0-6", ErrInvalidInput)
		}
	}

	if err := req.TimeFrom.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeFrom: %v", ErrInvalidInput, err)
	}
	if err := req.TimeTo.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeTo: %v", ErrInvalidInput, err)
	}

	switch req.LessonType {
	case domain.LessonIndividual, domain.LessonGroup:
	default:
		return fmt.Errorf("%w: unknown lesson type %q", ErrInvalidInput, req.LessonType)
	}

	switch req.Location {
	case domain.LocationOnSite, domain.LocationTutorHome:
	default:
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.Location)
	}

	switch req.Modality {
	case domain.ModalityInPerson, domain.ModalityRemote, domain.ModalityEither:
	default:
		return fmt.Errorf("%w: unknown modality %q", ErrInvalidInput, req.Modality)
	}

	return nil
}
