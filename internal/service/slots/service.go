package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/internal/service/slots/models"
)

// Service инвентарь слотов
// Владеет экземплярами слотов, отвечает на запросы доступности и выполняет
// перегенерацию. Занятость всегда вычисляется по живым запросам на
// бронирование, поэтому расхождение счётчика с реальностью невозможно
type Service struct {
	slotRepo     SlotRepository
	requestRepo  RequestRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр инвентаря слотов
func NewService(
	slotRepo SlotRepository,
	requestRepo RequestRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		requestRepo:  requestRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Query возвращает слоты с вычисленной доступностью
// Read-only операция без побочных эффектов
func (s *Service) Query(ctx context.Context, filter domain.SlotsFilter) ([]*models.SlotView, error) {
	slots, err := s.slotRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Query: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: Query - repository error: %v", ErrInternal, err)
	}

	occupancies, err := s.occupancies(ctx, filter, slots)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	views := make([]*models.SlotView, 0, len(slots))

	for _, slot := range slots {
		occupancy := occupancies[domain.OccupancyKey(slot.Key())]
		view := models.FromDomainSlot(slot, occupancy, now)

		if filter.AvailableOnly && !view.Available {
			continue
		}

		views = append(views, view)
	}

	s.logger.Info("Query: returning %d slots (availableOnly=%v)", len(views), filter.AvailableOnly)
	return views, nil
}

// Occupancy возвращает занятость слота, вычисленную по нетерминальным запросам
func (s *Service) Occupancy(ctx context.Context, key domain.SlotKey) (int, error) {
	count, err := s.requestRepo.CountActiveBySlot(ctx, key)
	if err != nil {
		s.logger.Error("Occupancy: failed to count requests for tutor=%d date=%s time=%s: %v",
			key.TutorID, key.Date.Format(domain.DateFormat), key.StartTime, err)
		return 0, fmt.Errorf("%w: Occupancy - repository error: %v", ErrInternal, err)
	}
	return count, nil
}

// ReplaceForTutor заменяет сгенерированные слоты репетитора в горизонте
// Сначала удаляются прежние слоты без активных бронирований, затем
// upsert-ятся новые. Слоты с нетерминальными запросами переживают
// перегенерацию нетронутыми, даже если больше не соответствуют правилам
func (s *Service) ReplaceForTutor(
	ctx context.Context,
	tutorID int64,
	newSlots []*domain.TimeSlot,
	horizonStart time.Time,
	horizonDays int,
) (int, error) {
	if tutorID <= 0 {
		return 0, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}
	if horizonDays <= 0 {
		return 0, fmt.Errorf("%w: horizonDays must be positive", ErrInvalidInput)
	}

	horizonEnd := horizonStart.AddDate(0, 0, horizonDays-1)
	upserted := 0

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := s.slotRepo.DeleteUnbookedForTutor(txCtx, tutorID, horizonStart, horizonEnd)
		if err != nil {
			return fmt.Errorf("%w: ReplaceForTutor - delete unbooked slots: %v", ErrInternal, err)
		}

		for _, slot := range newSlots {
			if _, err := s.slotRepo.Upsert(txCtx, slot); err != nil {
				return fmt.Errorf("%w: ReplaceForTutor - upsert slot %s %s: %v",
					ErrInternal, slot.Date.Format(domain.DateFormat), slot.StartTime, err)
			}
			upserted++
		}

		s.logger.Info("ReplaceForTutor: tutor=%d deleted=%d upserted=%d horizon=[%s, %s]",
			tutorID, deleted, upserted,
			horizonStart.Format(domain.DateFormat), horizonEnd.Format(domain.DateFormat))
		return nil
	})

	if err != nil {
		return 0, err
	}

	return upserted, nil
}

// occupancies вычисляет занятость для набора слотов
// Если фильтр ограничен одним репетитором, хватает одной групповой выборки;
// иначе считаем по слоту за раз
func (s *Service) occupancies(ctx context.Context, filter domain.SlotsFilter, slots []*domain.TimeSlot) (map[string]int, error) {
	if len(slots) == 0 {
		return map[string]int{}, nil
	}

	if filter.TutorID != nil {
		counts, err := s.requestRepo.CountActiveBySlots(ctx, *filter.TutorID, filter.Date)
		if err != nil {
			s.logger.Error("occupancies: failed to count requests for tutor=%d: %v", *filter.TutorID, err)
			return nil, fmt.Errorf("%w: occupancies - repository error: %v", ErrInternal, err)
		}
		return counts, nil
	}

	counts := make(map[string]int, len(slots))
	for _, slot := range slots {
		count, err := s.requestRepo.CountActiveBySlot(ctx, slot.Key())
		if err != nil {
			s.logger.Error("occupancies: failed to count requests for tutor=%d date=%s time=%s: %v",
				slot.TutorID, slot.Date.Format(domain.DateFormat), slot.StartTime, err)
			return nil, fmt.Errorf("%w: occupancies - repository error: %v", ErrInternal, err)
		}
		counts[domain.OccupancyKey(slot.Key())] = count
	}

	return counts, nil
}
