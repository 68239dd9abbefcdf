package generate_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// UseCase генерация слотов из правил доступности
type UseCase struct {
	rules        RuleRepository
	inventory    SlotInventory
	timeProvider TimeProvider
	logger       Logger
	horizonDays  int
}

// NewUseCase создает новый экземпляр UseCase для генерации слотов
func NewUseCase(rules RuleRepository, inventory SlotInventory, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		rules:        rules,
		inventory:    inventory,
		timeProvider: timeProvider,
		logger:       logger,
		horizonDays:  domain.DefaultHorizonDays,
	}
}

// Execute генерирует слоты для одного репетитора или для всех сразу
// Перегенерация детерминирована: один и тот же набор правил даёт один и тот же
// набор слотов. Слоты с живыми бронированиями при перегенерации сохраняются
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	var tutorIDs []int64
	if req.TutorID != nil {
		tutorIDs = []int64{*req.TutorID}
	} else {
		ids, err := uc.rules.ListTutorIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: Execute - list tutor ids: %v", ErrInternal, err)
		}
		tutorIDs = ids
	}

	sort.Slice(tutorIDs, func(i, j int) bool { return tutorIDs[i] < tutorIDs[j] })

	resp := &Response{Tutors: make([]TutorResult, 0, len(tutorIDs))}
	for _, tutorID := range tutorIDs {
		result, err := uc.generateForTutor(ctx, tutorID)
		if err != nil {
			return nil, err
		}
		resp.Tutors = append(resp.Tutors, *result)
	}

	return resp, nil
}

// generateForTutor разворачивает правила одного репетитора и атомарно
// заменяет его незабронированные слоты на горизонте
func (uc *UseCase) generateForTutor(ctx context.Context, tutorID int64) (*TutorResult, error) {
	rules, err := uc.rules.GetByTutorID(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("%w: generateForTutor - get rules for tutor %d: %v", ErrInternal, tutorID, err)
	}

	// Старт горизонта усекается до даты: окно удаления сравнивается с DATE-колонкой,
	// и полуденный timestamp исключил бы сегодняшние слоты из замены
	now := uc.timeProvider.Now()
	horizonStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	slots, skipped := expandRules(rules, horizonStart, uc.horizonDays)
	if skipped > 0 {
		uc.logger.Warn("generate_slots: tutor %d has %d malformed rules, skipped", tutorID, skipped)
	}

	created, err := uc.inventory.ReplaceForTutor(ctx, tutorID, slots, horizonStart, uc.horizonDays)
	if err != nil {
		return nil, fmt.Errorf("%w: generateForTutor - replace slots for tutor %d: %v", ErrInternal, tutorID, err)
	}

	uc.logger.Info("generate_slots: tutor %d, slots created %d, rules skipped %d", tutorID, created, skipped)

	return &TutorResult{
		TutorID:      tutorID,
		SlotsCreated: created,
		RulesSkipped: skipped,
	}, nil
}
