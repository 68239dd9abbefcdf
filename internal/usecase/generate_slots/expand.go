package generate_slots

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// expandRules разворачивает правила доступности репетитора в набор слотов
// на горизонте [start, start+horizonDays). Возвращает слоты и число правил,
// пропущенных из-за некорректного окна времени.
//
// Specific-правило на дату полностью перекрывает все recurring-правила на эту
// дату. Несколько правил одного вида на один день складываются, пересечения
// схлопываются по ключу слота (побеждает правило, пришедшее раньше по id).
func expandRules(rules []*domain.AvailabilityRule, start time.Time, horizonDays int) ([]*domain.TimeSlot, int) {
	skipped := 0
	valid := make([]*domain.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		if rule.TimeFrom.Validate() != nil || rule.TimeTo.Validate() != nil {
			skipped++
			continue
		}
		valid = append(valid, rule)
	}

	var slots []*domain.TimeSlot
	seen := make(map[domain.SlotKey]struct{})

	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for day := 0; day < horizonDays; day++ {
		date := startDate.AddDate(0, 0, day)

		dayRules := rulesForDate(valid, date)
		for _, rule := range dayRules {
			for _, slot := range expandRule(rule, date) {
				key := slot.Key()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				slots = append(slots, slot)
			}
		}
	}

	return slots, skipped
}

// rulesForDate отбирает правила, действующие на дату
// Наличие хотя бы одного specific-правила исключает recurring-правила
func rulesForDate(rules []*domain.AvailabilityRule, date time.Time) []*domain.AvailabilityRule {
	var specific []*domain.AvailabilityRule
	var recurring []*domain.AvailabilityRule

	for _, rule := range rules {
		if rule.MatchesDate(date) {
			specific = append(specific, rule)
			continue
		}
		if rule.AppliesTo(date) {
			recurring = append(recurring, rule)
		}
	}

	if len(specific) > 0 {
		return specific
	}
	return recurring
}

// expandRule нарезает окно правила на часовые слоты для одной даты
// Окно прижимается к рабочим часам, конец окна не позже начала трактуется
// как один часовой слот
func expandRule(rule *domain.AvailabilityRule, date time.Time) []*domain.TimeSlot {
	from, to := clampWindow(rule.TimeFrom, rule.TimeTo)

	capacity := domain.DefaultIndividualCapacity
	if rule.LessonType == domain.LessonGroup {
		capacity = domain.DefaultGroupCapacity
	}

	var slots []*domain.TimeSlot
	cursor := from
	for cursor.IsBefore(to) {
		next, err := cursor.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// Окно упёрлось в полночь, последний неполный час не нарезаем
			break
		}
		if next.IsAfter(to) {
			break
		}

		slots = append(slots, &domain.TimeSlot{
			TutorID:         rule.TutorID,
			Date:            date,
			StartTime:       cursor,
			DurationMinutes: domain.SlotDurationMinutes,
			LessonType:      rule.LessonType,
			Location:        rule.Location,
			Modality:        rule.Modality,
			Capacity:        capacity,
		})

		cursor = next
	}

	return slots
}

// clampWindow прижимает окно правила к рабочим часам 08:00-22:00
// Если после прижатия конец не позже начала, окно схлопывается
// в один часовой слот от начала
func clampWindow(from, to types.TimeString) (types.TimeString, types.TimeString) {
	minTime := hourToTimeString(domain.MinOperatingHour)
	maxTime := hourToTimeString(domain.MaxOperatingHour)

	if from.IsBefore(minTime) {
		from = minTime
	}
	if to.IsAfter(maxTime) {
		to = maxTime
	}

	if !from.IsBefore(to) {
		if next, err := from.AddMinutes(domain.SlotDurationMinutes); err == nil {
			to = next
		} else {
			to = from
		}
	}

	return from, to
}

// hourToTimeString собирает TimeString для целого часа
func hourToTimeString(hour int) types.TimeString {
	return types.NewTimeString(time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC))
}
