package domain

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// RuleKind вид правила доступности
type RuleKind string

const (
	RuleKindRecurring RuleKind = "recurring" // повторяется по дням недели
	RuleKindSpecific  RuleKind = "specific"  // одна конкретная дата
)

// LessonType тип занятия
type LessonType string

const (
	LessonIndividual LessonType = "individual"
	LessonGroup      LessonType = "group"
)

// Location место проведения занятия
type Location string

const (
	LocationOnSite    Location = "onsite"     // на площадке
	LocationTutorHome Location = "tutor_home" // у репетитора
)

// Modality формат проведения занятия
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityRemote   Modality = "remote"
	ModalityEither   Modality = "either"
)

// AvailabilityRule declares when a tutor is offerable
// Правило типа specific для даты полностью перекрывает recurring-правила
// на эту дату (override, не объединение). Несколько recurring-правил на один
// день недели складываются
type AvailabilityRule struct {
	ID      int64
	TutorID int64
	Kind    RuleKind

	// Для recurring: набор дней недели и опциональные границы действия
	Weekdays    []time.Weekday
	ActiveFrom  *time.Time
	ActiveUntil *time.Time

	// Для specific: единственная дата
	RuleDate *time.Time

	// Окно времени суток
	TimeFrom types.TimeString
	TimeTo   types.TimeString

	// Атрибуты, наследуемые генерируемыми слотами
	LessonType LessonType
	Location   Location
	Modality   Modality

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurring returns true for weekday-based rules
func (r *AvailabilityRule) IsRecurring() bool {
	return r.Kind == RuleKindRecurring
}

// IsSpecific returns true for single-date rules
func (r *AvailabilityRule) IsSpecific() bool {
	return r.Kind == RuleKindSpecific
}

// AppliesTo проверяет, действует ли recurring-правило в указанную дату
// Учитывает набор дней недели и границы active_from/active_until
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if !r.IsRecurring() {
		return false
	}

	matched := false
	for _, wd := range r.Weekdays {
		if wd == date.Weekday() {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	dateOnly := truncateToDate(date)
	if r.ActiveFrom != nil && dateOnly.Before(truncateToDate(*r.ActiveFrom)) {
		return false
	}
	if r.ActiveUntil != nil && dateOnly.After(truncateToDate(*r.ActiveUntil)) {
		return false
	}

	return true
}

// MatchesDate проверяет, что specific-правило задано ровно на указанную дату
func (r *AvailabilityRule) MatchesDate(date time.Time) bool {
	if !r.IsSpecific() || r.RuleDate == nil {
		return false
	}
	return truncateToDate(*r.RuleDate).Equal(truncateToDate(date))
}

// truncateToDate обнуляет время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
