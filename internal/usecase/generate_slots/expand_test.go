package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/ptr"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringRule(t *testing.T, tutorID int64, weekdays []time.Weekday, from, to string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		TutorID:    tutorID,
		Kind:       domain.RuleKindRecurring,
		Weekdays:   weekdays,
		TimeFrom:   mustTime(t, from),
		TimeTo:     mustTime(t, to),
		LessonType: domain.LessonIndividual,
		Location:   domain.LocationOnSite,
		Modality:   domain.ModalityInPerson,
	}
}

func specificRule(t *testing.T, tutorID int64, ruleDate time.Time, from, to string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		TutorID:    tutorID,
		Kind:       domain.RuleKindSpecific,
		RuleDate:   ptr.Ptr(ruleDate),
		TimeFrom:   mustTime(t, from),
		TimeTo:     mustTime(t, to),
		LessonType: domain.LessonIndividual,
		Location:   domain.LocationOnSite,
		Modality:   domain.ModalityInPerson,
	}
}

func TestExpandRules_RecurringMondayWindow(t *testing.T) {
	// Понедельник 2026-09-07, горизонт 7 дней, окно 10:00-12:00
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "10:00", "12:00"),
	}

	slots, skipped := expandRules(rules, start, 7)

	require.Equal(t, 0, skipped)
	require.Len(t, slots, 2)
	assert.Equal(t, "10:00", slots[0].StartTime.String())
	assert.Equal(t, "11:00", slots[1].StartTime.String())
	for _, slot := range slots {
		assert.True(t, slot.Date.Equal(start))
		assert.Equal(t, domain.SlotDurationMinutes, slot.DurationMinutes)
		assert.Equal(t, domain.DefaultIndividualCapacity, slot.Capacity)
	}
}

func TestExpandRules_Deterministic(t *testing.T) {
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday, time.Wednesday}, "09:00", "13:00"),
		specificRule(t, 1, date(2026, time.September, 9), "15:00", "17:00"),
	}

	first, _ := expandRules(rules, start, 14)
	second, _ := expandRules(rules, start, 14)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key(), second[i].Key())
	}
}

func TestExpandRules_SpecificOverridesRecurring(t *testing.T) {
	// Правило specific на среду перекрывает recurring-окно целиком
	start := date(2026, time.September, 9) // среда
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Wednesday}, "09:00", "13:00"),
		specificRule(t, 1, start, "15:00", "16:00"),
	}

	slots, skipped := expandRules(rules, start, 1)

	require.Equal(t, 0, skipped)
	require.Len(t, slots, 1)
	assert.Equal(t, "15:00", slots[0].StartTime.String())
}

func TestExpandRules_MultipleRecurringAdditive(t *testing.T) {
	// Два recurring-правила на один день складываются
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "09:00", "10:00"),
		recurringRule(t, 1, []time.Weekday{time.Monday}, "14:00", "16:00"),
	}

	slots, _ := expandRules(rules, start, 1)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "14:00", slots[1].StartTime.String())
	assert.Equal(t, "15:00", slots[2].StartTime.String())
}

func TestExpandRules_OverlappingRulesDeduplicated(t *testing.T) {
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "09:00", "11:00"),
		recurringRule(t, 1, []time.Weekday{time.Monday}, "10:00", "12:00"),
	}

	slots, _ := expandRules(rules, start, 1)

	// 09, 10, 11 - пересечение в 10:00 схлопнуто
	require.Len(t, slots, 3)
	seen := make(map[domain.SlotKey]struct{})
	for _, slot := range slots {
		_, dup := seen[slot.Key()]
		assert.False(t, dup)
		seen[slot.Key()] = struct{}{}
	}
}

func TestExpandRules_ClampsToOperatingHours(t *testing.T) {
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "06:00", "09:00"),
	}

	slots, _ := expandRules(rules, start, 1)

	require.Len(t, slots, 1)
	assert.Equal(t, "08:00", slots[0].StartTime.String())
}

func TestExpandRules_ClampsEveningToMaxHour(t *testing.T) {
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "21:00", "23:30"),
	}

	slots, _ := expandRules(rules, start, 1)

	require.Len(t, slots, 1)
	assert.Equal(t, "21:00", slots[0].StartTime.String())
}

func TestExpandRules_InvertedWindowCollapsesToSingleSlot(t *testing.T) {
	// Конец не позже начала: окно трактуется как один часовой слот
	start := date(2026, time.September, 7)
	rules := []*domain.AvailabilityRule{
		recurringRule(t, 1, []time.Weekday{time.Monday}, "12:00", "12:00"),
	}

	slots, _ := expandRules(rules, start, 1)

	require.Len(t, slots, 1)
	assert.Equal(t, "12:00", slots[0].StartTime.String())
}

func TestExpandRules_MalformedRuleSkipped(t *testing.T) {
	start := date(2026, time.September, 7)
	malformed := recurringRule(t, 1, []time.Weekday{time.Monday}, "10:00", "12:00")
	malformed.TimeFrom = types.TimeString("not-a-time")

	rules := []*domain.AvailabilityRule{
		malformed,
		recurringRule(t, 1, []time.Weekday{time.Monday}, "14:00", "15:00"),
	}

	slots, skipped := expandRules(rules, start, 1)

	assert.Equal(t, 1, skipped)
	require.Len(t, slots, 1)
	assert.Equal(t, "14:00", slots[0].StartTime.String())
}

func TestExpandRules_ActiveBoundsRespected(t *testing.T) {
	start := date(2026, time.September, 7)
	rule := recurringRule(t, 1, []time.Weekday{time.Monday}, "10:00", "11:00")
	rule.ActiveUntil = ptr.Ptr(date(2026, time.September, 8))

	slots, _ := expandRules([]*domain.AvailabilityRule{rule}, start, 14)

	// Следующий понедельник (14-е) уже за пределами active_until
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Date.Equal(start))
}

func TestExpandRules_GroupCapacity(t *testing.T) {
	start := date(2026, time.September, 7)
	rule := recurringRule(t, 1, []time.Weekday{time.Monday}, "10:00", "11:00")
	rule.LessonType = domain.LessonGroup

	slots, _ := expandRules([]*domain.AvailabilityRule{rule}, start, 1)

	require.Len(t, slots, 1)
	assert.Equal(t, domain.DefaultGroupCapacity, slots[0].Capacity)
}
