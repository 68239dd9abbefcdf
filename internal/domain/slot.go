package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// SlotKey логический ключ слота, стабильный при перегенерации
// Запросы на бронирование ссылаются на слот именно по этому ключу,
// поэтому перегенерация не рвёт связь между запросом и слотом
type SlotKey struct {
	TutorID   int64
	Date      time.Time
	StartTime types.TimeString
}

// TimeSlot represents a concrete bookable unit derived from availability rules
type TimeSlot struct {
	ID              int64
	TutorID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int

	LessonType LessonType
	Location   Location
	Modality   Modality
	Capacity   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key возвращает логический ключ слота
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{
		TutorID:   s.TutorID,
		Date:      s.Date,
		StartTime: s.StartTime,
	}
}

// IsPast returns true if the slot's start already passed relative to now
func (s *TimeSlot) IsPast(now time.Time) bool {
	slotDate := truncateToDate(s.Date)
	nowDate := truncateToDate(now)

	if slotDate.Before(nowDate) {
		return true
	}
	if slotDate.After(nowDate) {
		return false
	}

	// Сегодняшний слот: сравниваем время начала с текущим временем
	return s.StartTime.IsBefore(types.NewTimeString(now))
}

// IsIndividual returns true for capacity-1 slots
// Для индивидуальных слотов подтверждение одного запроса отклоняет всех конкурентов
func (s *TimeSlot) IsIndividual() bool {
	return s.Capacity <= 1
}

// AvailableSpots вычисляет число свободных мест по переданной занятости
// Занятость всегда считается по живым запросам, слот её не хранит
func (s *TimeSlot) AvailableSpots(occupancy int) int {
	spots := s.Capacity - occupancy
	if spots < 0 {
		return 0
	}
	return spots
}

// OccupancyKey строковый ключ занятости для логического ключа слота
// Используется при пакетном подсчёте занятости слотов
func OccupancyKey(key SlotKey) string {
	return fmt.Sprintf("%d %s %s", key.TutorID, key.Date.Format(DateFormat), key.StartTime)
}

// SlotsFilter фильтр для выборки слотов
type SlotsFilter struct {
	TutorID       *int64     // Фильтр по репетитору (опционально)
	Date          *time.Time // Фильтр по дате (опционально)
	AvailableOnly bool       // Только слоты со свободными местами и не в прошлом
}
