package models

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
)

// SlotView слот с вычисленной доступностью
type SlotView struct {
	TutorID         int64  `json:"providerId"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	LessonType      string `json:"lessonType"`
	Location        string `json:"location"`
	Modality        string `json:"modality"`
	Capacity        int    `json:"capacity"`
	AvailableSpots  int    `json:"availableSpots"`
	Available       bool   `json:"available"`
}

// FromDomainSlot конвертирует слот и его занятость в представление
// Слот доступен, если есть свободные места и его начало ещё не прошло
func FromDomainSlot(slot *domain.TimeSlot, occupancy int, now time.Time) *SlotView {
	availableSpots := slot.AvailableSpots(occupancy)
	return &SlotView{
		TutorID:         slot.TutorID,
		Date:            slot.Date.Format(domain.DateFormat),
		StartTime:       slot.StartTime.String(),
		DurationMinutes: slot.DurationMinutes,
		LessonType:      string(slot.LessonType),
		Location:        string(slot.Location),
		Modality:        string(slot.Modality),
		Capacity:        slot.Capacity,
		AvailableSpots:  availableSpots,
		Available:       availableSpots > 0 && !slot.IsPast(now),
	}
}
