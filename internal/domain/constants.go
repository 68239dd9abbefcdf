package domain

// Slot generation defaults
const (
	DefaultHorizonDays        = 90 // глубина генерации слотов вперёд
	SlotDurationMinutes       = 60 // слоты генерируются с шагом в один час
	DefaultGroupCapacity      = 4
	DefaultIndividualCapacity = 1
)

// Operating window границы рабочего окна
// Окна правил обрезаются до этого диапазона при генерации слотов
const (
	MinOperatingHour = 8  // не раньше 08:00
	MaxOperatingHour = 22 // не позже 22:00
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список нетерминальных статусов запросов
// Используется при подсчёте занятости слота
var ActiveStatuses = []RequestStatus{
	StatusPending,
	StatusPendingUnavailable,
	StatusAccepted,
}

// TerminalStatuses список терминальных статусов запросов
// Переходы из этих статусов запрещены
var TerminalStatuses = []RequestStatus{
	StatusDeclined,
	StatusDeclinedConflict,
	StatusCancelled,
	StatusExpired,
}

// ExpirableStatuses статусы, из которых sweep переводит запрос в expired
var ExpirableStatuses = []RequestStatus{
	StatusPending,
	StatusPendingUnavailable,
}
