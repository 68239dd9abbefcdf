package notifyservice

// Audience получатель уведомления
type Audience string

const (
	AudienceTutor    Audience = "tutor"
	AudienceClient   Audience = "client"
	AudienceOperator Audience = "operator"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventRequestCreated EventType = "booking_request.created"
	EventRequestExpired EventType = "booking_request.expired"
)

// Event событие, отправляемое в сервис уведомлений
// Сервис уведомлений сам решает, каким транспортом доставлять (email/SMS/push) -
// этот сервис отвечает только за эмиссию события
type Event struct {
	Type      EventType `json:"type"`
	Audience  Audience  `json:"audience"`
	TutorID   int64     `json:"tutorId"`
	ClientID  int64     `json:"clientId"`
	RequestID string    `json:"requestId"`
	SlotDate  string    `json:"slotDate"`  // YYYY-MM-DD
	StartTime string    `json:"startTime"` // HH:MM
}
