package resolve_request

// Action действие над запросом на бронирование
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
)

// Request модель запроса на изменение статуса бронирования
type Request struct {
	RequestID string // UUID запроса на бронирование
	Action    Action // accept, decline или cancel
	ActorID   int64  // ID участника, выполняющего действие
}

// Response модель ответа с итоговым статусом
type Response struct {
	ID                string // UUID запроса
	Status            string // Итоговый статус
	ConflictsDeclined int64  // Число конкурентов, отклонённых при подтверждении
}
