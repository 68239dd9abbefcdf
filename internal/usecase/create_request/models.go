package create_request

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// Request модель запроса на создание бронирования слота
type Request struct {
	TutorID     int64            // ID репетитора
	ClientID    int64            // ID клиента, подающего запрос
	DependentID *int64           // ID ученика, если запрос от имени ребёнка (опционально)
	Date        time.Time        // Дата слота (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным запросом
type Response struct {
	ID     string // UUID созданного запроса
	Status string // Статус: pending или pending_unavailable
}
