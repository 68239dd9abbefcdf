package create_rule

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	ProviderID  int64   `json:"providerId"`
	Kind        string  `json:"kind"` // recurring | specific
	Weekdays    []int   `json:"weekdays,omitempty"`
	ActiveFrom  *string `json:"activeFrom,omitempty"`
	ActiveUntil *string `json:"activeUntil,omitempty"`
	Date        *string `json:"date,omitempty"`
	TimeFrom    string  `json:"timeFrom"`
	TimeTo      string  `json:"timeTo"`
	LessonType  string  `json:"lessonType"`
	Location    string  `json:"location"`
	Modality    string  `json:"modality"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest() (*models.CreateRuleRequest, error) {
	timeFrom, err := types.NewTimeStringFromString(r.TimeFrom)
	if err != nil {
		return nil, err
	}
	timeTo, err := types.NewTimeStringFromString(r.TimeTo)
	if err != nil {
		return nil, err
	}

	req := &models.CreateRuleRequest{
		TutorID:    r.ProviderID,
		Kind:       domain.RuleKind(r.Kind),
		TimeFrom:   timeFrom,
		TimeTo:     timeTo,
		LessonType: domain.LessonType(r.LessonType),
		Location:   domain.Location(r.Location),
		Modality:   domain.Modality(r.Modality),
	}

	for _, wd := range r.Weekdays {
		req.Weekdays = append(req.Weekdays, time.Weekday(wd))
	}

	if r.ActiveFrom != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.ActiveFrom)
		if err != nil {
			return nil, err
		}
		req.ActiveFrom = &parsed
	}
	if r.ActiveUntil != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.ActiveUntil)
		if err != nil {
			return nil, err
		}
		req.ActiveUntil = &parsed
	}
	if r.Date != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.RuleDate = &parsed
	}

	return req, nil
}
