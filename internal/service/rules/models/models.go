package models

import (
	"time"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

// CreateRuleRequest модель запроса на создание правила доступности
type CreateRuleRequest struct {
	TutorID int64
	Kind    domain.RuleKind

	Weekdays    []time.Weekday // Для recurring
	ActiveFrom  *time.Time     // Для recurring (опционально)
	ActiveUntil *time.Time     // Для recurring (опционально)
	RuleDate    *time.Time     // Для specific

	TimeFrom types.TimeString
	TimeTo   types.TimeString

	LessonType domain.LessonType
	Location   domain.Location
	Modality   domain.Modality
}

// RuleResponse модель правила доступности в ответах сервиса
type RuleResponse struct {
	ID          int64    `json:"id"`
	TutorID     int64    `json:"providerId"`
	Kind        string   `json:"kind"`
	Weekdays    []int    `json:"weekdays,omitempty"`
	ActiveFrom  *string  `json:"activeFrom,omitempty"`
	ActiveUntil *string  `json:"activeUntil,omitempty"`
	RuleDate    *string  `json:"date,omitempty"`
	TimeFrom    string   `json:"timeFrom"`
	TimeTo      string   `json:"timeTo"`
	LessonType  string   `json:"lessonType"`
	Location    string   `json:"location"`
	Modality    string   `json:"modality"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// FromDomainRule конвертирует доменное правило в модель ответа
func FromDomainRule(rule *domain.AvailabilityRule) *RuleResponse {
	resp := &RuleResponse{
		ID:         rule.ID,
		TutorID:    rule.TutorID,
		Kind:       string(rule.Kind),
		TimeFrom:   rule.TimeFrom.String(),
		TimeTo:     rule.TimeTo.String(),
		LessonType: string(rule.LessonType),
		Location:   string(rule.Location),
		Modality:   string(rule.Modality),
		CreatedAt:  rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rule.UpdatedAt.Format(time.RFC3339),
	}

	for _, wd := range rule.Weekdays {
		resp.Weekdays = append(resp.Weekdays, int(wd))
	}

	if rule.ActiveFrom != nil {
		s := rule.ActiveFrom.Format(domain.DateFormat)
		resp.ActiveFrom = &s
	}
	if rule.ActiveUntil != nil {
		s := rule.ActiveUntil.Format(domain.DateFormat)
		resp.ActiveUntil = &s
	}
	if rule.RuleDate != nil {
		s := rule.RuleDate.Format(domain.DateFormat)
		resp.RuleDate = &s
	}

	return resp
}

// FromDomainRules конвертирует список доменных правил
func FromDomainRules(rules []*domain.AvailabilityRule) []*RuleResponse {
	result := make([]*RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, FromDomainRule(rule))
	}
	return result
}
