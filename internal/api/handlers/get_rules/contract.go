package get_rules

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
)

type RulesService interface {
	ListByTutor(ctx context.Context, tutorID int64) ([]*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
