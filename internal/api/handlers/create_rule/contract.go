package create_rule

import (
	"context"

	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
)

type RulesService interface {
	Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
