package expire_sweep

import (
	"context"

	expireRequests "github.com/m04kA/TLS-ScheduleService/internal/usecase/expire_requests"
)

type ExpireRequestsUseCase interface {
	Execute(ctx context.Context) (*expireRequests.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
