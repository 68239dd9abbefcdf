package resolve_booking

import (
	"context"

	resolveRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/resolve_request"
)

type ResolveRequestUseCase interface {
	Execute(ctx context.Context, req *resolveRequest.Request) (*resolveRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
