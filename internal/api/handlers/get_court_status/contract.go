package get_court_status

import (
	"context"

	getCourtStatus "github.com/AryanshKukreja/court-status-service/internal/usecase/get_court_status"
)

type GetCourtStatusUseCase interface {
	Execute(ctx context.Context, req *getCourtStatus.Request) (*getCourtStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
