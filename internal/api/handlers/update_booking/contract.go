package update_booking

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	reconcileBooking "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
)

type ReconcileBookingUseCase interface {
	Execute(ctx context.Context, req *reconcileBooking.Request) (*reconcileBooking.Response, error)
}

type PhotoUploader = handlers.PhotoUploader

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
