package bulk_update_booking

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	reconcileBooking "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
)

type BulkReconcileUseCase interface {
	ExecuteBulk(ctx context.Context, req *reconcileBooking.BulkRequest) (*reconcileBooking.BulkResponse, error)
}

type PhotoUploader = handlers.PhotoUploader

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
