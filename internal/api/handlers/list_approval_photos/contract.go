package list_approval_photos

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos/models"
)

type ApprovalPhotoService interface {
	List(ctx context.Context, limit int) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
