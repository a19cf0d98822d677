package get_approval_photo

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos/models"
)

type ApprovalPhotoService interface {
	Get(ctx context.Context, filename string) (*models.PhotoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
