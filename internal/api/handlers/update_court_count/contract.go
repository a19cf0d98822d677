package update_court_count

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateCourtCount(ctx context.Context, req *models.UpdateCourtCountRequest) (*models.ResizeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
