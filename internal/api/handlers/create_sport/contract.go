package create_sport

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type CatalogService interface {
	CreateSport(ctx context.Context, req *models.CreateSportRequest) (*models.SportWithCourtsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
