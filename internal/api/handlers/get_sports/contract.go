package get_sports

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListSports(ctx context.Context) ([]models.SportResponse, error)
	ListSportsWithCourts(ctx context.Context) ([]models.SportWithCourtsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
