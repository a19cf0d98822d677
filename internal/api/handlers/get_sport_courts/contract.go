package get_sport_courts

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type CatalogService interface {
	GetSportWithCourts(ctx context.Context, sportID string) (*models.SportWithCourtsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
