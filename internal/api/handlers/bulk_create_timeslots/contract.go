package bulk_create_timeslots

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

type TimeSlotService interface {
	BulkCreate(ctx context.Context, start, end int) (*models.BulkCreateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
