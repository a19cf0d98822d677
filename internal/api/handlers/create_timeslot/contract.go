package create_timeslot

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Create(ctx context.Context, hour int) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
