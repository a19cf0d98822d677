package update_timeslot

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Update(ctx context.Context, id int64, hour int) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
